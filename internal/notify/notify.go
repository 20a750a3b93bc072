package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"special-fields/internal/config"
	"special-fields/internal/storage"
)

// Sender is the part of the bot API the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts saved quotes to the merchant's admin chat.
type Notifier struct {
	sender Sender
	chatID int64
	logger *zap.Logger
}

func New(cfg config.TelegramConfig, logger *zap.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("notify.New: failed to create bot: %w", err)
	}
	bot.Debug = cfg.Debug

	logger.Info("Authorized on Telegram account", zap.String("username", bot.Self.UserName))
	return NewWithSender(bot, cfg.AdminChatID, logger), nil
}

func NewWithSender(sender Sender, chatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{sender: sender, chatID: chatID, logger: logger}
}

// NotifyQuote sends the quote summary and, when reportPath is set, the Excel
// report as a document.
func (n *Notifier) NotifyQuote(ctx context.Context, q storage.Quote, reportPath string) error {
	if n.chatID == 0 {
		n.logger.Warn("Quote notifications disabled - no admin chat configured")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatQuote(q))
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Error("Failed to send quote notification",
			zap.Int64("quote_id", q.ID),
			zap.Error(err))
		return fmt.Errorf("send quote notification: %w", err)
	}

	if reportPath == "" {
		return nil
	}

	doc := tgbotapi.NewDocument(n.chatID, tgbotapi.FilePath(reportPath))
	doc.Caption = fmt.Sprintf("Quote #%d", q.ID)
	if _, err := n.sender.Send(doc); err != nil {
		n.logger.Error("Failed to send quote report",
			zap.Int64("quote_id", q.ID),
			zap.Error(err))
		return fmt.Errorf("send quote report: %w", err)
	}
	return nil
}

func FormatQuote(q storage.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New quote #%d\n", q.ID)
	fmt.Fprintf(&b, "Product: %s\n", q.ProductName)
	fmt.Fprintf(&b, "Base price: %s\n", q.BasePrice.StringFixed(2))
	for _, l := range q.Lines {
		if l.Contribution.IsZero() {
			continue
		}
		fmt.Fprintf(&b, "  %s: +%s\n", l.Label, l.Contribution.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s", q.Total.StringFixed(2))
	return b.String()
}
