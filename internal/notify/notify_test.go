package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"special-fields/internal/pricing"
	"special-fields/internal/storage"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func exampleQuote() storage.Quote {
	p := pricing.LoadExampleProduct()
	sel := pricing.Selections{
		pricing.ExampleEngravingFieldID: pricing.TextValue("HELLO"),
		pricing.ExampleSizeFieldID:      pricing.OptionValue(pricing.ExampleSizeLargeID),
	}
	q := storage.NewQuote("s1", p.Name, pricing.CalculateBreakdown(p, sel), time.Now())
	q.ID = 3
	return q
}

func TestFormatQuote(t *testing.T) {
	want := "New quote #3\n" +
		"Product: Custom Engraved Mug\n" +
		"Base price: 25.00\n" +
		"  Engraving text: +2.50\n" +
		"  Size: +4.00\n" +
		"Total: 31.50"

	if got := FormatQuote(exampleQuote()); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestNotifyQuote(t *testing.T) {
	sender := &fakeSender{}
	n := NewWithSender(sender, 42, zap.NewNop())

	if err := n.NotifyQuote(context.Background(), exampleQuote(), "reports/quotes.xlsx"); err != nil {
		t.Fatalf("NotifyQuote failed: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected message and document, got %d sends", len(sender.sent))
	}
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	if !ok || msg.ChatID != 42 {
		t.Errorf("unexpected first send: %#v", sender.sent[0])
	}
	if _, ok := sender.sent[1].(tgbotapi.DocumentConfig); !ok {
		t.Errorf("unexpected second send: %#v", sender.sent[1])
	}
}

func TestNotifyQuote_Disabled(t *testing.T) {
	sender := &fakeSender{}
	n := NewWithSender(sender, 0, zap.NewNop())

	if err := n.NotifyQuote(context.Background(), exampleQuote(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no sends, got %d", len(sender.sent))
	}
}

func TestNotifyQuote_SendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("boom")}
	n := NewWithSender(sender, 42, zap.NewNop())

	if err := n.NotifyQuote(context.Background(), exampleQuote(), "x.xlsx"); err == nil {
		t.Fatal("expected error")
	}
	if len(sender.sent) != 1 {
		t.Errorf("document must not be sent after a failed message, got %d sends", len(sender.sent))
	}
}
