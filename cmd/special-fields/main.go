package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"special-fields/internal/config"
	"special-fields/internal/notify"
	"special-fields/internal/pricing"
	"special-fields/internal/session"
	"special-fields/internal/storage"
	"special-fields/pkg/logger"
	"special-fields/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("Quote run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	store, closeStore, err := sessionStore(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeStore()

	manager := session.NewManager(store, pricing.NewEngine(), cfg.Session.HistoryDepth, log)

	sess, err := manager.Open(ctx, pricing.LoadExampleProduct())
	if err != nil {
		return err
	}
	defer manager.Close(context.WithoutCancel(ctx), sess.ID)

	answers := []struct {
		fieldID string
		value   pricing.Selection
	}{
		{pricing.ExampleEngravingFieldID, pricing.TextValue("HELLO")},
		{pricing.ExampleSizeFieldID, pricing.OptionValue(pricing.ExampleSizeLargeID)},
		{pricing.ExampleQuantityFieldID, pricing.NumberValue(decimal.NewFromInt(2))},
	}
	for _, a := range answers {
		if sess, err = manager.Select(ctx, sess.ID, a.fieldID, a.value); err != nil {
			return err
		}
	}

	for _, issue := range pricing.CheckSelections(sess.Product, sess.Selections) {
		log.Warn("Selection issue",
			zap.String("field_id", issue.FieldID),
			zap.String("kind", string(issue.Kind)),
			zap.String("message", issue.Message))
	}

	breakdown, err := manager.Quote(ctx, sess.ID)
	if err != nil {
		return err
	}
	printBreakdown(sess.Product.Name, breakdown)

	if !cfg.Database.Enabled() {
		log.Info("Quote ledger disabled - DB_HOST not set")
		return nil
	}
	return record(ctx, cfg, log, storage.NewQuote(sess.ID, sess.Product.Name, breakdown, time.Now()))
}

func sessionStore(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (session.Store, func(), error) {
	if !cfg.Enabled() {
		log.Info("Using in-memory session store - REDIS_ADDR not set")
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.New(cfg.Addr, cfg.Password, cfg.DB, cfg.TTL)
	if err := client.Connect(ctx, 30*time.Second, log); err != nil {
		client.Close()
		return nil, nil, err
	}
	return session.NewRedisStore(client), func() { client.Close() }, nil
}

func record(ctx context.Context, cfg *config.Config, log *zap.Logger, q storage.Quote) error {
	pg, err := storage.NewPostgresStorage(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := storage.RunMigrations(ctx, pg.DB(), log); err != nil {
		return err
	}

	if q.ID, err = pg.SaveQuote(ctx, q); err != nil {
		return err
	}

	quotes, err := pg.ListQuotes(ctx, 100)
	if err != nil {
		return err
	}
	report, err := storage.ExportQuotesToExcel(quotes, cfg.ReportsDir, "quotes")
	if err != nil {
		return err
	}
	log.Info("Quotes exported", zap.String("path", report), zap.Int("count", len(quotes)))

	if !cfg.Telegram.Enabled() {
		return nil
	}
	n, err := notify.New(cfg.Telegram, log)
	if err != nil {
		return err
	}
	return n.NotifyQuote(ctx, q, report)
}

func printBreakdown(name string, b pricing.Breakdown) {
	fmt.Printf("%s\n", name)
	fmt.Printf("  %-20s %10s\n", "Base price", b.BasePrice.StringFixed(2))
	for _, l := range b.Lines {
		fmt.Printf("  %-20s %10s\n", l.Label, l.Contribution.StringFixed(2))
	}
	fmt.Printf("  %-20s %10s\n", "Total", b.Total.StringFixed(2))
}
