package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"special-fields/internal/config"
)

var ErrQuoteNotFound = errors.New("quote not found")

type PostgresStorage struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.ConnectTimeout
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				db.Close()
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		logger: logger,
	}, nil
}

// DB exposes the underlying handle for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStorage) SaveQuote(ctx context.Context, q Quote) (int64, error) {
	const query = `
        INSERT INTO quotes (session_id, product_name, base_price, total, lines, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `

	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		q.SessionID,
		q.ProductName,
		q.BasePrice,
		q.Total,
		q.Lines,
		q.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save quote: %w", err)
	}

	s.logger.Info("Quote saved",
		zap.Int64("quote_id", id),
		zap.String("product", q.ProductName),
		zap.String("total", q.Total.StringFixed(2)))
	return id, nil
}

func (s *PostgresStorage) GetQuote(ctx context.Context, id int64) (*Quote, error) {
	const query = `
        SELECT id, session_id, product_name, base_price, total, lines, created_at
        FROM quotes WHERE id = $1
    `

	var q Quote
	err := s.db.GetContext(ctx, &q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &q, nil
}

// ListQuotes returns the newest quotes first. A non-positive limit returns all.
func (s *PostgresStorage) ListQuotes(ctx context.Context, limit int) ([]Quote, error) {
	query := `
        SELECT id, session_id, product_name, base_price, total, lines, created_at
        FROM quotes ORDER BY created_at DESC, id DESC
    `
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var quotes []Quote
	if err := s.db.SelectContext(ctx, &quotes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
