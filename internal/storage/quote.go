package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"special-fields/internal/pricing"
)

// Quote is a priced customer configuration kept for the merchant's records.
type Quote struct {
	ID          int64           `db:"id"`
	SessionID   string          `db:"session_id"`
	ProductName string          `db:"product_name"`
	BasePrice   decimal.Decimal `db:"base_price"`
	Total       decimal.Decimal `db:"total"`
	Lines       QuoteLines      `db:"lines"`
	CreatedAt   time.Time       `db:"created_at"`
}

func NewQuote(sessionID, productName string, b pricing.Breakdown, at time.Time) Quote {
	lines := make(QuoteLines, len(b.Lines))
	copy(lines, b.Lines)

	return Quote{
		SessionID:   sessionID,
		ProductName: productName,
		BasePrice:   b.BasePrice,
		Total:       b.Total,
		Lines:       lines,
		CreatedAt:   at,
	}
}

// QuoteLines is stored as a JSONB array.
type QuoteLines []pricing.Line

func (l QuoteLines) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]pricing.Line(l))
}

func (l *QuoteLines) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan quote lines: unsupported type %T", src)
	}

	var lines []pricing.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("scan quote lines: %w", err)
	}
	*l = lines
	return nil
}
