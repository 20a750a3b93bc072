package session

import (
	"context"
	"errors"
	"time"

	"special-fields/internal/pricing"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrUnknownField  = errors.New("unknown special field")
)

// Session is one merchant/customer editing draft: the product being
// configured, the customer's answers and the product undo/redo history.
type Session struct {
	ID         string             `json:"id"`
	Product    pricing.Product    `json:"product"`
	Selections pricing.Selections `json:"selections"`
	Undo       []pricing.Product  `json:"undo,omitempty"`
	Redo       []pricing.Product  `json:"redo,omitempty"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
