package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"special-fields/internal/pricing"
)

// EditFunc transforms the session product through the engine.
type EditFunc func(e *pricing.Engine, p pricing.Product) (pricing.Product, error)

// Manager applies edits to stored sessions. Edits to one session are
// serialized; different sessions proceed independently.
type Manager struct {
	store        Store
	engine       *pricing.Engine
	historyDepth int
	logger       *zap.Logger
	now          func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from the map once no caller holds or awaits it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, engine *pricing.Engine, historyDepth int, logger *zap.Logger) *Manager {
	return &Manager{
		store:        store,
		engine:       engine,
		historyDepth: historyDepth,
		logger:       logger,
		now:          time.Now,
		locks:        make(map[string]*sessionLock),
	}
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// Open starts a session for p with no answers and empty history.
func (m *Manager) Open(ctx context.Context, p pricing.Product) (*Session, error) {
	sess := &Session{
		ID:         uuid.NewString(),
		Product:    p.Clone(),
		Selections: pricing.Selections{},
		UpdatedAt:  m.now(),
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	m.logger.Info("Session opened",
		zap.String("session_id", sess.ID),
		zap.String("product", p.Name))
	return sess, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Load(ctx, id)
}

// Edit runs fn against the current product. On success the previous product
// goes onto the undo stack, the redo stack is cleared and answers for fields
// that no longer exist are dropped. An error from fn leaves the session as it was.
func (m *Manager) Edit(ctx context.Context, id string, fn EditFunc) (*Session, error) {
	return m.update(ctx, id, func(sess *Session) error {
		next, err := fn(m.engine, sess.Product)
		if err != nil {
			return err
		}

		sess.Undo = m.push(sess.Undo, sess.Product)
		sess.Redo = nil
		sess.Product = next
		sess.Selections = sess.Selections.Prune(next)
		return nil
	})
}

func (m *Manager) AddField(ctx context.Context, id string) (*Session, error) {
	return m.Edit(ctx, id, func(e *pricing.Engine, p pricing.Product) (pricing.Product, error) {
		return e.AddSpecialField(p)
	})
}

// RemoveField removes the field and the customer's answer for it.
func (m *Manager) RemoveField(ctx context.Context, id, fieldID string) (*Session, error) {
	return m.update(ctx, id, func(sess *Session) error {
		next, sel := m.engine.RemoveSpecialField(sess.Product, sess.Selections, fieldID)
		sess.Undo = m.push(sess.Undo, sess.Product)
		sess.Redo = nil
		sess.Product = next
		sess.Selections = sel
		return nil
	})
}

// Select records the customer's answer for a field of the session product.
func (m *Manager) Select(ctx context.Context, id, fieldID string, v pricing.Selection) (*Session, error) {
	return m.update(ctx, id, func(sess *Session) error {
		if _, ok := sess.Product.Field(fieldID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
		}
		sess.Selections = sess.Selections.Set(fieldID, v)
		return nil
	})
}

func (m *Manager) Unselect(ctx context.Context, id, fieldID string) (*Session, error) {
	return m.update(ctx, id, func(sess *Session) error {
		sess.Selections = sess.Selections.Without(fieldID)
		return nil
	})
}

func (m *Manager) Undo(ctx context.Context, id string) (*Session, error) {
	return m.update(ctx, id, func(sess *Session) error {
		if len(sess.Undo) == 0 {
			return ErrNothingToUndo
		}
		last := len(sess.Undo) - 1
		sess.Redo = m.push(sess.Redo, sess.Product)
		sess.Product = sess.Undo[last]
		sess.Undo = sess.Undo[:last]
		sess.Selections = sess.Selections.Prune(sess.Product)
		return nil
	})
}

func (m *Manager) Redo(ctx context.Context, id string) (*Session, error) {
	return m.update(ctx, id, func(sess *Session) error {
		if len(sess.Redo) == 0 {
			return ErrNothingToRedo
		}
		last := len(sess.Redo) - 1
		sess.Undo = m.push(sess.Undo, sess.Product)
		sess.Product = sess.Redo[last]
		sess.Redo = sess.Redo[:last]
		sess.Selections = sess.Selections.Prune(sess.Product)
		return nil
	})
}

// Quote validates the session product and prices the current answers.
// A product that fails validation yields its *pricing.ValidationError.
func (m *Manager) Quote(ctx context.Context, id string) (pricing.Breakdown, error) {
	sess, err := m.store.Load(ctx, id)
	if err != nil {
		return pricing.Breakdown{}, err
	}

	if err := pricing.ValidateProduct(sess.Product); err != nil {
		m.logger.Info("Quote rejected",
			zap.String("session_id", id),
			zap.Error(err))
		return pricing.Breakdown{}, err
	}

	b := pricing.CalculateBreakdown(sess.Product, sess.Selections)
	m.logger.Info("Quote priced",
		zap.String("session_id", id),
		zap.String("total", b.Total.StringFixed(2)))
	return b, nil
}

func (m *Manager) Close(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

func (m *Manager) update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()

	sess, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(sess); err != nil {
		return nil, err
	}

	sess.UpdatedAt = m.now()
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// push appends p and trims the stack to the history depth.
func (m *Manager) push(stack []pricing.Product, p pricing.Product) []pricing.Product {
	if m.historyDepth == 0 {
		return nil
	}
	stack = append(stack, p)
	if len(stack) > m.historyDepth {
		stack = stack[len(stack)-m.historyDepth:]
	}
	return stack
}
