package cart

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/angelmondragon/urbanx-storefront/internal/catalog"
	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
)

// Subscriber receives the post-mutation state after every successful change.
type Subscriber func(State)

type subscription struct {
	id uint64
	fn Subscriber
}

// Store owns the lines of one shopper's cart.
//
// Mutations are serialised by a mutex. Notifications are queued and
// delivered, one round per mutation, by whichever caller started delivery;
// a mutation made from inside a subscriber is applied immediately and
// notified after the current round.
type Store struct {
	mu       sync.Mutex
	lines    []Line
	version  uint64
	subs     []subscription
	nextSub  uint64
	pending  []State
	draining bool

	logg *logger.Logger
}

// Option customises a Store at construction.
type Option func(*Store)

// WithLogger routes recovered subscriber panics to logg.
func WithLogger(logg *logger.Logger) Option {
	return func(s *Store) {
		if logg != nil {
			s.logg = logg
		}
	}
}

// NewStore builds a store seeded with initial lines. The initial lines must
// satisfy the same rules AddItem enforces.
func NewStore(initial []Line, opts ...Option) (*Store, error) {
	s := &Store{logg: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	seen := make(map[string]struct{}, len(initial))
	for _, l := range initial {
		details := map[string]any{"product_id": l.ProductID}
		switch {
		case l.ProductID == "":
			return nil, ErrInvalidProduct
		case l.Quantity < 1:
			details["quantity"] = l.Quantity
			return nil, ErrInvalidQuantity.Detailed(details)
		case l.Product.UnitPrice.IsNegative():
			return nil, ErrInvalidPrice.Detailed(details)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, ErrDuplicateLine.Detailed(details)
		}
		seen[l.ProductID] = struct{}{}
	}
	s.lines = slices.Clone(initial)
	return s, nil
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newState(s.lines, s.version)
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription and may be called any number of times.
func (s *Store) Subscribe(fn Subscriber) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
				return sub.id == id
			})
		})
	}
}

// AddItem adds qty units of product, merging into an existing line.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, qty int) (State, error) {
	st, _, err := s.AddLine(ctx, product, qty)
	return st, err
}

// AddLine behaves like AddItem and also reports whether a new line was
// created, decided under the same lock as the mutation.
func (s *Store) AddLine(ctx context.Context, product catalog.Product, qty int) (State, bool, error) {
	created := false
	st, err := s.mutate(ctx, func() (bool, error) {
		details := map[string]any{"product_id": product.ID}
		if product.ID == "" {
			return false, ErrInvalidProduct
		}
		if qty < 1 {
			details["quantity"] = qty
			return false, ErrInvalidQuantity.Detailed(details)
		}
		if product.Price.IsNegative() {
			return false, ErrInvalidPrice.Detailed(details)
		}
		if idx := s.indexOf(product.ID); idx >= 0 {
			s.lines[idx].Quantity += qty
			return true, nil
		}
		s.lines = append(s.lines, Line{
			ProductID: product.ID,
			Product:   snapshotOf(product),
			Quantity:  qty,
		})
		created = true
		return true, nil
	})
	return st, created, err
}

// UpdateQuantity sets the line's quantity to exactly n. n <= 0 removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, n int) (State, error) {
	return s.mutate(ctx, func() (bool, error) {
		idx := s.indexOf(productID)
		if idx < 0 {
			return false, ErrLineNotFound.Detailed(map[string]any{"product_id": productID})
		}
		if n <= 0 {
			s.lines = slices.Delete(s.lines, idx, idx+1)
			return true, nil
		}
		s.lines[idx].Quantity = n
		return true, nil
	})
}

// RemoveItem deletes the line for productID. Removing an absent line is a
// no-op that does not notify subscribers.
func (s *Store) RemoveItem(ctx context.Context, productID string) (State, error) {
	return s.mutate(ctx, func() (bool, error) {
		idx := s.indexOf(productID)
		if idx < 0 {
			return false, nil
		}
		s.lines = slices.Delete(s.lines, idx, idx+1)
		return true, nil
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.mutate(ctx, func() (bool, error) {
		s.lines = nil
		return true, nil
	})
}

// ClearIfVersion empties the cart only while it is still at version. A cart
// changed since that version is left untouched and ErrVersionMismatch is
// returned with the current state.
func (s *Store) ClearIfVersion(ctx context.Context, version uint64) (State, error) {
	return s.mutate(ctx, func() (bool, error) {
		if s.version != version {
			return false, ErrVersionMismatch.Detailed(map[string]any{
				"expected_version": version,
				"current_version":  s.version,
			})
		}
		s.lines = nil
		return true, nil
	})
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.lines, func(l Line) bool {
		return l.ProductID == productID
	})
}

// mutate runs apply under the lock. apply reports whether state changed;
// it must leave the lines untouched when it returns an error.
func (s *Store) mutate(ctx context.Context, apply func() (bool, error)) (State, error) {
	s.mu.Lock()
	changed, err := apply()
	if err != nil || !changed {
		st := newState(s.lines, s.version)
		s.mu.Unlock()
		return st, err
	}
	s.version++
	st := newState(s.lines, s.version)
	s.pending = append(s.pending, st)
	if s.draining {
		s.mu.Unlock()
		return st, nil
	}
	s.draining = true
	s.mu.Unlock()

	s.drain(ctx)
	return st, nil
}

func (s *Store) drain(ctx context.Context) {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		st := s.pending[0]
		s.pending = s.pending[1:]
		subs := slices.Clone(s.subs)
		s.mu.Unlock()

		for _, sub := range subs {
			s.notify(ctx, sub, st)
		}
	}
}

func (s *Store) notify(ctx context.Context, sub subscription, st State) {
	defer func() {
		if r := recover(); r != nil {
			s.logg.Error(s.logg.WithField(ctx, "subscriber_id", sub.id), "cart subscriber panicked", fmt.Errorf("panic: %v", r))
		}
	}()
	// Each subscriber gets its own copy of the lines.
	st.Lines = slices.Clone(st.Lines)
	sub.fn(st)
}
