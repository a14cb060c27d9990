package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/pkg/errors"
)

// API is the remote cart authority the store round-trips to
type API interface {
	FetchCart(ctx context.Context) (*domain.CartSnapshot, error)
	AddToCart(ctx context.Context, req domain.AddToCartRequest) (*domain.CartSnapshot, error)
	UpdateCartItem(ctx context.Context, itemID uuid.UUID, guests int) (*domain.CartSnapshot, error)
	RemoveCartItem(ctx context.Context, itemID uuid.UUID) (*domain.CartSnapshot, error)
	ClearCart(ctx context.Context) (*domain.CartSnapshot, error)
}

// Store caches the server-held cart. Every operation is a round trip to the
// remote authority and, on success, the server's returned list replaces the
// whole local list; there is no optimistic local merge, so the cached cart
// can never silently diverge from server-held inventory truth. Failures
// leave the prior state untouched.
type Store struct {
	mu       sync.Mutex
	inFlight bool
	snapshot domain.CartSnapshot

	api    API
	logger *zap.Logger
}

// NewStore creates a cart store backed by the given remote authority
func NewStore(api API, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{api: api, logger: logger}
}

// Fetch refreshes the local cache from the server
func (s *Store) Fetch(ctx context.Context) (domain.CartSnapshot, error) {
	return s.roundTrip("fetch cart", func() (*domain.CartSnapshot, error) {
		return s.api.FetchCart(ctx)
	})
}

// Add reserves a room selection. An availability conflict surfaces as
// ErrAvailabilityConflict with the local cart unchanged.
func (s *Store) Add(ctx context.Context, req domain.AddToCartRequest) (domain.CartSnapshot, error) {
	return s.roundTrip("add to cart", func() (*domain.CartSnapshot, error) {
		return s.api.AddToCart(ctx, req)
	})
}

// UpdateGuests changes the guest count on one line item
func (s *Store) UpdateGuests(ctx context.Context, itemID uuid.UUID, guests int) (domain.CartSnapshot, error) {
	if guests < 1 {
		return s.Snapshot(), &errors.ErrValidation{
			Message: "guest count must be at least 1",
			Fields:  map[string]string{"guests": "must be at least 1"},
		}
	}
	return s.roundTrip("update cart item", func() (*domain.CartSnapshot, error) {
		return s.api.UpdateCartItem(ctx, itemID, guests)
	})
}

// Remove deletes one line item
func (s *Store) Remove(ctx context.Context, itemID uuid.UUID) (domain.CartSnapshot, error) {
	return s.roundTrip("remove cart item", func() (*domain.CartSnapshot, error) {
		return s.api.RemoveCartItem(ctx, itemID)
	})
}

// Clear empties the cart. The checkout orchestrator calls this only after
// payment verification succeeds.
func (s *Store) Clear(ctx context.Context) (domain.CartSnapshot, error) {
	return s.roundTrip("clear cart", func() (*domain.CartSnapshot, error) {
		return s.api.ClearCart(ctx)
	})
}

// Items returns a copy of the cached line items
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.snapshot.Items)
}

// Snapshot returns a copy of the cached cart state
func (s *Store) Snapshot() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot
	snap.Items = copyItems(s.snapshot.Items)
	return snap
}

// Count returns the cached line-item count
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshot.Items)
}

// roundTrip serializes mutations: at most one in-flight request, duplicates
// rejected without touching the network.
func (s *Store) roundTrip(op string, call func() (*domain.CartSnapshot, error)) (domain.CartSnapshot, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return s.Snapshot(), &errors.ErrBusy{Op: op}
	}
	s.inFlight = true
	s.mu.Unlock()

	snap, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.logger.Warn("cart operation failed", zap.String("op", op), zap.Error(err))
		prior := s.snapshot
		prior.Items = copyItems(s.snapshot.Items)
		return prior, err
	}

	s.snapshot = *snap
	s.logger.Debug("cart snapshot replaced",
		zap.String("op", op),
		zap.Int("item_count", len(snap.Items)),
		zap.Float64("total_amount", snap.TotalAmount),
	)
	result := s.snapshot
	result.Items = copyItems(s.snapshot.Items)
	return result, nil
}

func copyItems(items []domain.CartItem) []domain.CartItem {
	if items == nil {
		return nil
	}
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
