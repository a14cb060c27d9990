package cart

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	apperrors "github.com/mrcoder-akp/hotelstay-client/pkg/errors"
)

// fakeAPI scripts the remote cart authority
type fakeAPI struct {
	snapshot *domain.CartSnapshot
	err      error
	calls    atomic.Int32
	block    chan struct{} // when set, calls park here
}

func (f *fakeAPI) respond(ctx context.Context) (*domain.CartSnapshot, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	snap := *f.snapshot
	return &snap, nil
}

func (f *fakeAPI) FetchCart(ctx context.Context) (*domain.CartSnapshot, error) {
	return f.respond(ctx)
}
func (f *fakeAPI) AddToCart(ctx context.Context, req domain.AddToCartRequest) (*domain.CartSnapshot, error) {
	return f.respond(ctx)
}
func (f *fakeAPI) UpdateCartItem(ctx context.Context, itemID uuid.UUID, guests int) (*domain.CartSnapshot, error) {
	return f.respond(ctx)
}
func (f *fakeAPI) RemoveCartItem(ctx context.Context, itemID uuid.UUID) (*domain.CartSnapshot, error) {
	return f.respond(ctx)
}
func (f *fakeAPI) ClearCart(ctx context.Context) (*domain.CartSnapshot, error) {
	return f.respond(ctx)
}

func snapshotWith(items ...domain.CartItem) *domain.CartSnapshot {
	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}
	return &domain.CartSnapshot{ID: uuid.New(), Items: items, TotalAmount: total}
}

func TestAddReplacesSnapshotWholesale(t *testing.T) {
	serverItems := []domain.CartItem{
		{ID: uuid.New(), HotelName: "The Grand Meridian", TotalPrice: 10800},
		{ID: uuid.New(), HotelName: "Lakeside Palace", TotalPrice: 19600},
	}
	api := &fakeAPI{snapshot: snapshotWith(serverItems...)}
	store := NewStore(api, nil)

	snap, err := store.Add(context.Background(), domain.AddToCartRequest{})
	require.NoError(t, err)

	// The local list is exactly the server's list, not a merge.
	assert.Equal(t, serverItems, snap.Items)
	assert.Equal(t, serverItems, store.Items())
	assert.Equal(t, 30400.0, snap.TotalAmount)
	assert.Equal(t, 2, store.Count())
}

func TestFailureLeavesPriorStateUntouched(t *testing.T) {
	item := domain.CartItem{ID: uuid.New(), HotelName: "The Grand Meridian", TotalPrice: 10800}
	api := &fakeAPI{snapshot: snapshotWith(item)}
	store := NewStore(api, nil)

	_, err := store.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, store.Count())

	api.err = &apperrors.ErrAvailabilityConflict{Message: "room no longer available"}
	snap, err := store.Add(context.Background(), domain.AddToCartRequest{})

	var conflict *apperrors.ErrAvailabilityConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, store.Count(), "conflict must not change local item count")
	assert.Equal(t, []domain.CartItem{item}, snap.Items)
}

func TestUpdateGuestsValidatesLocally(t *testing.T) {
	api := &fakeAPI{snapshot: snapshotWith()}
	store := NewStore(api, nil)

	_, err := store.UpdateGuests(context.Background(), uuid.New(), 0)

	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, api.calls.Load(), "invalid guest count must not reach the network")
}

func TestDuplicateMutationRejectedWhileInFlight(t *testing.T) {
	api := &fakeAPI{snapshot: snapshotWith(), block: make(chan struct{})}
	store := NewStore(api, nil)

	done := make(chan error, 1)
	go func() {
		_, err := store.Fetch(context.Background())
		done <- err
	}()

	// Wait for the first call to reach the fake, then try a second one.
	require.Eventually(t, func() bool { return api.calls.Load() == 1 }, time.Second, time.Millisecond)
	_, err := store.Clear(context.Background())
	var busy *apperrors.ErrBusy
	require.ErrorAs(t, err, &busy)

	close(api.block)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), api.calls.Load(), "second mutation must not issue a request")
}

func TestItemsReturnsCopy(t *testing.T) {
	item := domain.CartItem{ID: uuid.New(), TotalPrice: 100}
	api := &fakeAPI{snapshot: snapshotWith(item)}
	store := NewStore(api, nil)

	_, err := store.Fetch(context.Background())
	require.NoError(t, err)

	items := store.Items()
	items[0].TotalPrice = 999999
	assert.Equal(t, 100.0, store.Items()[0].TotalPrice)
}
