package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	apperrors "github.com/mrcoder-akp/hotelstay-client/pkg/errors"
)

type fakeAPI struct {
	page      *domain.BookingPage
	booking   *domain.Booking
	cancelErr error

	listCalls   int
	cancelCalls int
	lastStatus  domain.BookingStatus
	lastPage    int
}

func (f *fakeAPI) ListBookings(ctx context.Context, status domain.BookingStatus, page int) (*domain.BookingPage, error) {
	f.listCalls++
	f.lastStatus = status
	f.lastPage = page
	return f.page, nil
}

func (f *fakeAPI) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, &apperrors.ErrNetwork{Op: "GET /bookings/" + id.String()}
	}
	return f.booking, nil
}

func (f *fakeAPI) CancelBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	f.cancelCalls++
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	b := *f.booking
	b.Status = domain.BookingStatusCancelled
	b.PaymentStatus = domain.PaymentStatusRefunded
	return &b, nil
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:               uuid.New(),
		BookingReference: "HS-CAFED00D",
		HotelName:        "Lakeside Palace",
		Status:           domain.BookingStatusConfirmed,
		PaymentStatus:    domain.PaymentStatusPaid,
		CheckInDate:      time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		CheckOutDate:     time.Date(2026, 9, 12, 11, 0, 0, 0, time.UTC),
		TotalAmount:      4720,
	}
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, nil)

	_, err := svc.List(context.Background(), domain.BookingStatus("archived"), 1)

	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, api.listCalls, "invalid filter must be rejected before any network call")
}

func TestListPassesFilterAndPageThrough(t *testing.T) {
	api := &fakeAPI{page: &domain.BookingPage{CurrentPage: 2, TotalPages: 3}}
	svc := NewService(api, nil)

	page, err := svc.List(context.Background(), domain.BookingStatusConfirmed, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, api.lastStatus)
	assert.Equal(t, 2, api.lastPage)
	assert.Equal(t, 2, page.CurrentPage)

	// Empty filter means no filter, not an invalid one.
	_, err = svc.List(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)
}

func TestCancelPassesServerRejectionVerbatim(t *testing.T) {
	rejection := &apperrors.ErrValidation{Message: "cancellation window has passed: check-in is less than 48 hours away"}
	api := &fakeAPI{booking: sampleBooking(), cancelErr: rejection}
	svc := NewService(api, nil)

	_, err := svc.Cancel(context.Background(), api.booking.ID)

	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, rejection.Message, verr.Message, "server reason must pass through untouched")
}

func TestCancelUpdatesFromServerResponse(t *testing.T) {
	api := &fakeAPI{booking: sampleBooking()}
	svc := NewService(api, nil)

	b, err := svc.Cancel(context.Background(), api.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, b.Status)
	assert.Equal(t, domain.PaymentStatusRefunded, b.PaymentStatus)
	assert.Equal(t, 1, api.cancelCalls)
}

func TestReceiptRendersPDF(t *testing.T) {
	api := &fakeAPI{booking: sampleBooking()}
	svc := NewService(api, nil)

	pdf, err := svc.Receipt(context.Background(), api.booking.ID)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestReceiptPropagatesLookupFailure(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, nil)

	_, err := svc.Receipt(context.Background(), uuid.New())
	var nerr *apperrors.ErrNetwork
	require.ErrorAs(t, err, &nerr)
}
