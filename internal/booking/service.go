package booking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/internal/receipt"
	"github.com/mrcoder-akp/hotelstay-client/pkg/errors"
)

// API is the booking slice of the backend
type API interface {
	ListBookings(ctx context.Context, status domain.BookingStatus, page int) (*domain.BookingPage, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// Service is the read side of the booking lifecycle. Bookings are created
// server-side after payment verification; from here they are queried,
// cancelled, or rendered as a receipt.
type Service struct {
	api    API
	logger *zap.Logger
}

// NewService creates a booking query service
func NewService(api API, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger}
}

// List fetches a page of bookings, optionally filtered by status
func (s *Service) List(ctx context.Context, status domain.BookingStatus, page int) (*domain.BookingPage, error) {
	if status != "" && !status.IsValid() {
		return nil, &errors.ErrValidation{
			Message: "unknown booking status filter",
			Fields:  map[string]string{"status": string(status)},
		}
	}
	return s.api.ListBookings(ctx, status, page)
}

// Get fetches one booking
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.api.GetBooking(ctx, id)
}

// Cancel requests cancellation. The server is authoritative on eligibility
// (status, cancellation window); its rejection reason passes through
// verbatim and local state is only updated from its response.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := s.api.CancelBooking(ctx, id)
	if err != nil {
		s.logger.Warn("booking cancellation rejected", zap.String("booking_id", id.String()), zap.Error(err))
		return nil, err
	}
	s.logger.Info("booking cancelled",
		zap.String("booking_id", b.ID.String()),
		zap.String("booking_reference", b.BookingReference),
	)
	return b, nil
}

// Receipt renders the booking confirmation PDF
func (s *Service) Receipt(ctx context.Context, id uuid.UUID) ([]byte, error) {
	b, err := s.api.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return receipt.Generate(*b)
}
