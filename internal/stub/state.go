// Package stub is an in-memory reference implementation of the hotelstay
// backend contract. The test suite and the local dev server run against it;
// it holds the authoritative cart, re-derives checkout totals server-side,
// and materializes bookings only after payment verification.
package stub

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrcoder-akp/hotelstay-client/internal/config"
	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
)

// DemoEmail and DemoPassword are the seeded development credentials
const (
	DemoEmail    = "demo@hotelstay.io"
	DemoPassword = "hotelstay-demo"
)

// cancelWindow is how close to check-in cancellation stays allowed
const cancelWindow = 48 * time.Hour

type account struct {
	Email        string
	PasswordHash []byte
}

// pendingOrder is a payment intent awaiting verification
type pendingOrder struct {
	OrderID     string
	Email       string
	AmountMinor int64
	TotalAmount float64
	Items       []domain.CartItem
	Customer    domain.CustomerInfo
	CreatedAt   time.Time
}

// Server holds all backend state in memory, keyed by account
type Server struct {
	cfg    config.StubConfig
	logger *zap.Logger

	mu       sync.Mutex
	accounts map[string]*account             // by email
	tokens   map[string]string               // token -> email
	hotels   []*domain.Hotel                 // room availability mutated by cart ops
	carts    map[string]*domain.CartSnapshot // by email
	orders   map[string]*pendingOrder        // by order id
	bookings map[string][]domain.Booking     // by email, newest first

	// now is swappable so tests can move the cancellation window
	now func() time.Time
}

// NewServer creates a stub backend seeded with demo hotels and the demo
// account
func NewServer(cfg config.StubConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		carts:    make(map[string]*domain.CartSnapshot),
		orders:   make(map[string]*pendingOrder),
		bookings: make(map[string][]domain.Booking),
		now:      time.Now,
	}
	s.seedHotels()
	if err := s.RegisterAccount(DemoEmail, DemoPassword); err != nil {
		logger.Warn("failed to seed demo account", zap.Error(err))
	}
	return s
}

// RegisterAccount adds a login account. Also used by tests to create
// isolated users.
func (s *Server) RegisterAccount(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[normalizeEmail(email)] = &account{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Sign produces the gateway signature for an order/payment pair,
// HMAC-SHA256 over "orderID|paymentID". Tests and the demo CLI use it to
// play the payment widget's role.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignConfirmation signs with the server's configured secret
func (s *Server) SignConfirmation(orderID, paymentID string) string {
	return Sign(s.cfg.WebhookSecret, orderID, paymentID)
}

// SeedBooking injects a booking record, bypassing the payment flow. Test
// helper for exercising cancellation rules.
func (s *Server) SeedBooking(email string, b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[normalizeEmail(email)] = append([]domain.Booking{b}, s.bookings[normalizeEmail(email)]...)
}

// SetClock overrides the server clock. Test helper for the cancellation
// window.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FindRoom returns a seeded hotel/room pair, with availability. Convenience
// for tests and the demo CLI.
func (s *Server) FindRoom(index int) (domain.Hotel, domain.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, h := range s.hotels {
		for _, r := range h.Rooms {
			if count == index {
				return *h, r, true
			}
			count++
		}
	}
	return domain.Hotel{}, domain.Room{}, false
}

func (s *Server) seedHotels() {
	s.hotels = []*domain.Hotel{
		{
			ID:          uuid.New(),
			Name:        "The Grand Meridian",
			Destination: "Goa",
			Rooms: []domain.Room{
				{ID: uuid.New(), RoomType: "Deluxe Sea View", PricePerNight: 5400, Available: 4},
				{ID: uuid.New(), RoomType: "Standard", PricePerNight: 3200, Available: 8},
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Lakeside Palace",
			Destination: "Udaipur",
			Rooms: []domain.Room{
				{ID: uuid.New(), RoomType: "Heritage Suite", PricePerNight: 9800, Available: 2},
				{ID: uuid.New(), RoomType: "Garden Room", PricePerNight: 4500, Available: 0},
			},
		},
	}
}

// roomByID finds a seeded room and its hotel. Callers hold s.mu.
func (s *Server) roomByID(hotelID, roomID uuid.UUID) (*domain.Hotel, *domain.Room) {
	for _, h := range s.hotels {
		if h.ID != hotelID {
			continue
		}
		for i := range h.Rooms {
			if h.Rooms[i].ID == roomID {
				return h, &h.Rooms[i]
			}
		}
	}
	return nil, nil
}

// cartFor returns the account's cart, creating it on first use. Callers
// hold s.mu.
func (s *Server) cartFor(email string) *domain.CartSnapshot {
	c, ok := s.carts[email]
	if !ok {
		c = &domain.CartSnapshot{ID: uuid.New()}
		s.carts[email] = c
	}
	return c
}

// recomputeCartTotal keeps the snapshot's total the sum of line totals.
// Callers hold s.mu.
func recomputeCartTotal(c *domain.CartSnapshot, now time.Time) {
	var total float64
	for _, item := range c.Items {
		total += item.TotalPrice
	}
	c.TotalAmount = total
	c.UpdatedAt = now
}

func newBookingReference() string {
	return "HS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func newOrderID() string {
	return fmt.Sprintf("order_%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:14])
}

func newSessionToken() string {
	return uuid.NewString()
}
