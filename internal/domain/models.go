package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem represents one reserved room selection pending purchase
type CartItem struct {
	ID            uuid.UUID `json:"id"`
	HotelID       uuid.UUID `json:"hotelId"`
	HotelName     string    `json:"hotelName"`
	RoomID        uuid.UUID `json:"roomId"`
	RoomType      string    `json:"roomType"`
	Destination   string    `json:"destination"`
	CheckInDate   time.Time `json:"checkInDate"`
	CheckOutDate  time.Time `json:"checkOutDate"`
	Guests        int       `json:"guests"`
	PricePerNight float64   `json:"pricePerNight"`
	Nights        int       `json:"nights"`
	TotalPrice    float64   `json:"totalPrice"` // server-computed line total; 0 means derive from price and nights
}

// CartSnapshot is the full server-held cart state returned by every cart operation
type CartSnapshot struct {
	ID          uuid.UUID  `json:"id"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// AddToCartRequest is the room selection sent to the cart service
type AddToCartRequest struct {
	HotelID      uuid.UUID `json:"hotelId"`
	RoomID       uuid.UUID `json:"roomId"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Guests       int       `json:"guests"`
}

// CustomerInfo holds the billing details collected at checkout
type CustomerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// CheckoutRequest is the payment-intent creation payload. It is built once
// at checkout submission and never mutated afterwards; the client-computed
// totals are advisory, the server re-derives the chargeable amount from its
// own copy of the cart.
type CheckoutRequest struct {
	Items           []CartItem   `json:"items"`
	Subtotal        float64      `json:"subtotal"`
	Taxes           float64      `json:"taxes"`
	Discount        float64      `json:"discount"`
	TotalAmount     float64      `json:"totalAmount"`
	AmountMinor     int64        `json:"amountInPaise"`
	PromoCode       string       `json:"promoCode,omitempty"`
	Customer        CustomerInfo `json:"customerInfo"`
	SpecialRequests string       `json:"specialRequests,omitempty"`
}

// PaymentIntent is issued by the server in response to a CheckoutRequest.
// Amount is in minor units and is the only amount the payment widget may be
// opened with.
type PaymentIntent struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

// VerifyRequest forwards a gateway confirmation for server-side verification
type VerifyRequest struct {
	OrderID     string  `json:"orderId"`
	PaymentID   string  `json:"paymentId"`
	Signature   string  `json:"signature"`
	TotalAmount float64 `json:"totalAmount"`
}

// VerifyResult reports whether a payment confirmation was authentic
type VerifyResult struct {
	Success          bool   `json:"success"`
	BookingID        string `json:"bookingId,omitempty"`
	BookingReference string `json:"bookingReference,omitempty"`
	Message          string `json:"message,omitempty"`
}

// Booking is a server-materialized reservation record. The client only ever
// reads these; creation happens server-side after payment verification.
type Booking struct {
	ID               uuid.UUID     `json:"id"`
	BookingReference string        `json:"bookingReference"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	HotelID          uuid.UUID     `json:"hotelId"`
	HotelName        string        `json:"hotelName"`
	Destination      string        `json:"destination"`
	RoomID           uuid.UUID     `json:"roomId"`
	RoomType         string        `json:"roomType"`
	CheckInDate      time.Time     `json:"checkInDate"`
	CheckOutDate     time.Time     `json:"checkOutDate"`
	Guests           int           `json:"guests"`
	TotalAmount      float64       `json:"totalAmount"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// BookingPage is one page of booking history
type BookingPage struct {
	Bookings    []Booking `json:"bookings"`
	Total       int       `json:"total"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}

// Hotel is the availability-lookup shape consumed from the hotel catalog,
// an external collaborator of the cart/checkout core.
type Hotel struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Rooms       []Room    `json:"rooms"`
}

// Room is one bookable room type within a hotel
type Room struct {
	ID            uuid.UUID `json:"id"`
	RoomType      string    `json:"roomType"`
	PricePerNight float64   `json:"pricePerNight"`
	Available     int       `json:"available"`
}
