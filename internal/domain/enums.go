package domain

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	// PENDING - booking created, awaiting hotel confirmation
	BookingStatusPending BookingStatus = "pending"
	// CONFIRMED - hotel confirmed the reservation
	BookingStatusConfirmed BookingStatus = "confirmed"
	// CANCELLED - guest or hotel cancelled the reservation
	BookingStatusCancelled BookingStatus = "cancelled"
	// COMPLETED - stay finished
	BookingStatusCompleted BookingStatus = "completed"
)

// IsValid checks if the booking status is valid
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	default:
		return false
	}
}

// Cancellable reports whether a cancellation attempt is worth sending.
// The server stays authoritative (cancellation window, payment state); this
// only backs UI affordances like disabling the cancel button.
func (s BookingStatus) Cancellable() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransitionTo checks if a booking status transition is valid
func (s BookingStatus) CanTransitionTo(newStatus BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return newStatus == BookingStatusConfirmed || newStatus == BookingStatusCancelled
	case BookingStatusConfirmed:
		return newStatus == BookingStatusCompleted || newStatus == BookingStatusCancelled
	case BookingStatusCancelled, BookingStatusCompleted:
		return false // Terminal states
	default:
		return false
	}
}

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// CheckoutState represents the checkout orchestrator's state machine
type CheckoutState string

const (
	// IDLE - no checkout attempt in progress
	CheckoutStateIdle CheckoutState = "IDLE"
	// BUILDING - validating input and constructing the checkout request
	CheckoutStateBuilding CheckoutState = "BUILDING"
	// AWAITING_GATEWAY - payment intent created, external widget open
	CheckoutStateAwaitingGateway CheckoutState = "AWAITING_GATEWAY"
	// VERIFYING - gateway reported success, server verification in flight
	CheckoutStateVerifying CheckoutState = "VERIFYING"
	// SUCCEEDED - payment verified, cart cleared, booking materialized
	CheckoutStateSucceeded CheckoutState = "SUCCEEDED"
	// FAILED - intent creation, gateway, or verification failed
	CheckoutStateFailed CheckoutState = "FAILED"
	// CANCELLED - user dismissed the payment widget
	CheckoutStateCancelled CheckoutState = "CANCELLED"
)

// Terminal reports whether the state ends a checkout attempt
func (s CheckoutState) Terminal() bool {
	return s == CheckoutStateSucceeded || s == CheckoutStateFailed || s == CheckoutStateCancelled
}

// CanTransitionTo checks if a checkout state transition is valid
func (s CheckoutState) CanTransitionTo(newState CheckoutState) bool {
	switch s {
	case CheckoutStateIdle:
		return newState == CheckoutStateBuilding
	case CheckoutStateBuilding:
		// Validation failures abort back to Idle without a network call.
		return newState == CheckoutStateAwaitingGateway ||
			newState == CheckoutStateIdle ||
			newState == CheckoutStateFailed
	case CheckoutStateAwaitingGateway:
		return newState == CheckoutStateVerifying ||
			newState == CheckoutStateFailed ||
			newState == CheckoutStateCancelled
	case CheckoutStateVerifying:
		return newState == CheckoutStateSucceeded ||
			newState == CheckoutStateFailed
	case CheckoutStateSucceeded, CheckoutStateFailed, CheckoutStateCancelled:
		// Re-entrant from Idle only after an explicit reset.
		return newState == CheckoutStateIdle
	default:
		return false
	}
}
