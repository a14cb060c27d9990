package errors

import (
	"fmt"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
)

// ErrAuthRequired is returned when no credential is held or the server
// rejected the one presented. Callers redirect to login; never retried.
type ErrAuthRequired struct {
	Message string
}

func (e *ErrAuthRequired) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication required"
}

// ErrAvailabilityConflict is returned when a room is no longer bookable
// between cart-add and checkout
type ErrAvailabilityConflict struct {
	Message string
}

func (e *ErrAvailabilityConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "room no longer available"
}

// ErrValidation is returned when input validation fails before any network
// call is issued
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrBusy is returned when an operation is rejected because another request
// is already in flight on the same component
type ErrBusy struct {
	Op string
}

func (e *ErrBusy) Error() string {
	return fmt.Sprintf("%s: another request is in progress", e.Op)
}

// ErrGateway is returned when payment-intent creation fails or the payment
// widget reports a failure. Terminal for the attempt; the user may retry
// from Idle.
type ErrGateway struct {
	Message string
}

func (e *ErrGateway) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "payment gateway error"
}

// ErrVerification is returned when the server rejects a gateway-reported
// payment success. The payment may have been captured gateway-side without
// a booking being recorded, so the order and payment ids are kept for
// support reconciliation and the cart is deliberately not cleared.
type ErrVerification struct {
	OrderID   string
	PaymentID string
	Message   string
}

func (e *ErrVerification) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment verification failed for order %s: %s", e.OrderID, e.Message)
	}
	return fmt.Sprintf("payment verification failed for order %s", e.OrderID)
}

// ErrNetwork wraps a transport-level failure. Transient; the user may retry
// the failed step explicitly.
type ErrNetwork struct {
	Op  string
	Err error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrNetwork) Unwrap() error {
	return e.Err
}

// ErrInvalidStateTransition is returned when an invalid checkout state
// transition is attempted
type ErrInvalidStateTransition struct {
	From domain.CheckoutState
	To   domain.CheckoutState
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
