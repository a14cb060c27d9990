// Package gateway carries the data contract for the external payment
// widget. The widget itself runs outside this process; the orchestrator
// only supplies its options and observes its callbacks.
package gateway

import (
	"fmt"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
)

// Prefill pre-populates the widget's contact fields
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// Options initializes the payment widget. Amount is in minor units and
// comes from the server-issued payment intent, never from a local
// recomputation.
type Options struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	OrderID     string  `json:"order_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Prefill     Prefill `json:"prefill"`
}

// Confirmation is what the widget reports on payment success. Untrusted
// until verified server-side.
type Confirmation struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// Callbacks receive the widget's terminal events. Exactly one fires per
// checkout attempt.
type Callbacks struct {
	OnSuccess func(Confirmation)
	OnFailure func(description string)
	OnDismiss func()
}

// Widget is an external payment surface. Implementations wrap whatever the
// host UI embeds (the hosted checkout, a test double).
type Widget interface {
	Open(opts Options, cb Callbacks) error
}

// BuildOptions derives widget options from a payment intent and the
// customer's prefill details
func BuildOptions(intent domain.PaymentIntent, customer domain.CustomerInfo, itemCount int) Options {
	return Options{
		Key:         intent.Key,
		Amount:      intent.Amount,
		Currency:    intent.Currency,
		OrderID:     intent.OrderID,
		Name:        "Hotelstay",
		Description: fmt.Sprintf("Booking for %d hotel(s)", itemCount),
		Prefill: Prefill{
			Name:    customer.FirstName + " " + customer.LastName,
			Email:   customer.Email,
			Contact: customer.Phone,
		},
	}
}
