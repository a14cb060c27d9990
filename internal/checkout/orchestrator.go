package checkout

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/internal/gateway"
	"github.com/mrcoder-akp/hotelstay-client/internal/pricing"
	"github.com/mrcoder-akp/hotelstay-client/pkg/errors"
)

// PaymentAPI is the payment slice of the backend the orchestrator drives
type PaymentAPI interface {
	CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.PaymentIntent, error)
	VerifyPayment(ctx context.Context, req domain.VerifyRequest) (*domain.VerifyResult, error)
}

// Cart is the slice of the cart store the orchestrator needs: a snapshot to
// charge for, and the clear that only verified payment may trigger
type Cart interface {
	Items() []domain.CartItem
	Clear(ctx context.Context) (domain.CartSnapshot, error)
}

// Orchestrator drives one checkout attempt at a time through
// Idle → Building → AwaitingGateway → Verifying → Succeeded/Failed/Cancelled.
// Gateway success is necessary but not sufficient: only server-side
// verification authorizes clearing the cart, since an unverified success
// callback can be forged client-side.
type Orchestrator struct {
	mu    sync.Mutex
	state domain.CheckoutState

	api    PaymentAPI
	cart   Cart
	logger *zap.Logger

	request      *domain.CheckoutRequest
	intent       *domain.PaymentIntent
	confirmation *gateway.Confirmation // kept after verification failure for support reconciliation
	bookingRef   string
	lastErr      error
}

// New creates an idle checkout orchestrator
func New(api PaymentAPI, cart Cart, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		state:  domain.CheckoutStateIdle,
		api:    api,
		cart:   cart,
		logger: logger,
	}
}

// State returns the current checkout state
func (o *Orchestrator) State() domain.CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// BookingReference returns the booking reference once checkout has
// succeeded
func (o *Orchestrator) BookingReference() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bookingRef, o.bookingRef != ""
}

// Err returns the error that terminated the last attempt, if any
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Confirmation returns the gateway confirmation held after a verification
// failure, for support reconciliation of a charged-but-unbooked payment
func (o *Orchestrator) Confirmation() (gateway.Confirmation, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.confirmation == nil {
		return gateway.Confirmation{}, false
	}
	return *o.confirmation, true
}

// Start validates customer input, builds the immutable checkout request,
// submits it for a payment intent, and returns the widget options built
// from the intent's own amount. A second Start while an attempt is live is
// rejected without a network call.
func (o *Orchestrator) Start(ctx context.Context, customer domain.CustomerInfo, promoCode string) (gateway.Options, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.transition(domain.CheckoutStateBuilding); err != nil {
		return gateway.Options{}, err
	}

	// Validation failures abort back to Idle before any network call.
	items := o.cart.Items()
	if len(items) == 0 {
		o.state = domain.CheckoutStateIdle
		return gateway.Options{}, &errors.ErrValidation{Message: "cart is empty"}
	}

	if fields := validateCustomer(customer); len(fields) > 0 {
		o.state = domain.CheckoutStateIdle
		return gateway.Options{}, &errors.ErrValidation{Message: "missing required checkout fields", Fields: fields}
	}

	var discountPercent int64
	if promoCode != "" {
		pct, err := pricing.LookupPromo(promoCode)
		if err != nil {
			o.state = domain.CheckoutStateIdle
			return gateway.Options{}, err
		}
		discountPercent = pct
	}

	breakdown := pricing.ComputeTotals(items, discountPercent)
	subtotal, tax, discount, total := breakdown.Rounded()
	req := domain.CheckoutRequest{
		Items:       items,
		Subtotal:    subtotal,
		Taxes:       tax,
		Discount:    discount,
		TotalAmount: total,
		AmountMinor: breakdown.GrandTotalMinorUnits(),
		PromoCode:   promoCode,
		Customer:    customer,
	}
	o.request = &req

	intent, err := o.api.CreateCheckout(ctx, req)
	if err != nil {
		o.fail(err)
		return gateway.Options{}, err
	}

	// The server re-derives the total from its own cart copy; a mismatch
	// means the client's advisory totals were wrong. The widget still opens
	// with the intent's amount, never a locally recomputed one.
	if intent.Amount != req.AmountMinor {
		o.logger.Warn("payment intent amount differs from client total",
			zap.String("order_id", intent.OrderID),
			zap.Int64("intent_amount", intent.Amount),
			zap.Int64("client_amount", req.AmountMinor),
		)
	}

	o.intent = intent
	if err := o.transition(domain.CheckoutStateAwaitingGateway); err != nil {
		return gateway.Options{}, err
	}

	o.logger.Info("payment intent created, awaiting gateway",
		zap.String("order_id", intent.OrderID),
		zap.Int64("amount", intent.Amount),
		zap.String("currency", intent.Currency),
	)
	return gateway.BuildOptions(*intent, customer, len(items)), nil
}

// HandleSuccess consumes the widget's success callback: the confirmation is
// forwarded for server-side verification, and only a verified payment
// clears the cart
func (o *Orchestrator) HandleSuccess(ctx context.Context, conf gateway.Confirmation) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.transition(domain.CheckoutStateVerifying); err != nil {
		return err
	}

	result, err := o.api.VerifyPayment(ctx, domain.VerifyRequest{
		OrderID:     o.intent.OrderID,
		PaymentID:   conf.PaymentID,
		Signature:   conf.Signature,
		TotalAmount: o.request.TotalAmount,
	})
	if err != nil {
		o.confirmation = &conf
		o.fail(err)
		return err
	}

	if !result.Success {
		// The payment may have been captured gateway-side without a booking
		// being recorded. Fail safe: keep the cart and the confirmation so
		// support can reconcile.
		verr := &errors.ErrVerification{
			OrderID:   o.intent.OrderID,
			PaymentID: conf.PaymentID,
			Message:   result.Message,
		}
		o.confirmation = &conf
		o.fail(verr)
		return verr
	}

	// The only point at which cart clearing is allowed.
	if _, err := o.cart.Clear(ctx); err != nil {
		o.logger.Warn("verified payment but cart clear failed", zap.String("order_id", o.intent.OrderID), zap.Error(err))
	}

	o.bookingRef = result.BookingReference
	if err := o.transition(domain.CheckoutStateSucceeded); err != nil {
		return err
	}
	o.logger.Info("payment verified, booking confirmed",
		zap.String("order_id", o.intent.OrderID),
		zap.String("booking_reference", o.bookingRef),
	)
	return nil
}

// HandleFailure consumes the widget's failed event. Verification is never
// called for a failed payment.
func (o *Orchestrator) HandleFailure(description string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != domain.CheckoutStateAwaitingGateway {
		return &errors.ErrInvalidStateTransition{From: o.state, To: domain.CheckoutStateFailed}
	}
	o.fail(&errors.ErrGateway{Message: description})
	return nil
}

// HandleDismiss consumes the widget's dismiss event: the user backed out,
// distinct from a payment failure
func (o *Orchestrator) HandleDismiss() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.transition(domain.CheckoutStateCancelled); err != nil {
		return err
	}
	o.logger.Info("payment widget dismissed", zap.String("order_id", o.orderID()))
	return nil
}

// Reset re-arms the orchestrator from a terminal state
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.transition(domain.CheckoutStateIdle); err != nil {
		return err
	}
	o.request = nil
	o.intent = nil
	o.confirmation = nil
	o.bookingRef = ""
	o.lastErr = nil
	return nil
}

// transition moves to newState or returns ErrInvalidStateTransition.
// Callers hold o.mu.
func (o *Orchestrator) transition(newState domain.CheckoutState) error {
	if !o.state.CanTransitionTo(newState) {
		return &errors.ErrInvalidStateTransition{From: o.state, To: newState}
	}
	o.state = newState
	return nil
}

// fail records the terminal error and moves to Failed. Callers hold o.mu.
func (o *Orchestrator) fail(err error) {
	o.lastErr = err
	o.state = domain.CheckoutStateFailed
	o.logger.Warn("checkout attempt failed",
		zap.String("order_id", o.orderID()),
		zap.Error(err),
	)
}

func (o *Orchestrator) orderID() string {
	if o.intent == nil {
		return ""
	}
	return o.intent.OrderID
}

func validateCustomer(c domain.CustomerInfo) map[string]string {
	fields := map[string]string{}
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields[name] = "required"
		}
	}
	check("firstName", c.FirstName)
	check("lastName", c.LastName)
	check("email", c.Email)
	check("phone", c.Phone)
	check("address", c.Address)
	check("city", c.City)
	check("state", c.State)
	check("zipCode", c.ZipCode)
	return fields
}
