package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/config"
	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/internal/session"
	"github.com/mrcoder-akp/hotelstay-client/pkg/errors"
)

// Client calls the hotelstay backend with the session's bearer credential
type Client struct {
	baseURL    string
	session    *session.Store
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a hotelstay API client
func NewClient(cfg config.APIConfig, sess *session.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		session:    sess,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token and stores it in the
// session store
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out, false); err != nil {
		return err
	}
	if out.Token == "" {
		return &errors.ErrAuthRequired{Message: "login response carried no token"}
	}
	c.session.Set(out.Token)
	return nil
}

// Logout drops the session credential
func (c *Client) Logout() {
	c.session.Clear()
}

// ListHotels fetches the hotel catalog with current room availability
func (c *Client) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	if err := c.do(ctx, http.MethodGet, "/hotels", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchCart returns the current server-held cart snapshot
func (c *Client) FetchCart(ctx context.Context) (*domain.CartSnapshot, error) {
	var out domain.CartSnapshot
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart reserves a room selection; 409 from the server means
// availability lapsed and surfaces as ErrAvailabilityConflict
func (c *Client) AddToCart(ctx context.Context, req domain.AddToCartRequest) (*domain.CartSnapshot, error) {
	var out domain.CartSnapshot
	if err := c.do(ctx, http.MethodPost, "/cart/add", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItem changes the guest count on a cart line item
func (c *Client) UpdateCartItem(ctx context.Context, itemID uuid.UUID, guests int) (*domain.CartSnapshot, error) {
	body := map[string]int{"guests": guests}
	var out domain.CartSnapshot
	if err := c.do(ctx, http.MethodPut, "/cart/item/"+itemID.String(), body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveCartItem deletes a cart line item
func (c *Client) RemoveCartItem(ctx context.Context, itemID uuid.UUID) (*domain.CartSnapshot, error) {
	var out domain.CartSnapshot
	if err := c.do(ctx, http.MethodDelete, "/cart/item/"+itemID.String(), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearCart empties the server-held cart
func (c *Client) ClearCart(ctx context.Context) (*domain.CartSnapshot, error) {
	var out domain.CartSnapshot
	if err := c.do(ctx, http.MethodDelete, "/cart/clear", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCheckout submits a checkout request and returns the server-issued
// payment intent
func (c *Client) CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.PaymentIntent, error) {
	var out domain.PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payment/checkout", req, &out, true); err != nil {
		return nil, err
	}
	if out.OrderID == "" {
		return nil, &errors.ErrGateway{Message: "no order ID received from server"}
	}
	return &out, nil
}

// VerifyPayment forwards a gateway confirmation for server-side
// verification
func (c *Client) VerifyPayment(ctx context.Context, req domain.VerifyRequest) (*domain.VerifyResult, error) {
	var out domain.VerifyResult
	if err := c.do(ctx, http.MethodPost, "/payment/verify", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBookings fetches a page of booking history, optionally filtered by
// status
func (c *Client) ListBookings(ctx context.Context, status domain.BookingStatus, page int) (*domain.BookingPage, error) {
	path := "/bookings"
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out domain.BookingPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBooking fetches one booking record
func (c *Client) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var out domain.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/"+id.String(), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelBooking asks the server to cancel a booking. The server is
// authoritative on eligibility; its rejection reason is surfaced verbatim.
func (c *Client) CancelBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var out domain.Booking
	if err := c.do(ctx, http.MethodPut, "/bookings/"+id.String()+"/cancel", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request/response round trip: bearer auth, JSON bodies,
// the single deserialization boundary, and status-to-error mapping.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, ok := c.session.Token()
		if !ok {
			return &errors.ErrAuthRequired{}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("hotelstay API request failed", zap.String("op", op), zap.Error(err))
		return &errors.ErrNetwork{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.ErrNetwork{Op: op, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return decodePayload(respBody, out)
	case resp.StatusCode == http.StatusUnauthorized:
		// Expired or rejected credential: fail closed, caller redirects to login.
		c.session.Clear()
		return &errors.ErrAuthRequired{Message: serverMessage(respBody)}
	case resp.StatusCode == http.StatusConflict:
		return &errors.ErrAvailabilityConflict{Message: serverMessage(respBody)}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return &errors.ErrValidation{Message: serverMessage(respBody)}
	default:
		c.logger.Warn("hotelstay API returned unexpected status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
		)
		return &errors.ErrNetwork{Op: op, Err: fmt.Errorf("server returned %d: %s", resp.StatusCode, serverMessage(respBody))}
	}
}
