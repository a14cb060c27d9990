package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcoder-akp/hotelstay-client/internal/config"
	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/internal/session"
	apperrors "github.com/mrcoder-akp/hotelstay-client/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.NewStore()
	sess.Set("test-token")
	client := NewClient(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, sess, nil)
	return client, sess
}

func TestDecodePayloadWrappedAndBare(t *testing.T) {
	var snap domain.CartSnapshot
	err := decodePayload([]byte(`{"data":{"totalAmount":4720}}`), &snap)
	require.NoError(t, err)
	assert.Equal(t, 4720.0, snap.TotalAmount)

	var intent domain.PaymentIntent
	err = decodePayload([]byte(`{"orderId":"order_abc","amount":432000,"currency":"INR"}`), &intent)
	require.NoError(t, err)
	assert.Equal(t, "order_abc", intent.OrderID)
	assert.Equal(t, int64(432000), intent.Amount)
}

func TestDecodePayloadRejectsNeitherShape(t *testing.T) {
	var snap domain.CartSnapshot
	err := decodePayload([]byte(`"just a string"`), &snap)
	require.Error(t, err)

	// data:null falls through to the bare decode, which must also fail here.
	err = decodePayload([]byte(`{"data":null}`), &[]domain.Hotel{})
	require.Error(t, err)
}

func TestAuthHeaderAndWrappedResponse(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"items":[],"totalAmount":0}}`))
	}))

	snap, err := client.FetchCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Empty(t, snap.Items)
}

func TestMissingTokenFailsWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	sess.Clear()

	_, err := client.FetchCart(context.Background())

	var aerr *apperrors.ErrAuthRequired
	require.ErrorAs(t, err, &aerr)
	assert.Zero(t, hits.Load(), "no request may leave the client without a credential")
}

func TestUnauthorizedClearsSession(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))

	_, err := client.FetchCart(context.Background())

	var aerr *apperrors.ErrAuthRequired
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "token expired", aerr.Message)
	assert.False(t, sess.IsValid(), "rejected credential must be dropped")
}

func TestConflictMapsToAvailabilityError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"room no longer available for the selected dates"}`))
	}))

	_, err := client.AddToCart(context.Background(), domain.AddToCartRequest{})

	var cerr *apperrors.ErrAvailabilityConflict
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "room no longer available for the selected dates", cerr.Message)
}

func TestBadRequestSurfacesServerReasonVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"cannot cancel a booking with status completed"}`))
	}))

	_, err := client.CreateCheckout(context.Background(), domain.CheckoutRequest{})

	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cannot cancel a booking with status completed", verr.Message)
}

func TestServerErrorWrapsAsNetwork(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))

	_, err := client.FetchCart(context.Background())

	var nerr *apperrors.ErrNetwork
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Error(), "500")
}

func TestCreateCheckoutRequiresOrderID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"amount":432000,"currency":"INR"}`))
	}))

	_, err := client.CreateCheckout(context.Background(), domain.CheckoutRequest{})

	var gerr *apperrors.ErrGateway
	require.ErrorAs(t, err, &gerr)
}

func TestListBookingsQueryParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":{"bookings":[],"total":0,"totalPages":0,"currentPage":2}}`))
	}))

	page, err := client.ListBookings(context.Background(), domain.BookingStatusConfirmed, 2)
	require.NoError(t, err)
	assert.Equal(t, "page=2&status=confirmed", gotQuery)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestLoginStoresToken(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "login must not send a stale credential")
		w.Write([]byte(`{"data":{"token":"fresh-token","email":"demo@hotelstay.io"}}`))
	}))
	sess.Clear()

	require.NoError(t, client.Login(context.Background(), "demo@hotelstay.io", "hotelstay-demo"))

	token, ok := sess.Token()
	assert.True(t, ok)
	assert.Equal(t, "fresh-token", token)
}
