package stub

import (
	"crypto/hmac"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/internal/pricing"
)

// handleCheckout issues a payment intent. The client's totals are advisory:
// the chargeable amount is re-derived here from the server-held cart plus
// the promo code, so a tampered request body cannot change what the gateway
// charges.
func (s *Server) handleCheckout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": err.Error(),
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(accountEmail(c))
	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	var discountPercent int64
	if req.PromoCode != "" {
		pct, err := pricing.LookupPromo(req.PromoCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid promo code"})
			return
		}
		discountPercent = pct
	}

	breakdown := pricing.ComputeTotals(cart.Items, discountPercent)
	_, _, _, total := breakdown.Rounded()
	order := &pendingOrder{
		OrderID:     newOrderID(),
		Email:       accountEmail(c),
		AmountMinor: breakdown.GrandTotalMinorUnits(),
		TotalAmount: total,
		Items:       append([]domain.CartItem(nil), cart.Items...),
		Customer:    req.Customer,
		CreatedAt:   s.now(),
	}
	s.orders[order.OrderID] = order

	s.logger.Info("payment intent created",
		zap.String("order_id", order.OrderID),
		zap.Int64("amount", order.AmountMinor),
		zap.Int("item_count", len(order.Items)),
	)
	c.JSON(http.StatusOK, domain.PaymentIntent{
		OrderID:  order.OrderID,
		Amount:   order.AmountMinor,
		Currency: "INR",
		Key:      "rzp_test_stub",
	})
}

// handleVerify checks a gateway confirmation's signature and amount. Only a
// verified payment materializes bookings and releases the cart.
func (s *Server) handleVerify(c *gin.Context) {
	var req domain.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": err.Error(),
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[req.OrderID]
	if !ok || order.Email != accountEmail(c) {
		c.JSON(http.StatusOK, domain.VerifyResult{Success: false, Message: "unknown order"})
		return
	}

	expected := s.SignConfirmation(order.OrderID, req.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(req.Signature)) {
		s.logger.Warn("payment signature mismatch", zap.String("order_id", order.OrderID))
		c.JSON(http.StatusOK, domain.VerifyResult{Success: false, Message: "signature mismatch"})
		return
	}

	if int64(math.Round(req.TotalAmount*100)) != order.AmountMinor {
		s.logger.Warn("payment amount mismatch",
			zap.String("order_id", order.OrderID),
			zap.Float64("reported", req.TotalAmount),
			zap.Int64("expected_minor", order.AmountMinor),
		)
		c.JSON(http.StatusOK, domain.VerifyResult{Success: false, Message: "amount mismatch"})
		return
	}

	// Verified: materialize one booking per line item and drop the cart
	// without returning the rooms to availability.
	now := s.now()
	var first *domain.Booking
	for _, item := range order.Items {
		b := domain.Booking{
			ID:               uuid.New(),
			BookingReference: newBookingReference(),
			Status:           domain.BookingStatusConfirmed,
			PaymentStatus:    domain.PaymentStatusPaid,
			HotelID:          item.HotelID,
			HotelName:        item.HotelName,
			Destination:      item.Destination,
			RoomID:           item.RoomID,
			RoomType:         item.RoomType,
			CheckInDate:      item.CheckInDate,
			CheckOutDate:     item.CheckOutDate,
			Guests:           item.Guests,
			TotalAmount:      item.TotalPrice,
			CreatedAt:        now,
		}
		s.bookings[order.Email] = append([]domain.Booking{b}, s.bookings[order.Email]...)
		if first == nil {
			first = &b
		}
	}

	cart := s.cartFor(order.Email)
	cart.Items = nil
	recomputeCartTotal(cart, now)
	delete(s.orders, order.OrderID)

	s.logger.Info("payment verified, bookings created",
		zap.String("order_id", order.OrderID),
		zap.String("booking_reference", first.BookingReference),
	)
	c.JSON(http.StatusOK, domain.VerifyResult{
		Success:          true,
		BookingID:        first.ID.String(),
		BookingReference: first.BookingReference,
	})
}
