package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/internal/pricing"
)

func (s *Server) handleGetCart(c *gin.Context) {
	// Hold the lock through the marshal: the snapshot's Items slice aliases
	// the backing array that mutating handlers write in place.
	s.mu.Lock()
	defer s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": *s.cartFor(accountEmail(c))})
}

func (s *Server) handleAddToCart(c *gin.Context) {
	var req domain.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": err.Error(),
		})
		return
	}
	if req.Guests < 1 {
		req.Guests = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hotel, room := s.roomByID(req.HotelID, req.RoomID)
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	if room.Available <= 0 {
		// Availability lapsed between browsing and cart-add.
		c.JSON(http.StatusConflict, gin.H{"error": "room no longer available for the selected dates"})
		return
	}
	room.Available--

	nights := pricing.Nights(req.CheckInDate, req.CheckOutDate)
	item := domain.CartItem{
		ID:            uuid.New(),
		HotelID:       hotel.ID,
		HotelName:     hotel.Name,
		RoomID:        room.ID,
		RoomType:      room.RoomType,
		Destination:   hotel.Destination,
		CheckInDate:   req.CheckInDate,
		CheckOutDate:  req.CheckOutDate,
		Guests:        req.Guests,
		PricePerNight: room.PricePerNight,
		Nights:        nights,
		TotalPrice:    room.PricePerNight * float64(nights),
	}

	cart := s.cartFor(accountEmail(c))
	cart.Items = append(cart.Items, item)
	recomputeCartTotal(cart, s.now())

	s.logger.Info("cart item added",
		zap.String("email", accountEmail(c)),
		zap.String("hotel", hotel.Name),
		zap.String("room_type", room.RoomType),
		zap.Int("nights", nights),
	)
	c.JSON(http.StatusOK, gin.H{"data": *cart})
}

type updateCartItemRequest struct {
	Guests int `json:"guests" binding:"required,min=1"`
}

func (s *Server) handleUpdateCartItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}

	var req updateCartItemRequest
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
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Guests = req.Guests
			recomputeCartTotal(cart, s.now())
			c.JSON(http.StatusOK, gin.H{"data": *cart})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
}

func (s *Server) handleRemoveCartItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(accountEmail(c))
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			s.releaseRoom(cart.Items[i])
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			recomputeCartTotal(cart, s.now())
			c.JSON(http.StatusOK, gin.H{"data": *cart})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
}

func (s *Server) handleClearCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(accountEmail(c))
	for _, item := range cart.Items {
		s.releaseRoom(item)
	}
	cart.Items = nil
	recomputeCartTotal(cart, s.now())

	c.JSON(http.StatusOK, gin.H{"data": *cart})
}

// releaseRoom returns a removed cart item's room to availability. Callers
// hold s.mu.
func (s *Server) releaseRoom(item domain.CartItem) {
	if _, room := s.roomByID(item.HotelID, item.RoomID); room != nil {
		room.Available++
	}
}
