package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
)

// Router builds the gin router exposing the backend contract under /api
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(customRecovery(s.logger))
	router.Use(loggingMiddleware(s.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/auth/login", s.handleLogin)

		authed := api.Group("")
		authed.Use(s.authMiddleware())
		{
			authed.GET("/hotels", s.handleListHotels)

			authed.GET("/cart", s.handleGetCart)
			authed.POST("/cart/add", s.handleAddToCart)
			authed.PUT("/cart/item/:id", s.handleUpdateCartItem)
			authed.DELETE("/cart/item/:id", s.handleRemoveCartItem)
			authed.DELETE("/cart/clear", s.handleClearCart)

			authed.POST("/payment/checkout", s.handleCheckout)
			authed.POST("/payment/verify", s.handleVerify)

			authed.GET("/bookings", s.handleListBookings)
			authed.GET("/bookings/:id", s.handleGetBooking)
			authed.PUT("/bookings/:id/cancel", s.handleCancelBooking)
		}
	}

	return router
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": err.Error(),
		})
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[normalizeEmail(req.Email)]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token := newSessionToken()
	s.mu.Lock()
	s.tokens[token] = acct.Email
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"token": token, "email": acct.Email}})
}

func (s *Server) handleListHotels(c *gin.Context) {
	// Hold the lock through the marshal: each hotel's Rooms slice aliases
	// the backing array whose Available counts cart handlers mutate.
	s.mu.Lock()
	defer s.mu.Unlock()

	hotels := make([]domain.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		hotels = append(hotels, *h)
	}
	c.JSON(http.StatusOK, gin.H{"data": hotels})
}
