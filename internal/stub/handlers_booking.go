package stub

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
)

const bookingsPageSize = 10

func (s *Server) handleListBookings(c *gin.Context) {
	statusFilter := domain.BookingStatus(c.Query("status"))
	if statusFilter != "" && !statusFilter.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown booking status: " + string(statusFilter)})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	all := s.bookings[accountEmail(c)]
	var filtered []domain.Booking
	for _, b := range all {
		if statusFilter == "" || b.Status == statusFilter {
			filtered = append(filtered, b)
		}
	}
	s.mu.Unlock()

	total := len(filtered)
	totalPages := (total + bookingsPageSize - 1) / bookingsPageSize
	start := (page - 1) * bookingsPageSize
	if start > total {
		start = total
	}
	end := start + bookingsPageSize
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{"data": domain.BookingPage{
		Bookings:    filtered[start:end],
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}})
}

func (s *Server) handleGetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings[accountEmail(c)] {
		if b.ID == id {
			c.JSON(http.StatusOK, gin.H{"data": b})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
}

// handleCancelBooking enforces the status rule and the cancellation window.
// Rejection reasons are specific so the client can surface them verbatim.
func (s *Server) handleCancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := accountEmail(c)
	for i, b := range s.bookings[email] {
		if b.ID != id {
			continue
		}

		if !b.Status.CanTransitionTo(domain.BookingStatusCancelled) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("cannot cancel a booking with status %s", b.Status),
			})
			return
		}
		if s.now().After(b.CheckInDate.Add(-cancelWindow)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "cancellation window has passed: check-in is less than 48 hours away",
			})
			return
		}

		b.Status = domain.BookingStatusCancelled
		if b.PaymentStatus == domain.PaymentStatusPaid {
			b.PaymentStatus = domain.PaymentStatusRefunded
		}
		s.bookings[email][i] = b

		// Cancelled stay returns the room to availability.
		if _, room := s.roomByID(b.HotelID, b.RoomID); room != nil {
			room.Available++
		}

		c.JSON(http.StatusOK, gin.H{"data": b})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
}
