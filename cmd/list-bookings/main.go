package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/api"
	"github.com/mrcoder-akp/hotelstay-client/internal/booking"
	"github.com/mrcoder-akp/hotelstay-client/internal/config"
	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/internal/session"
	"github.com/mrcoder-akp/hotelstay-client/internal/stub"
)

func main() {
	email := flag.String("email", stub.DemoEmail, "account email")
	password := flag.String("password", stub.DemoPassword, "account password")
	status := flag.String("status", "", "filter by status (pending|confirmed|cancelled|completed)")
	page := flag.Int("page", 1, "page number")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	sess := session.NewStore()
	client := api.NewClient(cfg.API, sess, logger)
	ctx := context.Background()

	if err := client.Login(ctx, *email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
		os.Exit(1)
	}

	svc := booking.NewService(client, logger)
	result, err := svc.List(ctx, domain.BookingStatus(*status), *page)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list bookings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("📋 Listing bookings (page %d of %d, %d total):\n", result.CurrentPage, result.TotalPages, result.Total)

	for i, b := range result.Bookings {
		fmt.Printf("Booking #%d:\n", i+1)
		fmt.Printf("  ID: %s\n", b.ID)
		fmt.Printf("  Reference: %s\n", b.BookingReference)
		fmt.Printf("  Hotel: %s, %s (%s)\n", b.HotelName, b.Destination, b.RoomType)
		fmt.Printf("  Stay: %s → %s, %d guest(s)\n",
			b.CheckInDate.Format("2006-01-02"), b.CheckOutDate.Format("2006-01-02"), b.Guests)
		fmt.Printf("  Status: %s\n", b.Status)
		fmt.Printf("  Payment: %s\n", b.PaymentStatus)
		fmt.Printf("  Total: %.2f\n", b.TotalAmount)
		fmt.Println()
	}

	if result.Total == 0 {
		fmt.Println("❌ No bookings found.")
		fmt.Println("\nTo create one, run the full flow: go run cmd/checkout-demo/main.go")
	} else {
		fmt.Printf("✅ Found %d booking(s)\n", result.Total)
	}
}
