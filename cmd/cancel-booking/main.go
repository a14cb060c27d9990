package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/api"
	"github.com/mrcoder-akp/hotelstay-client/internal/booking"
	"github.com/mrcoder-akp/hotelstay-client/internal/config"
	"github.com/mrcoder-akp/hotelstay-client/internal/session"
	"github.com/mrcoder-akp/hotelstay-client/internal/stub"
)

func main() {
	email := flag.String("email", stub.DemoEmail, "account email")
	password := flag.String("password", stub.DemoPassword, "account password")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: cancel-booking [flags] <booking-id>")
		os.Exit(1)
	}
	id, err := uuid.Parse(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid booking id: %v\n", err)
		os.Exit(1)
	}

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
	b, err := svc.Cancel(ctx, id)
	if err != nil {
		// The server's rejection reason comes through verbatim.
		fmt.Fprintf(os.Stderr, "❌ Cancellation rejected: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Booking %s cancelled\n", b.BookingReference)
	fmt.Printf("  Status: %s\n", b.Status)
	fmt.Printf("  Payment: %s\n", b.PaymentStatus)
}
