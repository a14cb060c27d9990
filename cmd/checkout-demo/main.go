package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mrcoder-akp/hotelstay-client/internal/api"
	"github.com/mrcoder-akp/hotelstay-client/internal/booking"
	"github.com/mrcoder-akp/hotelstay-client/internal/cart"
	"github.com/mrcoder-akp/hotelstay-client/internal/checkout"
	"github.com/mrcoder-akp/hotelstay-client/internal/config"
	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/internal/gateway"
	"github.com/mrcoder-akp/hotelstay-client/internal/session"
	"github.com/mrcoder-akp/hotelstay-client/internal/stub"
)

// Drives the full cart → checkout → verify flow against a stub backend,
// playing the payment widget's role with the configured webhook secret.
func main() {
	email := flag.String("email", stub.DemoEmail, "account email")
	password := flag.String("password", stub.DemoPassword, "account password")
	promo := flag.String("promo", "SAVE10", "promo code (empty to skip)")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	sess := session.NewStore()
	client := api.NewClient(cfg.API, sess, logger)
	ctx := context.Background()

	fmt.Printf("🔐 Logging in as %s...\n", *email)
	if err := client.Login(ctx, *email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
		os.Exit(1)
	}

	hotels, err := client.ListHotels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list hotels: %v\n", err)
		os.Exit(1)
	}

	// Pick the first room with availability
	var selection *domain.AddToCartRequest
	for _, h := range hotels {
		for _, r := range h.Rooms {
			if r.Available > 0 {
				checkIn := time.Now().AddDate(0, 0, 30)
				selection = &domain.AddToCartRequest{
					HotelID:      h.ID,
					RoomID:       r.ID,
					CheckInDate:  checkIn,
					CheckOutDate: checkIn.AddDate(0, 0, 2),
					Guests:       2,
				}
				fmt.Printf("🏨 Selected %s / %s (%.2f per night)\n", h.Name, r.RoomType, r.PricePerNight)
				break
			}
		}
		if selection != nil {
			break
		}
	}
	if selection == nil {
		fmt.Fprintln(os.Stderr, "❌ No rooms available.")
		os.Exit(1)
	}

	cartStore := cart.NewStore(client, logger)
	snap, err := cartStore.Add(ctx, *selection)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Add to cart failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("🛒 Cart: %d item(s), total %.2f\n", len(snap.Items), snap.TotalAmount)

	orch := checkout.New(client, cartStore, logger)
	customer := domain.CustomerInfo{
		FirstName: "Demo",
		LastName:  "Guest",
		Email:     *email,
		Phone:     "+91 98765 43210",
		Address:   "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		ZipCode:   "560001",
		Country:   "India",
	}

	opts, err := orch.Start(ctx, customer, *promo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Checkout failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("💳 Payment intent %s for %d %s (minor units)\n", opts.OrderID, opts.Amount, opts.Currency)

	// Play the widget: sign the confirmation the way the gateway would.
	paymentID := fmt.Sprintf("pay_demo_%d", time.Now().Unix())
	conf := gateway.Confirmation{
		OrderID:   opts.OrderID,
		PaymentID: paymentID,
		Signature: stub.Sign(cfg.Stub.WebhookSecret, opts.OrderID, paymentID),
	}
	if err := orch.HandleSuccess(ctx, conf); err != nil {
		fmt.Fprintf(os.Stderr, "Verification failed: %v\n", err)
		os.Exit(1)
	}

	ref, _ := orch.BookingReference()
	fmt.Printf("✅ Payment verified! Booking reference: %s\n", ref)
	fmt.Printf("🛒 Cart now holds %d item(s)\n", cartStore.Count())

	bookings := booking.NewService(client, logger)
	page, err := bookings.List(ctx, "", 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list bookings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("📋 %d booking(s) on record:\n", page.Total)
	for _, b := range page.Bookings {
		fmt.Printf("  %s  %s (%s)  %s → %s  %.2f [%s/%s]\n",
			b.BookingReference, b.HotelName, b.RoomType,
			b.CheckInDate.Format("2006-01-02"), b.CheckOutDate.Format("2006-01-02"),
			b.TotalAmount, b.Status, b.PaymentStatus)
	}
}
