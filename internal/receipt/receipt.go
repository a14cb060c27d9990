package receipt

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
)

// Generate renders a booking confirmation PDF. Pure function of the
// booking record.
func Generate(b domain.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "Hotelstay Booking Confirmation")

	pdf.SetFont("Arial", "", 12)
	pdf.Ln(12)
	pdf.Cell(190, 10, fmt.Sprintf("Booking Reference: %s", b.BookingReference))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Hotel: %s, %s", b.HotelName, b.Destination))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Room: %s, %d guest(s)", b.RoomType, b.Guests))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Check-in: %s", b.CheckInDate.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Check-out: %s", b.CheckOutDate.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Status: %s (payment %s)", b.Status, b.PaymentStatus))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Total Paid: %.2f INR", b.TotalAmount))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Booked On: %s", b.CreatedAt.Format("2006-01-02 15:04:05")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
