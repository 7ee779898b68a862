// Package invoice renders billing documents for confirmed bookings
// and stores them on the local filesystem. The rendered file is plain
// text; the booking row keeps only the storage path.
package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hotel-booking-backend/internal/model"
)

// Generator writes invoice documents under Dir. The directory is
// created on first use.
type Generator struct {
	Dir string
}

// NewGenerator constructs a Generator rooted at dir.
func NewGenerator(dir string) *Generator {
	return &Generator{Dir: dir}
}

// GenerateAndStore renders the invoice for a booking and writes it to
// Dir/Invoice_<bookingID>.txt, returning the path. The booking is
// passed in memory because checkout calls this before the enclosing
// transaction commits, so the row is not yet visible to other readers.
func (g *Generator) GenerateAndStore(ctx context.Context, userID uint64, b *model.Booking) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", fmt.Errorf("invoice: create dir: %w", err)
	}
	path := filepath.Join(g.Dir, fmt.Sprintf("Invoice_%d.txt", b.ID))
	if err := os.WriteFile(path, []byte(render(userID, b)), 0o644); err != nil {
		return "", fmt.Errorf("invoice: write %s: %w", path, err)
	}
	return path, nil
}

func render(userID uint64, b *model.Booking) string {
	nights := int(b.CheckOutUTC.Sub(b.CheckInUTC).Hours() / 24)
	return fmt.Sprintf(`INVOICE
=======
Booking:       %d
Confirmation:  %s
Customer:      %d
Check-in:      %s
Check-out:     %s
Nights:        %d
Total:         %.2f EUR
Issued:        %s
`,
		b.ID,
		b.ConfirmationNumber,
		userID,
		b.CheckInUTC.Format("2006-01-02"),
		b.CheckOutUTC.Format("2006-01-02"),
		nights,
		float64(b.TotalPriceCents)/100,
		time.Now().UTC().Format(time.RFC3339),
	)
}
