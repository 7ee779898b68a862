package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking-backend/internal/model"
)

func TestGenerateAndStore(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(filepath.Join(dir, "invoices"))

	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	b := &model.Booking{
		ID:                 42,
		UserID:             7,
		CheckInUTC:         checkIn,
		CheckOutUTC:        checkIn.AddDate(0, 0, 2),
		TotalPriceCents:    20000,
		ConfirmationNumber: "20260910-9F3A21C4",
	}

	path, err := g.GenerateAndStore(context.Background(), 7, b)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Invoice_%d.txt", b.ID), filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "20260910-9F3A21C4")
	assert.Contains(t, content, "2026-09-10")
	assert.Contains(t, content, "2026-09-12")
	assert.Contains(t, content, "200.00 EUR")
	assert.Contains(t, content, "Nights:        2")
}

func TestGenerateAndStoreCancelledContext(t *testing.T) {
	g := NewGenerator(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateAndStore(ctx, 7, &model.Booking{ID: 1})
	assert.Error(t, err)
}
