package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCartItemNights(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	it := CartItem{CheckInUTC: checkIn, CheckOutUTC: checkIn.AddDate(0, 0, 2)}
	assert.Equal(t, 2, it.Nights())

	it.CheckOutUTC = checkIn.AddDate(0, 0, 1)
	assert.Equal(t, 1, it.Nights())

	// zero-length and inverted ranges are rejected before insert
	it.CheckOutUTC = checkIn
	assert.Equal(t, 0, it.Nights())
	it.CheckOutUTC = checkIn.AddDate(0, 0, -1)
	assert.Less(t, it.Nights(), 1)
}
