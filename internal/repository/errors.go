// Package repository contains data access logic separated from HTTP
// handlers and from the checkout workflow. This file defines error
// values that are reused across multiple repositories. These sentinel
// values allow higher layers to distinguish between different failure
// scenarios: ErrForbidden indicates that the current user is not
// authorized to touch a resource owned by someone else, while
// ErrConflict signals that an operation cannot proceed due to
// dependent records (e.g. deleting a hotel with active bookings).
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a room that still has bookings. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInvalidDateRange is returned when a cart item's dates do not
// span at least one full night.
var ErrInvalidDateRange = errors.New("check-out must be at least one night after check-in")

// Per-entity not-found sentinels. Repositories translate
// sql.ErrNoRows into these so callers never depend on database/sql.
var (
	ErrCityNotFound     = errors.New("city not found")
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrBookingNotFound  = errors.New("booking not found")
)

// isDuplicateKey reports whether err is a MySQL duplicate-entry
// violation (error 1062) on a unique index.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
