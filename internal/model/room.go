package model

import "time"

// Room status values stored in the rooms.status column.  A room that
// is UNAVAILABLE never passes the availability check regardless of
// existing bookings (e.g. under renovation).
const (
	RoomStatusAvailable   = "AVAILABLE"
	RoomStatusUnavailable = "UNAVAILABLE"
)

// Room represents an inventory unit of a hotel.  Rooms carry a
// nightly price in cents and a capacity; the checkout workflow
// treats them as read-only.  This struct corresponds to a row in
// the `rooms` table.
//
// Fields:
//  ID                – primary key identifier.
//  HotelID           – ID of the owning hotel.
//  RoomNumber        – human-facing room number, unique per hotel.
//  RoomType          – class of the room (e.g. STANDARD, DELUXE, SUITE).
//  Capacity          – maximum number of guests.
//  PricePerNightCents – nightly price in cents.
//  Status            – AVAILABLE or UNAVAILABLE.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Room struct {
	ID                 uint64    // rooms.id
	HotelID            uint64    // rooms.hotel_id
	RoomNumber         string    // rooms.room_number
	RoomType           string    // rooms.room_type
	Capacity           uint32    // rooms.capacity
	PricePerNightCents int64     // rooms.price_per_night_cents
	Status             string    // rooms.status
	CreatedAt          time.Time // rooms.created_at
	UpdatedAt          time.Time // rooms.updated_at
}
