// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a checkout commits. It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID          uint64 `json:"booking_id"`
	UserID             uint64 `json:"user_id"`
	HotelID            uint64 `json:"hotel_id"`
	HotelName          string `json:"hotel_name"`
	RoomID             uint64 `json:"room_id"`
	RoomType           string `json:"room_type"`
	ConfirmationNumber string `json:"confirmation_number"`
	CheckIn            string `json:"check_in"`
	CheckOut           string `json:"check_out"`
	TotalPriceCents    int64  `json:"total_price_cents"`
	ConfirmedAt        string `json:"confirmed_at"`
}
