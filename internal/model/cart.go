package model

import "time"

// Cart groups pending reservation line items for a single user.
// Each user owns at most one cart; items are consumed by checkout
// or removed explicitly.  This struct corresponds to a row in the
// `carts` table.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the cart (unique).
//  CreatedAt – when the cart was created.
//  UpdatedAt – last update timestamp.
type Cart struct {
	ID        uint64    // carts.id
	UserID    uint64    // carts.user_id
	CreatedAt time.Time // carts.created_at
	UpdatedAt time.Time // carts.updated_at

	// Items holds the cart's line items when loaded by the repository.
	Items []CartItem
}

// CartItem is a provisional, removable reservation request for one
// room and date range.  The total price is computed when the item
// is added and carried verbatim into the booking at checkout; cart
// contents are not a reservation guarantee and availability is
// re-checked during checkout.
//
// Fields:
//  ID              – primary key identifier.
//  CartID          – owning cart.
//  RoomID          – room being requested.
//  CheckInUTC      – check-in date (UTC).
//  CheckOutUTC     – check-out date (UTC), strictly after check-in.
//  TotalPriceCents – nights × nightly price, in cents.
//  AddedAt         – when the item was placed in the cart.
type CartItem struct {
	ID              uint64    // cart_items.id
	CartID          uint64    // cart_items.cart_id
	RoomID          uint64    // cart_items.room_id
	CheckInUTC      time.Time // cart_items.check_in_utc
	CheckOutUTC     time.Time // cart_items.check_out_utc
	TotalPriceCents int64     // cart_items.total_price_cents
	AddedAt         time.Time // cart_items.added_at
}

// Nights returns the stay length in whole days.  A valid cart item
// always has at least one night; AddItem enforces this before insert.
func (ci CartItem) Nights() int {
	return int(ci.CheckOutUTC.Sub(ci.CheckInUTC).Hours() / 24)
}
