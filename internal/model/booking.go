package model

import "time"

// Booking status values stored in the bookings.status column.  A
// booking is created PENDING in memory, advances to CONFIRMED once
// payment succeeds, and is only ever persisted together with its
// consumed cart item.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Payment status values stored in the payments.status column and
// reported by the payment gateway.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusConfirmed = "CONFIRMED"
	PaymentStatusFailed    = "FAILED"
)

// Booking is the durable record of a completed reservation.  It
// references its user, hotel and room by ID only; the workflow never
// needs back-traversal from a room to its bookings.
//
// Fields:
//  ID                 – primary key identifier.
//  UserID             – user who made the booking.
//  HotelID            – hotel being booked.
//  RoomID             – room being booked.
//  CheckInUTC         – check-in timestamp (UTC).
//  CheckOutUTC        – check-out timestamp (UTC).
//  TotalPriceCents    – total price in cents, taken verbatim from the cart item.
//  ConfirmationNumber – unique human-facing booking identifier.
//  Status             – PENDING, CONFIRMED or CANCELLED.
//  CreatedAt          – creation timestamp.
type Booking struct {
	ID                 uint64    // bookings.id
	UserID             uint64    // bookings.user_id
	HotelID            uint64    // bookings.hotel_id
	RoomID             uint64    // bookings.room_id
	CheckInUTC         time.Time // bookings.check_in_utc
	CheckOutUTC        time.Time // bookings.check_out_utc
	TotalPriceCents    int64     // bookings.total_price_cents
	ConfirmationNumber string    // bookings.confirmation_number
	Status             string    // bookings.status
	CreatedAt          time.Time // bookings.created_at
}

// Payment records one processor transaction for a booking.  It is
// only created after the gateway call returns; a gateway failure
// before a transaction ID exists leaves no payment row behind.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – booking the payment belongs to.
//  AmountCents   – charged amount in cents.
//  Method        – payment method name (e.g. CARD).
//  TransactionID – processor transaction reference, used for refunds.
//  Status        – PENDING, CONFIRMED or FAILED.
//  PaidAt        – when the charge was recorded.
type Payment struct {
	ID            uint64    // payments.id
	BookingID     uint64    // payments.booking_id
	AmountCents   int64     // payments.amount_cents
	Method        string    // payments.method
	TransactionID string    // payments.transaction_id
	Status        string    // payments.status
	PaidAt        time.Time // payments.paid_at
}

// Invoice is a generated billing artifact tied 1:1 to a booking.
//
// Fields:
//  ID          – primary key identifier.
//  BookingID   – booking the invoice belongs to.
//  FilePath    – storage location of the rendered document.
//  GeneratedAt – when the invoice was rendered.
type Invoice struct {
	ID          uint64    // invoices.id
	BookingID   uint64    // invoices.booking_id
	FilePath    string    // invoices.file_path
	GeneratedAt time.Time // invoices.generated_at
}
