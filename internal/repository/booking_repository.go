package repository

import (
	"context"
	"database/sql"
	"errors"

	"hotel-booking-backend/internal/model"
)

// BookingRepo encapsulates database operations for bookings and the
// payment and invoice records attached to them. The write path is
// transactional: checkout inserts booking, payment and invoice under
// one Tx so a failure anywhere leaves no partial booking behind.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo given a DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Add inserts a booking within the supplied transaction. On success
// the booking's ID field is populated with the auto-generated value.
func (r *BookingRepo) Add(ctx context.Context, tx Tx, b *model.Booking) error {
	st, err := sqlTx(tx)
	if err != nil {
		return err
	}
	const q = `INSERT INTO bookings
	           (user_id, hotel_id, room_id, check_in_utc, check_out_utc, total_price_cents, confirmation_number, status, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := st.ExecContext(ctx, q,
		b.UserID, b.HotelID, b.RoomID, b.CheckInUTC, b.CheckOutUTC,
		b.TotalPriceCents, b.ConfirmationNumber, b.Status, b.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// AddPayment inserts the payment record for a booking within the
// supplied transaction.
func (r *BookingRepo) AddPayment(ctx context.Context, tx Tx, p *model.Payment) error {
	st, err := sqlTx(tx)
	if err != nil {
		return err
	}
	const q = `INSERT INTO payments (booking_id, amount_cents, method, transaction_id, status, paid_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := st.ExecContext(ctx, q, p.BookingID, p.AmountCents, p.Method, p.TransactionID, p.Status, p.PaidAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// AddInvoice inserts the invoice record for a booking within the
// supplied transaction.
func (r *BookingRepo) AddInvoice(ctx context.Context, tx Tx, inv *model.Invoice) error {
	st, err := sqlTx(tx)
	if err != nil {
		return err
	}
	const q = `INSERT INTO invoices (booking_id, file_path, generated_at) VALUES (?, ?, ?)`
	res, err := st.ExecContext(ctx, q, inv.BookingID, inv.FilePath, inv.GeneratedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = uint64(id)
	return nil
}

// BookingDetail is the joined row returned to customers: the booking
// plus the hotel and room context needed to render it without extra
// round trips.
type BookingDetail struct {
	Booking       model.Booking
	HotelName     string
	HotelLocation string
	RoomNumber    string
	RoomType      string
	PaymentStatus string
	InvoicePath   string
}

const bookingDetailQuery = `
SELECT b.id, b.user_id, b.hotel_id, b.room_id, b.check_in_utc, b.check_out_utc,
       b.total_price_cents, b.confirmation_number, b.status, b.created_at,
       h.name, h.location, rm.room_number, rm.room_type,
       COALESCE(p.status, ''), COALESCE(i.file_path, '')
FROM bookings b
JOIN hotels h  ON h.id  = b.hotel_id
JOIN rooms  rm ON rm.id = b.room_id
LEFT JOIN payments p ON p.booking_id = b.id
LEFT JOIN invoices i ON i.booking_id = b.id`

func scanBookingDetail(row interface{ Scan(dest ...any) error }) (*BookingDetail, error) {
	var d BookingDetail
	err := row.Scan(
		&d.Booking.ID, &d.Booking.UserID, &d.Booking.HotelID, &d.Booking.RoomID,
		&d.Booking.CheckInUTC, &d.Booking.CheckOutUTC, &d.Booking.TotalPriceCents,
		&d.Booking.ConfirmationNumber, &d.Booking.Status, &d.Booking.CreatedAt,
		&d.HotelName, &d.HotelLocation, &d.RoomNumber, &d.RoomType,
		&d.PaymentStatus, &d.InvoicePath,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDetailByID fetches one booking with its hotel, room, payment and
// invoice context. It returns ErrBookingNotFound if no row matches and
// ErrForbidden when the booking belongs to a different user.
func (r *BookingRepo) GetDetailByID(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id = ?`, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if d.Booking.UserID != userID {
		return nil, ErrForbidden
	}
	return d, nil
}

// ListByUser returns all bookings of one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, bookingDetailQuery+` WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*BookingDetail
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel marks a PENDING or CONFIRMED booking as CANCELLED. It
// returns ErrForbidden for a foreign booking, ErrConflict when the
// booking is already cancelled, and ErrBookingNotFound when missing.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, userID uint64) error {
	var ownerID uint64
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT user_id, status FROM bookings WHERE id = ?`, bookingID).Scan(&ownerID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	if status == model.BookingStatusCancelled {
		return ErrConflict
	}
	_, err = r.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, model.BookingStatusCancelled, bookingID)
	return err
}
