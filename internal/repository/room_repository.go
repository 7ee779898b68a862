package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hotel-booking-backend/internal/model"
)

// RoomRepo encapsulates database operations for rooms, including the
// availability probe used by both the cart and the checkout workflow.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo given a DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new room.  On success the room's ID field is
// populated with the auto-generated value.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (hotel_id, room_number, room_type, capacity, price_per_night_cents, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.HotelID, rm.RoomNumber, rm.RoomType, rm.Capacity, rm.PricePerNightCents, rm.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// GetByID fetches a room by its ID.  It returns ErrRoomNotFound if no
// row is found.  The checkout workflow treats the result as read-only.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, hotel_id, room_number, room_type, capacity, price_per_night_cents, status, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var rm model.Room
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rm.ID, &rm.HotelID, &rm.RoomNumber, &rm.RoomType, &rm.Capacity,
		&rm.PricePerNightCents, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByHotel returns all rooms of a hotel ordered by room number.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.Room, error) {
	const q = `SELECT id, hotel_id, room_number, room_type, capacity, price_per_night_cents, status
	           FROM rooms WHERE hotel_id = ? ORDER BY room_number`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		rm := new(model.Room)
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomNumber, &rm.RoomType, &rm.Capacity, &rm.PricePerNightCents, &rm.Status); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsAvailable reports whether a room can be booked for the given
// [checkIn, checkOut) window. A room is available when its status is
// AVAILABLE and no PENDING or CONFIRMED booking overlaps the window.
// This is a best-effort check-then-act: two concurrent checkouts for
// the same room and dates can both pass it before either commits.
func (r *RoomRepo) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM rooms WHERE id = ?`, roomID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrRoomNotFound
		}
		return false, err
	}
	if status != model.RoomStatusAvailable {
		return false, nil
	}
	// Overlap: existing.check_in < requested.check_out AND
	// existing.check_out > requested.check_in.
	const q = `SELECT COUNT(*) FROM bookings
	           WHERE room_id = ?
	             AND status IN ('PENDING','CONFIRMED')
	             AND check_in_utc < ?
	             AND check_out_utc > ?`
	var overlapping int
	if err := r.db.QueryRowContext(ctx, q, roomID, checkOut.UTC(), checkIn.UTC()).Scan(&overlapping); err != nil {
		return false, err
	}
	return overlapping == 0, nil
}

// Update modifies a room's mutable fields. It returns ErrRoomNotFound
// when no row is affected.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms
	           SET room_number = ?, room_type = ?, capacity = ?, price_per_night_cents = ?, status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.RoomNumber, rm.RoomType, rm.Capacity, rm.PricePerNightCents, rm.Status, rm.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Delete removes a room. Rooms referenced by bookings cannot be
// deleted (ErrConflict); dangling cart items are removed alongside.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var exists int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE id = ?`, id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		err = ErrRoomNotFound
		return err
	}
	var bookings int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE room_id = ?`, id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE room_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
