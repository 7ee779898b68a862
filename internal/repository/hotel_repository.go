package repository

import (
	"context"
	"database/sql"
	"errors"

	"hotel-booking-backend/internal/model"
)

// HotelRepo encapsulates database operations for hotels.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo given a DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// Create inserts a new hotel into the database.  On success the
// hotel's ID field is populated with the auto-generated value and
// the timestamp columns are read back.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	const qInsert = "INSERT INTO hotels (city_id, name, owner, location, rating) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, h.CityID, h.Name, h.Owner, h.Location, h.Rating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM hotels WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, h.ID).Scan(&h.CreatedAt, &h.UpdatedAt)
}

// GetByID fetches a hotel by its ID.  It returns ErrHotelNotFound if
// no row is found.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = "SELECT id, city_id, name, owner, location, rating, created_at, updated_at FROM hotels WHERE id = ?"
	var h model.Hotel
	var rating sql.NullInt16
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.CityID, &h.Name, &h.Owner, &h.Location, &rating, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	if rating.Valid {
		v := uint8(rating.Int16)
		h.Rating = &v
	}
	return &h, nil
}

// ListByCity returns all hotels in a city ordered by id. Used by the
// public browse endpoints; timestamps are not selected.
func (r *HotelRepo) ListByCity(ctx context.Context, cityID uint64) ([]*model.Hotel, error) {
	const q = `SELECT id, city_id, name, owner, location, rating
	           FROM hotels WHERE city_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hotel
	for rows.Next() {
		h := new(model.Hotel)
		var rating sql.NullInt16
		if err := rows.Scan(&h.ID, &h.CityID, &h.Name, &h.Owner, &h.Location, &rating); err != nil {
			return nil, err
		}
		if rating.Valid {
			v := uint8(rating.Int16)
			h.Rating = &v
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies a hotel's mutable fields. It returns
// ErrHotelNotFound when no row is affected.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	const q = `UPDATE hotels
	           SET city_id = ?, name = ?, owner = ?, location = ?, rating = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.CityID, h.Name, h.Owner, h.Location, h.Rating, h.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// Delete removes a hotel together with its rooms. Hotels with
// existing bookings cannot be deleted; ErrConflict is returned. The
// deletion occurs within a transaction to maintain integrity.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
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
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels WHERE id = ?`, id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		err = ErrHotelNotFound
		return err
	}
	var bookings int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE hotel_id = ?`, id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE ci FROM cart_items ci
		 JOIN rooms rm ON rm.id = ci.room_id
		 WHERE rm.hotel_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM rooms WHERE hotel_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
