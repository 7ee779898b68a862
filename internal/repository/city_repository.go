// This file defines repository methods for CRUD and lookup operations
// over cities. A City is a destination that can contain multiple
// hotels. Only minimal fields should be exposed in public API
// responses; timestamps stay internal.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"hotel-booking-backend/internal/model"
)

// CityRepo encapsulates all database queries related to cities.  It
// depends on a sql.DB connection which should be configured elsewhere.
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo constructs a CityRepo with the provided DB handle.  This
// allows dependency injection of the database in tests and at startup.
func NewCityRepo(db *sql.DB) *CityRepo {
	return &CityRepo{db: db}
}

// Create inserts a new city.  On success the city's ID field is
// populated with the auto-generated value and a follow-up SELECT
// fills the default timestamp columns.
func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
	const qInsert = "INSERT INTO cities (name, country, post_office) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, c.Name, c.Country, c.PostOffice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qSelect = "SELECT name, country, post_office, created_at, updated_at FROM cities WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.Name, &c.Country, &c.PostOffice, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a city by its ID.  It returns ErrCityNotFound if no
// row is found.
func (r *CityRepo) GetByID(ctx context.Context, id uint64) (*model.City, error) {
	const q = "SELECT id, name, country, post_office, created_at, updated_at FROM cities WHERE id = ?"
	var c model.City
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Country, &c.PostOffice, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns all cities ordered by id. It is used by the public
// browse endpoints; only ID, Name and Country are selected.
func (r *CityRepo) ListAll(ctx context.Context) ([]*model.City, error) {
	const q = `SELECT id, name, country FROM cities ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.City
	for rows.Next() {
		c := &model.City{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Country); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies a city's mutable fields. It returns ErrCityNotFound
// when no row is affected.
func (r *CityRepo) Update(ctx context.Context, c *model.City) error {
	const q = `UPDATE cities
	           SET name = ?, country = ?, post_office = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Country, c.PostOffice, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCityNotFound
	}
	return nil
}

// Delete removes a city. A city that still contains hotels cannot be
// deleted; ErrConflict is returned instead so that handlers can map
// it to HTTP 409.
func (r *CityRepo) Delete(ctx context.Context, id uint64) error {
	var hotels int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels WHERE city_id = ?`, id).Scan(&hotels); err != nil {
		return err
	}
	if hotels > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCityNotFound
	}
	return nil
}
