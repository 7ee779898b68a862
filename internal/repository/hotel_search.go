package repository

import (
	"context"
	"database/sql"
	"strings"
)

// HotelSearchQuery defines filters & pagination for searching hotels.
type HotelSearchQuery struct {
	Name          string
	City          string
	MinRating     int
	MaxPriceCents int64
	Capacity      int
	Page          int
	PageSize      int
}

// PublicHotelRow is one row of the public hotel search result. The
// price fields describe the cheapest available room of the hotel.
type PublicHotelRow struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	CityID        uint64  `json:"city_id"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Location      string  `json:"location"`
	Rating        *uint8  `json:"rating,omitempty"`
	MinPriceCents int64   `json:"min_price_cents"`
	MinPrice      float64 `json:"min_price"`
}

// Search returns a page of hotels matching the query plus the total
// match count. Filters combine with AND; name and city match as
// case-insensitive substrings. The per-hotel minimum price only
// considers rooms that are AVAILABLE and large enough for the
// requested capacity.
func (r *HotelRepo) Search(ctx context.Context, q HotelSearchQuery) ([]PublicHotelRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.Name != "" {
		where = append(where, "LOWER(h.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}
	if q.City != "" {
		where = append(where, "LOWER(c.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	if q.MinRating > 0 {
		where = append(where, "h.rating >= ?")
		args = append(args, q.MinRating)
	}

	roomCond := "rm.status = 'AVAILABLE'"
	roomArgs := []any{}
	if q.Capacity > 0 {
		roomCond += " AND rm.capacity >= ?"
		roomArgs = append(roomArgs, q.Capacity)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	having := ""
	havingArgs := []any{}
	if q.MaxPriceCents > 0 {
		having = "HAVING MIN(rm.price_per_night_cents) <= ?"
		havingArgs = append(havingArgs, q.MaxPriceCents)
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	offset := (q.Page - 1) * q.PageSize

	base := `FROM hotels h
	         JOIN cities c ON c.id = h.city_id
	         JOIN rooms rm ON rm.hotel_id = h.id AND ` + roomCond + `
	         WHERE ` + cond + `
	         GROUP BY h.id, h.name, h.city_id, c.name, c.country, h.location, h.rating ` + having

	countQ := `SELECT COUNT(*) FROM (SELECT h.id ` + base + `) x`
	countArgs := append(append(append([]any{}, roomArgs...), args...), havingArgs...)
	var total int64
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQ := `SELECT h.id, h.name, h.city_id, c.name, c.country, h.location, h.rating,
	                 MIN(rm.price_per_night_cents) ` + base + `
	          ORDER BY MIN(rm.price_per_night_cents), h.id
	          LIMIT ? OFFSET ?`
	listArgs := append(countArgs, q.PageSize, offset)
	rows, err := r.db.QueryContext(ctx, listQ, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicHotelRow, 0)
	for rows.Next() {
		var row PublicHotelRow
		var rating sql.NullInt16
		if err := rows.Scan(&row.ID, &row.Name, &row.CityID, &row.City, &row.Country, &row.Location, &rating, &row.MinPriceCents); err != nil {
			return nil, 0, err
		}
		if rating.Valid {
			v := uint8(rating.Int16)
			row.Rating = &v
		}
		row.MinPrice = float64(row.MinPriceCents) / 100
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
