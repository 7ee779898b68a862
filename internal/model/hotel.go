package model

import "time"

// Hotel represents a property that offers rooms for booking.
// Hotels belong to a city and expose a star rating used by the
// public search endpoints.  Each hotel has a unique name per city.
//
// Fields:
//  ID        – primary key identifier.
//  CityID    – ID of the containing city.
//  Name      – unique hotel name per city.
//  Owner     – display name of the hotel operator.
//  Location  – street address or free-form location text.
//  Rating    – star rating from 1 to 5 (nil if unrated).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hotel struct {
	ID        uint64    // hotels.id
	CityID    uint64    // hotels.city_id
	Name      string    // hotels.name
	Owner     string    // hotels.owner
	Location  string    // hotels.location
	Rating    *uint8    // hotels.rating (nullable)
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}
