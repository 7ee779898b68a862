package model

import "time"

// City represents a destination city that hotels belong to.
// Each city can contain multiple hotels.  This struct corresponds
// to a row in the `cities` table.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – city name, unique per country.
//  Country    – country the city is located in.
//  PostOffice – postal service code used on invoices.
//  CreatedAt  – timestamp when the city was created.
//  UpdatedAt  – timestamp of last update.
type City struct {
	ID         uint64    // cities.id
	Name       string    // cities.name
	Country    string    // cities.country
	PostOffice string    // cities.post_office
	CreatedAt  time.Time // cities.created_at
	UpdatedAt  time.Time // cities.updated_at
}
