package handler

import (
	"hotel-booking-backend/internal/repository" // repository holds data access layer
)

// AdminHandler bundles repositories for administrators to manage the
// city, hotel and room catalog.
type AdminHandler struct {
	CityRepo  *repository.CityRepo  // CityRepo provides city persistence
	HotelRepo *repository.HotelRepo // HotelRepo provides hotel persistence
	RoomRepo  *repository.RoomRepo  // RoomRepo provides room persistence
}

// NewAdminHandler constructs a new AdminHandler and panics if any dependency is nil
func NewAdminHandler(cityRepo *repository.CityRepo, hotelRepo *repository.HotelRepo, roomRepo *repository.RoomRepo) *AdminHandler {
	if cityRepo == nil || hotelRepo == nil || roomRepo == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		CityRepo:  cityRepo,
		HotelRepo: hotelRepo,
		RoomRepo:  roomRepo,
	}
}
