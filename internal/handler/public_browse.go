// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public browsing API: unauthenticated
// users can list cities, hotels and rooms, search hotels, and probe room
// availability. Sensitive fields are filtered from responses.

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/model"
	"hotel-booking-backend/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
	CityRepo  *repository.CityRepo  // provides access to city data
	HotelRepo *repository.HotelRepo // provides access to hotel data
	RoomRepo  *repository.RoomRepo  // provides access to room data
}

// PublicCity represents a city exposed via the public API.
type PublicCity struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// PublicHotel represents a hotel in list responses.
type PublicHotel struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Rating   *uint8 `json:"rating,omitempty"`
}

// PublicRoom represents a room in list responses. Prices are cents plus
// a derived decimal for display.
type PublicRoom struct {
	ID                 uint64  `json:"id"`
	RoomNumber         string  `json:"room_number"`
	RoomType           string  `json:"room_type"`
	Capacity           uint32  `json:"capacity"`
	PricePerNightCents int64   `json:"price_per_night_cents"`
	PricePerNight      float64 `json:"price_per_night"`
	Status             string  `json:"status"`
}

// GetCities returns all cities. Response JSON contains an "items" array.
func (h *PublicHandler) GetCities(c echo.Context) error {
	cities, err := h.CityRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicCity, 0, len(cities))
	for _, ct := range cities {
		out = append(out, PublicCity{ID: ct.ID, Name: ct.Name, Country: ct.Country})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetHotelsByCity lists hotels of a city. It validates the city exists,
// then returns only non-sensitive fields.
func (h *PublicHandler) GetHotelsByCity(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.CityRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	hotels, err := h.HotelRepo.ListByCity(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicHotel, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, PublicHotel{ID: ht.ID, Name: ht.Name, Location: ht.Location, Rating: ht.Rating})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetHotel returns one hotel with its rooms.
func (h *PublicHandler) GetHotel(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ht, err := h.HotelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.RoomRepo.ListByHotel(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hotel": PublicHotel{ID: ht.ID, Name: ht.Name, Location: ht.Location, Rating: ht.Rating},
		"rooms": publicRooms(rooms),
	})
}

// GetRoomsByHotel lists the rooms of a hotel.
func (h *PublicHandler) GetRoomsByHotel(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.HotelRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.RoomRepo.ListByHotel(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": publicRooms(rooms)})
}

func publicRooms(rooms []*model.Room) []PublicRoom {
	out := make([]PublicRoom, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, PublicRoom{
			ID:                 rm.ID,
			RoomNumber:         rm.RoomNumber,
			RoomType:           rm.RoomType,
			Capacity:           rm.Capacity,
			PricePerNightCents: rm.PricePerNightCents,
			PricePerNight:      float64(rm.PricePerNightCents) / 100,
			Status:             rm.Status,
		})
	}
	return out
}

// SearchHotels handles GET /v1/hotels/search. Supported query
// parameters: name, city, min_rating, max_price_cents, capacity,
// page, page_size. Filters combine with AND.
func (h *PublicHandler) SearchHotels(c echo.Context) error {
	q := repository.HotelSearchQuery{
		Name: strings.TrimSpace(c.QueryParam("name")),
		City: strings.TrimSpace(c.QueryParam("city")),
	}
	if v := c.QueryParam("min_rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 5 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_rating"})
		}
		q.MinRating = n
	}
	if v := c.QueryParam("max_price_cents"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price_cents"})
		}
		q.MaxPriceCents = n
	}
	if v := c.QueryParam("capacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid capacity"})
		}
		q.Capacity = n
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	rows, total, err := h.HotelRepo.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows, "total": total})
}

// GetRoomAvailability handles GET /v1/rooms/:id/availability with
// check_in and check_out query parameters (YYYY-MM-DD). It runs the
// same predicate checkout later re-verifies, so a true answer here is
// a hint, not a hold.
func (h *PublicHandler) GetRoomAvailability(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	checkIn, err1 := time.ParseInLocation("2006-01-02", c.QueryParam("check_in"), time.UTC)
	checkOut, err2 := time.ParseInLocation("2006-01-02", c.QueryParam("check_out"), time.UTC)
	if err1 != nil || err2 != nil || !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out must be valid dates with check_out after check_in"})
	}
	available, err := h.RoomRepo.IsAvailable(c.Request().Context(), id, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id":   id,
		"check_in":  checkIn.Format("2006-01-02"),
		"check_out": checkOut.Format("2006-01-02"),
		"available": available,
	})
}
