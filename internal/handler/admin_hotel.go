package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/model"
	"hotel-booking-backend/internal/repository"
)

type hotelBody struct {
	CityID   uint64 `json:"city_id"`
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Location string `json:"location"`
	Rating   *uint8 `json:"rating"`
}

// CreateHotel handles POST /v1/admin/hotels. The referenced city must
// exist and an optional rating must be 1..5.
func (h *AdminHandler) CreateHotel(c echo.Context) error {
	var body hotelBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || body.CityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city_id are required"})
	}
	if body.Rating != nil && (*body.Rating < 1 || *body.Rating > 5) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	ctx := c.Request().Context()
	if _, err := h.CityRepo.GetByID(ctx, body.CityID); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	hotel := &model.Hotel{
		CityID:   body.CityID,
		Name:     name,
		Owner:    strings.TrimSpace(body.Owner),
		Location: strings.TrimSpace(body.Location),
		Rating:   body.Rating,
	}
	if err := h.HotelRepo.Create(ctx, hotel); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel already exists in this city"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create hotel"})
	}
	return c.JSON(http.StatusCreated, hotel)
}

// UpdateHotel handles PUT /v1/admin/hotels/:id.
func (h *AdminHandler) UpdateHotel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body hotelBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Rating != nil && (*body.Rating < 1 || *body.Rating > 5) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	ctx := c.Request().Context()
	hotel, err := h.HotelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if name := strings.TrimSpace(body.Name); name != "" {
		hotel.Name = name
	}
	if owner := strings.TrimSpace(body.Owner); owner != "" {
		hotel.Owner = owner
	}
	if loc := strings.TrimSpace(body.Location); loc != "" {
		hotel.Location = loc
	}
	if body.Rating != nil {
		hotel.Rating = body.Rating
	}
	if err := h.HotelRepo.Update(ctx, hotel); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel already exists in this city"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, hotel)
}

// DeleteHotel handles DELETE /v1/admin/hotels/:id. Hotels with
// bookings cannot be removed; their rooms and dangling cart items go
// with them otherwise.
func (h *AdminHandler) DeleteHotel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.HotelRepo.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrHotelNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel has bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
