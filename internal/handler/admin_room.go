package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/model"
	"hotel-booking-backend/internal/repository"
)

type roomBody struct {
	RoomNumber         string `json:"room_number"`
	RoomType           string `json:"room_type"`
	Capacity           uint32 `json:"capacity"`
	PricePerNightCents int64  `json:"price_per_night_cents"`
	Status             string `json:"status"`
}

func normalizeRoomStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", model.RoomStatusAvailable:
		return model.RoomStatusAvailable, true
	case model.RoomStatusUnavailable:
		return model.RoomStatusUnavailable, true
	}
	return "", false
}

// CreateRoom handles POST /v1/admin/hotels/:id/rooms.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body roomBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	number := strings.TrimSpace(body.RoomNumber)
	if number == "" || body.Capacity < 1 || body.PricePerNightCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number, capacity and price_per_night_cents are required"})
	}
	status, ok := normalizeRoomStatus(body.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	ctx := c.Request().Context()
	if _, err := h.HotelRepo.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	room := &model.Room{
		HotelID:            hotelID,
		RoomNumber:         number,
		RoomType:           strings.ToUpper(strings.TrimSpace(body.RoomType)),
		Capacity:           body.Capacity,
		PricePerNightCents: body.PricePerNightCents,
		Status:             status,
	}
	if err := h.RoomRepo.Create(ctx, room); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists in this hotel"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /v1/admin/rooms/:id. Setting the status to
// UNAVAILABLE takes the room out of every future availability check.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body roomBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	room, err := h.RoomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if number := strings.TrimSpace(body.RoomNumber); number != "" {
		room.RoomNumber = number
	}
	if rt := strings.TrimSpace(body.RoomType); rt != "" {
		room.RoomType = strings.ToUpper(rt)
	}
	if body.Capacity > 0 {
		room.Capacity = body.Capacity
	}
	if body.PricePerNightCents > 0 {
		room.PricePerNightCents = body.PricePerNightCents
	}
	if strings.TrimSpace(body.Status) != "" {
		status, ok := normalizeRoomStatus(body.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		room.Status = status
	}
	if err := h.RoomRepo.Update(ctx, room); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists in this hotel"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.RoomRepo.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
