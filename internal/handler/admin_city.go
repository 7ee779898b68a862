package handler // handler package contains admin catalog handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/model"
	"hotel-booking-backend/internal/repository"
)

type cityBody struct {
	Name       string `json:"name"`
	Country    string `json:"country"`
	PostOffice string `json:"post_office"`
}

// CreateCity handles POST /v1/admin/cities.
func (h *AdminHandler) CreateCity(c echo.Context) error {
	var body cityBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	country := strings.TrimSpace(body.Country)
	if name == "" || country == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and country are required"})
	}
	city := &model.City{
		Name:       name,
		Country:    country,
		PostOffice: strings.TrimSpace(body.PostOffice),
	}
	if err := h.CityRepo.Create(c.Request().Context(), city); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "city already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create city"})
	}
	return c.JSON(http.StatusCreated, city)
}

// UpdateCity handles PUT /v1/admin/cities/:id.
func (h *AdminHandler) UpdateCity(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body cityBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	city, err := h.CityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if name := strings.TrimSpace(body.Name); name != "" {
		city.Name = name
	}
	if country := strings.TrimSpace(body.Country); country != "" {
		city.Country = country
	}
	if po := strings.TrimSpace(body.PostOffice); po != "" {
		city.PostOffice = po
	}
	if err := h.CityRepo.Update(ctx, city); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "city already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, city)
}

// DeleteCity handles DELETE /v1/admin/cities/:id. Cities that still
// have hotels cannot be removed.
func (h *AdminHandler) DeleteCity(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.CityRepo.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCityNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "city still has hotels"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
