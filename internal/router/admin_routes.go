package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/handler"
	"hotel-booking-backend/internal/middleware"
	"hotel-booking-backend/internal/model"
)

// RegisterAdmin registers ADMIN-scoped catalog endpoints under
// /v1/admin.  All routes require a valid JWT and the ADMIN role.
// Listing endpoints live on the public browse API; admin routes only
// mutate.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Cities ----
	g.POST("/cities", a.CreateCity)
	g.PUT("/cities/:id", a.UpdateCity)
	g.PATCH("/cities/:id", a.UpdateCity)
	g.DELETE("/cities/:id", a.DeleteCity)

	// ---- Hotels ----
	g.POST("/hotels", a.CreateHotel)
	g.PUT("/hotels/:id", a.UpdateHotel)
	g.PATCH("/hotels/:id", a.UpdateHotel)
	g.DELETE("/hotels/:id", a.DeleteHotel)

	// ---- Rooms ----
	g.POST("/hotels/:id/rooms", a.CreateRoom)
	g.PUT("/rooms/:id", a.UpdateRoom)
	g.PATCH("/rooms/:id", a.UpdateRoom)
	g.DELETE("/rooms/:id", a.DeleteRoom)
}
