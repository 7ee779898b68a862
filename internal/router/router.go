package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"hotel-booking-backend/internal/handler"    // handlers that implement business logic
	"hotel-booking-backend/internal/middleware" // JWT authentication and role enforcement
	"hotel-booking-backend/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Session-less operations: register, login, token exchange, logout.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotating refresh: revokes the presented token and issues a new pair.
	g.POST("/refresh", a.Refresh)
	// Non-rotating: issues a fresh access token for an existing session.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a refresh_token body or a bearer token; see the
	// handler for the one-session vs all-sessions distinction.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	// Any authenticated user may inspect their own identity.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints.  The
// PublicHandler returns sanitized data for cities, hotels and rooms; no JWT
// or role middleware applies so guests can explore the catalog before
// registering.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/cities", p.GetCities)
	e.GET("/v1/cities/:id/hotels", p.GetHotelsByCity)
	e.GET("/v1/hotels/:id", p.GetHotel)
	e.GET("/v1/hotels/:id/rooms", p.GetRoomsByHotel)
	// Filtered, paginated hotel search across the whole catalog.
	e.GET("/v1/search/hotels", p.SearchHotels)
	// Availability probe for a concrete room and date range.  The answer is
	// advisory: checkout re-verifies before charging.
	e.GET("/v1/rooms/:id/availability", p.GetRoomAvailability)
}
