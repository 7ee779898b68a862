package router

import (
	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/handler"
	"hotel-booking-backend/internal/middleware"
	"hotel-booking-backend/internal/model"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Customers manage
// their cart, check out single items, and view or cancel their own
// bookings.
func RegisterCustomer(e *echo.Echo, cart *handler.CartHandler, co *handler.CheckoutHandler, bk *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)

	// ---- Cart ----
	g.GET("/cart", cart.GetCart)
	g.POST("/cart/items", cart.AddItem)
	g.DELETE("/cart/items/:item_id", cart.RemoveItem)

	// ---- Checkout ----
	// One cart item per call; the workflow re-checks availability,
	// charges, persists atomically and compensates on failure.
	g.POST("/cart/items/:item_id/checkout", co.Checkout)

	// ---- Bookings ----
	g.GET("/bookings", bk.ListMyBookings)
	g.GET("/bookings/:id", bk.GetBooking)
	g.GET("/bookings/:id/invoice", bk.DownloadInvoice)
	g.POST("/bookings/:id/cancel", bk.CancelBooking)
}
