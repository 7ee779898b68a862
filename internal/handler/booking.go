package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/repository"
)

// BookingHandler serves a customer's own bookings: listing, detail,
// cancellation and invoice download. Ownership is enforced in the
// repository; foreign bookings answer 403.
type BookingHandler struct {
	BookingRepo *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler and panics on nil deps.
func NewBookingHandler(bookingRepo *repository.BookingRepo) *BookingHandler {
	if bookingRepo == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{BookingRepo: bookingRepo}
}

type bookingView struct {
	ID                 uint64  `json:"id"`
	HotelName          string  `json:"hotel_name"`
	HotelLocation      string  `json:"hotel_location"`
	RoomNumber         string  `json:"room_number"`
	RoomType           string  `json:"room_type"`
	CheckIn            string  `json:"check_in"`
	CheckOut           string  `json:"check_out"`
	TotalPriceCents    int64   `json:"total_price_cents"`
	TotalPrice         float64 `json:"total_price"`
	ConfirmationNumber string  `json:"confirmation_number"`
	Status             string  `json:"status"`
	PaymentStatus      string  `json:"payment_status,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

func toBookingView(d *repository.BookingDetail) bookingView {
	return bookingView{
		ID:                 d.Booking.ID,
		HotelName:          d.HotelName,
		HotelLocation:      d.HotelLocation,
		RoomNumber:         d.RoomNumber,
		RoomType:           d.RoomType,
		CheckIn:            d.Booking.CheckInUTC.Format("2006-01-02"),
		CheckOut:           d.Booking.CheckOutUTC.Format("2006-01-02"),
		TotalPriceCents:    d.Booking.TotalPriceCents,
		TotalPrice:         float64(d.Booking.TotalPriceCents) / 100,
		ConfirmationNumber: d.Booking.ConfirmationNumber,
		Status:             d.Booking.Status,
		PaymentStatus:      d.PaymentStatus,
		CreatedAt:          d.Booking.CreatedAt.Format(time.RFC3339),
	}
}

// ListMyBookings handles GET /v1/bookings, newest first.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]bookingView, 0, len(details))
	for _, d := range details {
		out = append(out, toBookingView(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.BookingRepo.GetDetailByID(c.Request().Context(), id, userID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingView(d))
}

// DownloadInvoice handles GET /v1/bookings/:id/invoice and streams
// the stored invoice document.
func (h *BookingHandler) DownloadInvoice(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.BookingRepo.GetDetailByID(c.Request().Context(), id, userID)
	if err != nil {
		return writeBookingError(c, err)
	}
	if d.InvoicePath == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no invoice for this booking"})
	}
	return c.Attachment(d.InvoicePath, "invoice.txt")
}

// CancelBooking handles POST /v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.BookingRepo.Cancel(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
		}
		return writeBookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func writeBookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
}
