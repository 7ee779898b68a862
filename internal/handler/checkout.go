package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/checkout"
	"hotel-booking-backend/internal/queue"
	"hotel-booking-backend/internal/repository"
	queue_publisher "hotel-booking-backend/internal/service"
)

// CheckoutHandler drives the purchase of a single cart item. It owns
// no business rules; classification of failures and compensation live
// in the checkout workflow, this layer only translates outcomes to
// HTTP and fans out the confirmation event.
type CheckoutHandler struct {
	Workflow      *checkout.Workflow
	CartRepo      *repository.CartRepo
	PublishEvents bool
}

// NewCheckoutHandler constructs a CheckoutHandler and panics on nil deps.
func NewCheckoutHandler(wf *checkout.Workflow, cartRepo *repository.CartRepo, publishEvents bool) *CheckoutHandler {
	if wf == nil || cartRepo == nil {
		panic("nil dependency passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Workflow: wf, CartRepo: cartRepo, PublishEvents: publishEvents}
}

type checkoutReq struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	PaymentMethod string `json:"payment_method"`
}

// Checkout handles POST /v1/cart/items/:item_id/checkout.
//
// Outcome mapping: success and the post-payment generic failure both
// answer 200 with the workflow's response body; classified failures
// map to 401 (unknown user), 404 (cart/item/room gone), 409 (room no
// longer available) and 402 (payment declined).
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var body checkoutReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PaymentMethod == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method is required"})
	}

	ctx := c.Request().Context()
	cart, err := h.CartRepo.GetOrCreateForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	resp, err := h.Workflow.ProcessSingleItem(ctx, cart.ID, itemID, checkout.Request{
		UserID:        userID,
		FirstName:     body.FirstName,
		LastName:      body.LastName,
		Email:         body.Email,
		PhoneNumber:   body.PhoneNumber,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		return writeCheckoutError(c, err)
	}

	if resp.Success && h.PublishEvents {
		go publishConfirmed(resp, userID)
	}
	return c.JSON(http.StatusOK, resp)
}

// writeCheckoutError maps a classified workflow error to its HTTP
// status. Unclassified errors stay generic 500s.
func writeCheckoutError(c echo.Context, err error) error {
	if ce, ok := err.(*checkout.Error); ok {
		switch ce.Kind {
		case checkout.KindUnauthorized:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": ce.Msg})
		case checkout.KindNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": ce.Msg})
		case checkout.KindConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": ce.Msg})
		case checkout.KindPaymentFailed:
			return c.JSON(http.StatusPaymentRequired, echo.Map{
				"error":          ce.Msg,
				"payment_status": "FAILED",
			})
		}
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout process failed"})
}

// publishConfirmed emits the booking.confirmed event. Runs detached
// from the request; a broker outage must not delay or fail the
// response the customer already received.
func publishConfirmed(resp *checkout.Response, userID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.BookingConfirmedEvent{
		BookingID:          resp.BookingID,
		UserID:             userID,
		HotelID:            resp.HotelID,
		HotelName:          resp.HotelName,
		RoomID:             resp.RoomID,
		RoomType:           resp.RoomType,
		ConfirmationNumber: resp.ConfirmationNumber,
		CheckIn:            resp.CheckIn,
		CheckOut:           resp.CheckOut,
		TotalPriceCents:    resp.TotalPriceCents,
		ConfirmedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("checkout-handler: publish booking.confirmed failed | booking=%d: %v", resp.BookingID, err)
	}
}
