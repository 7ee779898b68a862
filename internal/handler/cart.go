package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hotel-booking-backend/internal/model"
	"hotel-booking-backend/internal/repository"
)

// cartStore is the slice of the cart repository this handler needs.
type cartStore interface {
	GetOrCreateForUser(ctx context.Context, userID uint64) (*model.Cart, error)
	AddItem(ctx context.Context, cartID uint64, room *model.Room, it *model.CartItem) error
	RemoveItemDirect(ctx context.Context, cartID, itemID uint64) error
}

// roomFinder resolves rooms and answers availability for a date range.
type roomFinder interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
	IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error)
}

// CartHandler serves the authenticated customer's cart. A cart is
// created lazily on first access; items are provisional — adding one
// verifies availability for the requested dates but places no hold,
// so the room is probed again during checkout.
type CartHandler struct {
	carts cartStore
	rooms roomFinder
}

// NewCartHandler constructs a CartHandler and panics on nil deps.
func NewCartHandler(cartRepo *repository.CartRepo, roomRepo *repository.RoomRepo) *CartHandler {
	if cartRepo == nil || roomRepo == nil {
		panic("nil repository passed to NewCartHandler")
	}
	return &CartHandler{carts: cartRepo, rooms: roomRepo}
}

type cartItemView struct {
	ID              uint64  `json:"id"`
	RoomID          uint64  `json:"room_id"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Nights          int     `json:"nights"`
	TotalPriceCents int64   `json:"total_price_cents"`
	TotalPrice      float64 `json:"total_price"`
}

func cartView(cart *model.Cart) echo.Map {
	items := make([]cartItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemView{
			ID:              it.ID,
			RoomID:          it.RoomID,
			CheckIn:         it.CheckInUTC.Format("2006-01-02"),
			CheckOut:        it.CheckOutUTC.Format("2006-01-02"),
			Nights:          it.Nights(),
			TotalPriceCents: it.TotalPriceCents,
			TotalPrice:      float64(it.TotalPriceCents) / 100,
		})
	}
	return echo.Map{"cart_id": cart.ID, "items": items}
}

// GetCart handles GET /v1/cart and returns the caller's cart,
// creating an empty one on first use.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cart, err := h.carts.GetOrCreateForUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cartView(cart))
}

// AddItem handles POST /v1/cart/items. The room must exist, be free
// for the requested dates and the dates must span at least one night;
// the stored total is nights times the room's current nightly price.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		RoomID   uint64 `json:"room_id"`
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
	}
	if err := c.Bind(&body); err != nil || body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id, check_in and check_out are required"})
	}
	checkIn, err1 := time.ParseInLocation("2006-01-02", body.CheckIn, time.UTC)
	checkOut, err2 := time.ParseInLocation("2006-01-02", body.CheckOut, time.UTC)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	room, err := h.rooms.GetByID(ctx, body.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	available, err := h.rooms.IsAvailable(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !available {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available for the selected dates"})
	}
	cart, err := h.carts.GetOrCreateForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	item := &model.CartItem{CheckInUTC: checkIn, CheckOutUTC: checkOut}
	if err := h.carts.AddItem(ctx, cart.ID, room, item); err != nil {
		if errors.Is(err, repository.ErrInvalidDateRange) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add item"})
	}
	return c.JSON(http.StatusCreated, cartItemView{
		ID:              item.ID,
		RoomID:          item.RoomID,
		CheckIn:         item.CheckInUTC.Format("2006-01-02"),
		CheckOut:        item.CheckOutUTC.Format("2006-01-02"),
		Nights:          item.Nights(),
		TotalPriceCents: item.TotalPriceCents,
		TotalPrice:      float64(item.TotalPriceCents) / 100,
	})
}

// RemoveItem handles DELETE /v1/cart/items/:item_id.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	ctx := c.Request().Context()
	cart, err := h.carts.GetOrCreateForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.carts.RemoveItemDirect(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
