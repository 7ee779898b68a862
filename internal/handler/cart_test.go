package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking-backend/internal/model"
	"hotel-booking-backend/internal/repository"
)

type fakeCartStore struct {
	cart  *model.Cart
	added []*model.CartItem
}

func (f *fakeCartStore) GetOrCreateForUser(ctx context.Context, userID uint64) (*model.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartStore) AddItem(ctx context.Context, cartID uint64, room *model.Room, it *model.CartItem) error {
	it.ID = uint64(len(f.added)) + 11
	it.CartID = cartID
	it.RoomID = room.ID
	nights := int64(it.CheckOutUTC.Sub(it.CheckInUTC).Hours() / 24)
	it.TotalPriceCents = nights * room.PricePerNightCents
	f.added = append(f.added, it)
	return nil
}

func (f *fakeCartStore) RemoveItemDirect(ctx context.Context, cartID, itemID uint64) error {
	return nil
}

type fakeRoomFinder struct {
	room       *model.Room
	available  bool
	availCalls int
}

func (f *fakeRoomFinder) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	if f.room == nil || f.room.ID != id {
		return nil, repository.ErrRoomNotFound
	}
	return f.room, nil
}

func (f *fakeRoomFinder) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	f.availCalls++
	return f.available, nil
}

func addItemContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	return c, rec
}

func TestCartAddItemAvailableRoom(t *testing.T) {
	carts := &fakeCartStore{cart: &model.Cart{ID: 3, UserID: 7}}
	rooms := &fakeRoomFinder{
		room:      &model.Room{ID: 5, HotelID: 2, RoomType: "DOUBLE", PricePerNightCents: 10000, Status: model.RoomStatusAvailable},
		available: true,
	}
	h := &CartHandler{carts: carts, rooms: rooms}

	c, rec := addItemContext(t, `{"room_id":5,"check_in":"2026-09-10","check_out":"2026-09-12"}`)
	require.NoError(t, h.AddItem(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, rooms.availCalls)
	require.Len(t, carts.added, 1)
	assert.Equal(t, int64(20000), carts.added[0].TotalPriceCents)
}

func TestCartAddItemUnavailableRoomConflicts(t *testing.T) {
	carts := &fakeCartStore{cart: &model.Cart{ID: 3, UserID: 7}}
	rooms := &fakeRoomFinder{
		room:      &model.Room{ID: 5, HotelID: 2, RoomType: "DOUBLE", PricePerNightCents: 10000, Status: model.RoomStatusAvailable},
		available: false,
	}
	h := &CartHandler{carts: carts, rooms: rooms}

	c, rec := addItemContext(t, `{"room_id":5,"check_in":"2026-09-10","check_out":"2026-09-12"}`)
	require.NoError(t, h.AddItem(c))

	// the unavailable room never reaches the cart
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, rooms.availCalls)
	assert.Empty(t, carts.added)
	assert.Contains(t, rec.Body.String(), "not available")
}

func TestCartAddItemBadDates(t *testing.T) {
	carts := &fakeCartStore{cart: &model.Cart{ID: 3, UserID: 7}}
	rooms := &fakeRoomFinder{room: &model.Room{ID: 5}, available: true}
	h := &CartHandler{carts: carts, rooms: rooms}

	c, rec := addItemContext(t, `{"room_id":5,"check_in":"10.09.2026","check_out":"12.09.2026"}`)
	require.NoError(t, h.AddItem(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, rooms.availCalls)
	assert.Empty(t, carts.added)
}
