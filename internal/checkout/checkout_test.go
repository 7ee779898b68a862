package checkout

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking-backend/internal/model"
	"hotel-booking-backend/internal/payment"
	"hotel-booking-backend/internal/repository"
)

// ---- fakes -------------------------------------------------------------

type fakeTx struct {
	commits   int
	rollbacks int
	commitErr error
}

func (t *fakeTx) Commit() error   { t.commits++; return t.commitErr }
func (t *fakeTx) Rollback() error { t.rollbacks++; return nil }

type fakeUoW struct {
	tx     *fakeTx
	begins int
}

func (u *fakeUoW) Begin(ctx context.Context) (repository.Tx, error) {
	u.begins++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return u.tx, nil
}

type fakeUsers struct {
	user *model.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

type fakeCarts struct {
	cart      *model.Cart
	getErr    error
	removes   int
	removeErr error
}

func (f *fakeCarts) GetByID(ctx context.Context, cartID uint64) (*model.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.cart == nil || f.cart.ID != cartID {
		return nil, repository.ErrCartNotFound
	}
	return f.cart, nil
}

func (f *fakeCarts) RemoveItem(ctx context.Context, tx repository.Tx, cartID, itemID uint64) error {
	f.removes++
	if f.removeErr != nil {
		return f.removeErr
	}
	for i := range f.cart.Items {
		if f.cart.Items[i].ID == itemID {
			f.cart.Items = append(f.cart.Items[:i], f.cart.Items[i+1:]...)
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

type fakeRooms struct {
	room       *model.Room
	available  bool
	availCalls int
}

func (f *fakeRooms) GetByID(ctx context.Context, roomID uint64) (*model.Room, error) {
	if f.room == nil || f.room.ID != roomID {
		return nil, repository.ErrRoomNotFound
	}
	return f.room, nil
}

func (f *fakeRooms) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	f.availCalls++
	return f.available, nil
}

type fakeHotels struct {
	hotel *model.Hotel
}

func (f *fakeHotels) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	if f.hotel == nil || f.hotel.ID != id {
		return nil, repository.ErrHotelNotFound
	}
	return f.hotel, nil
}

type fakeLedger struct {
	bookings []*model.Booking
	payments []*model.Payment
	invoices []*model.Invoice
	addErr   error
	payErr   error
	invErr   error
}

func (f *fakeLedger) Add(ctx context.Context, tx repository.Tx, b *model.Booking) error {
	if f.addErr != nil {
		return f.addErr
	}
	b.ID = uint64(len(f.bookings)) + 42
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeLedger) AddPayment(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if f.payErr != nil {
		return f.payErr
	}
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeLedger) AddInvoice(ctx context.Context, tx repository.Tx, inv *model.Invoice) error {
	if f.invErr != nil {
		return f.invErr
	}
	f.invoices = append(f.invoices, inv)
	return nil
}

type fakeGateway struct {
	result        payment.Result
	chargeErr     error
	charges       int
	chargedAmount int64
	refunds       []string
	refundErr     error
}

func (f *fakeGateway) Charge(ctx context.Context, amountCents int64, method string) (payment.Result, error) {
	f.charges++
	f.chargedAmount = amountCents
	return f.result, f.chargeErr
}

func (f *fakeGateway) Refund(ctx context.Context, transactionID string) error {
	f.refunds = append(f.refunds, transactionID)
	return f.refundErr
}

type fakeInvoices struct {
	path  string
	err   error
	calls int
}

func (f *fakeInvoices) GenerateAndStore(ctx context.Context, userID uint64, b *model.Booking) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

type fakeNotifier struct {
	calls int
	last  string
	err   error
}

func (f *fakeNotifier) SendConfirmation(ctx context.Context, address string, b *model.Booking, hotelName, invoicePath string) error {
	f.calls++
	f.last = address
	return f.err
}

// ---- fixture -----------------------------------------------------------

type fixture struct {
	users    *fakeUsers
	carts    *fakeCarts
	rooms    *fakeRooms
	hotels   *fakeHotels
	ledger   *fakeLedger
	gateway  *fakeGateway
	invoices *fakeInvoices
	notifier *fakeNotifier
	tx       *fakeTx
	uow      *fakeUoW
	wf       *Workflow
}

// newFixture wires a workflow around one user with one cart item: two
// nights at 100.00 per night, total 200.00.
func newFixture() *fixture {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)

	f := &fixture{
		users: &fakeUsers{user: &model.User{ID: 7, Email: "guest@example.com", Role: model.RoleCustomer, IsActive: true}},
		carts: &fakeCarts{cart: &model.Cart{
			ID:     3,
			UserID: 7,
			Items: []model.CartItem{{
				ID:              11,
				CartID:          3,
				RoomID:          5,
				CheckInUTC:      checkIn,
				CheckOutUTC:     checkOut,
				TotalPriceCents: 20000,
			}},
		}},
		rooms: &fakeRooms{
			room:      &model.Room{ID: 5, HotelID: 2, RoomNumber: "204", RoomType: "DOUBLE", Capacity: 2, PricePerNightCents: 10000, Status: model.RoomStatusAvailable},
			available: true,
		},
		hotels:   &fakeHotels{hotel: &model.Hotel{ID: 2, Name: "Hotel Adria"}},
		ledger:   &fakeLedger{},
		gateway:  &fakeGateway{result: payment.Result{TransactionID: "tx-9", Status: model.PaymentStatusConfirmed}},
		invoices: &fakeInvoices{path: "/invoices/Invoice_42.txt"},
		notifier: &fakeNotifier{},
		tx:       &fakeTx{},
	}
	f.uow = &fakeUoW{tx: f.tx}
	f.wf = NewWorkflow(f.users, f.carts, f.rooms, f.hotels, f.ledger, f.gateway, f.invoices, f.notifier, f.uow)
	return f
}

func (f *fixture) run(t *testing.T) (*Response, error) {
	t.Helper()
	return f.wf.ProcessSingleItem(context.Background(), 3, 11, Request{
		UserID:        7,
		Email:         "guest@example.com",
		PaymentMethod: payment.MethodCard,
	})
}

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	var ce *Error
	require.ErrorAs(t, err, &ce)
	return ce.Kind
}

// ---- tests -------------------------------------------------------------

func TestProcessSingleItemHappyPath(t *testing.T) {
	f := newFixture()

	resp, err := f.run(t)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.Success)
	assert.Empty(t, resp.ErrorMessage)
	assert.Equal(t, uint64(42), resp.BookingID)
	assert.Equal(t, "Hotel Adria", resp.HotelName)
	assert.Equal(t, "DOUBLE", resp.RoomType)
	assert.Equal(t, int64(20000), resp.TotalPriceCents)
	assert.Equal(t, model.PaymentStatusConfirmed, resp.PaymentStatus)
	assert.Equal(t, "/invoices/Invoice_42.txt", resp.InvoiceURL)
	assert.NotEmpty(t, resp.ConfirmationNumber)

	// exactly one charge for the verbatim cart total
	assert.Equal(t, 1, f.gateway.charges)
	assert.Equal(t, int64(20000), f.gateway.chargedAmount)
	assert.Empty(t, f.gateway.refunds)

	// booking persisted as CONFIRMED with payment and invoice rows
	require.Len(t, f.ledger.bookings, 1)
	b := f.ledger.bookings[0]
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
	assert.Equal(t, uint64(7), b.UserID)
	require.Len(t, f.ledger.payments, 1)
	assert.Equal(t, uint64(42), f.ledger.payments[0].BookingID)
	assert.Equal(t, "tx-9", f.ledger.payments[0].TransactionID)
	require.Len(t, f.ledger.invoices, 1)

	// cart item consumed inside the transaction, which committed once
	assert.Equal(t, 1, f.carts.removes)
	assert.Empty(t, f.carts.cart.Items)
	assert.Equal(t, 1, f.tx.commits)
	assert.Equal(t, 0, f.tx.rollbacks)
	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, "guest@example.com", f.notifier.last)
}

func TestProcessSingleItemUnknownUser(t *testing.T) {
	f := newFixture()
	f.users.user = nil

	resp, err := f.wf.ProcessSingleItem(context.Background(), 3, 11, Request{UserID: 99, PaymentMethod: payment.MethodCard})
	assert.Nil(t, resp)
	assert.Equal(t, KindUnauthorized, kindOf(t, err))
	assert.Equal(t, 0, f.gateway.charges)
}

func TestProcessSingleItemCartNotFound(t *testing.T) {
	f := newFixture()

	resp, err := f.wf.ProcessSingleItem(context.Background(), 77, 11, Request{UserID: 7, PaymentMethod: payment.MethodCard})
	assert.Nil(t, resp)
	assert.Equal(t, KindNotFound, kindOf(t, err))
	assert.Equal(t, 0, f.gateway.charges)
}

func TestProcessSingleItemItemNotFound(t *testing.T) {
	f := newFixture()

	resp, err := f.wf.ProcessSingleItem(context.Background(), 3, 999, Request{UserID: 7, PaymentMethod: payment.MethodCard})
	assert.Nil(t, resp)
	assert.Equal(t, KindNotFound, kindOf(t, err))
	assert.Equal(t, 0, f.gateway.charges)
	assert.Equal(t, 0, f.uow.begins)
}

func TestProcessSingleItemRoomUnavailable(t *testing.T) {
	f := newFixture()
	f.rooms.available = false

	resp, err := f.run(t)
	assert.Nil(t, resp)
	assert.Equal(t, KindConflict, kindOf(t, err))

	// conflict detected before any money moved or rows were written
	assert.Equal(t, 1, f.rooms.availCalls)
	assert.Equal(t, 0, f.gateway.charges)
	assert.Equal(t, 0, f.uow.begins)
	assert.Len(t, f.carts.cart.Items, 1)
}

func TestProcessSingleItemPaymentDeclined(t *testing.T) {
	f := newFixture()
	f.gateway.result = payment.Result{Status: model.PaymentStatusFailed, ErrorMessage: "card declined"}

	resp, err := f.run(t)
	assert.Nil(t, resp)
	assert.Equal(t, KindPaymentFailed, kindOf(t, err))

	// nothing persisted, nothing to refund
	assert.Equal(t, 1, f.gateway.charges)
	assert.Empty(t, f.gateway.refunds)
	assert.Equal(t, 0, f.uow.begins)
	assert.Empty(t, f.ledger.bookings)
	assert.Len(t, f.carts.cart.Items, 1)
}

func TestProcessSingleItemGatewayError(t *testing.T) {
	f := newFixture()
	f.gateway.chargeErr = errors.New("gateway timeout")

	resp, err := f.run(t)
	assert.Nil(t, resp)
	assert.Equal(t, KindPaymentFailed, kindOf(t, err))
	assert.Empty(t, f.gateway.refunds)
	assert.Equal(t, 0, f.uow.begins)
}

func TestProcessSingleItemCommitFailureRefunds(t *testing.T) {
	f := newFixture()
	f.tx.commitErr = errors.New("deadlock")

	resp, err := f.run(t)
	require.NoError(t, err)
	require.NotNil(t, resp)

	// caller sees a generic failure, not the internal commit error
	assert.False(t, resp.Success)
	assert.Equal(t, "checkout process failed", resp.ErrorMessage)
	assert.Equal(t, model.PaymentStatusPending, resp.PaymentStatus)
	assert.Empty(t, resp.ConfirmationNumber)

	// transaction unwound, exactly one compensating refund
	assert.Equal(t, 1, f.tx.rollbacks)
	assert.Equal(t, []string{"tx-9"}, f.gateway.refunds)
	assert.Equal(t, 0, f.notifier.calls)
}

func TestProcessSingleItemPersistFailureRefunds(t *testing.T) {
	f := newFixture()
	f.ledger.addErr = errors.New("insert failed")

	resp, err := f.run(t)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.False(t, resp.Success)
	assert.Equal(t, model.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, 1, f.tx.rollbacks)
	assert.Equal(t, 0, f.tx.commits)
	assert.Equal(t, []string{"tx-9"}, f.gateway.refunds)
}

func TestProcessSingleItemInvoiceFailureRefunds(t *testing.T) {
	f := newFixture()
	f.invoices.err = errors.New("disk full")

	resp, err := f.run(t)
	require.NoError(t, err)
	require.NotNil(t, resp)

	// invoice rendering happens inside the guarded region: the booking
	// insert rolls back and the charge is refunded
	assert.False(t, resp.Success)
	assert.Equal(t, 1, f.invoices.calls)
	assert.Equal(t, 1, f.tx.rollbacks)
	assert.Equal(t, []string{"tx-9"}, f.gateway.refunds)
	assert.Equal(t, 0, f.notifier.calls)
}

func TestProcessSingleItemRefundFailureStillResponds(t *testing.T) {
	f := newFixture()
	f.tx.commitErr = errors.New("deadlock")
	f.gateway.refundErr = errors.New("gateway unreachable")

	resp, err := f.run(t)
	require.NoError(t, err)
	require.NotNil(t, resp)

	// a failed refund is logged, not retried and not escalated; the
	// response still reports the payment as pending
	assert.False(t, resp.Success)
	assert.Equal(t, model.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, []string{"tx-9"}, f.gateway.refunds)
}

// cancellingGateway simulates a client that walks away mid-payment:
// the request context dies while the charge is in flight, and a
// refund attempted on the dead context is rejected the way a real
// HTTP client would reject it.
type cancellingGateway struct {
	fakeGateway
	cancel context.CancelFunc
}

func (g *cancellingGateway) Charge(ctx context.Context, amountCents int64, method string) (payment.Result, error) {
	g.cancel()
	return g.fakeGateway.Charge(ctx, amountCents, method)
}

func (g *cancellingGateway) Refund(ctx context.Context, transactionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.fakeGateway.Refund(ctx, transactionID)
}

func TestProcessSingleItemCancelledAfterChargeStillRefunds(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gw := &cancellingGateway{
		fakeGateway: fakeGateway{result: payment.Result{TransactionID: "tx-cancel", Status: model.PaymentStatusConfirmed}},
		cancel:      cancel,
	}
	wf := NewWorkflow(f.users, f.carts, f.rooms, f.hotels, f.ledger, gw, f.invoices, f.notifier, f.uow)

	resp, err := wf.ProcessSingleItem(ctx, 3, 11, Request{UserID: 7, Email: "guest@example.com", PaymentMethod: payment.MethodCard})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// the charge landed but persistence could not start on the dead
	// context, so the caller sees the generic failure shape
	assert.Equal(t, 1, gw.charges)
	assert.Equal(t, 1, f.uow.begins)
	assert.False(t, resp.Success)
	assert.Equal(t, model.PaymentStatusPending, resp.PaymentStatus)
	assert.Empty(t, f.ledger.bookings)
	assert.Equal(t, 0, f.notifier.calls)

	// cancellation must not short-circuit the compensation: the
	// refund goes out on a detached context
	assert.Equal(t, []string{"tx-cancel"}, gw.refunds)
}

func TestProcessSingleItemNotifyFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("smtp down")

	resp, err := f.run(t)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, f.tx.commits)
	assert.Empty(t, f.gateway.refunds)
}

func TestProcessSingleItemRepeatedCheckout(t *testing.T) {
	f := newFixture()

	first, err := f.run(t)
	require.NoError(t, err)
	require.True(t, first.Success)

	// the item was consumed by the first run, so the second attempt
	// fails at the lookup without touching the gateway again
	resp, err := f.run(t)
	assert.Nil(t, resp)
	assert.Equal(t, KindNotFound, kindOf(t, err))
	assert.Equal(t, 1, f.gateway.charges)
}

func TestConfirmationNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)

	a := newConfirmationNumber(now)
	b := newConfirmationNumber(now)

	require.Len(t, a, 17)
	assert.Equal(t, "20260828-", a[:9])
	assert.Equal(t, strings.ToUpper(a), a)
	assert.NotEqual(t, a, b)
}
