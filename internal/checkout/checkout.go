// Package checkout implements the single-item checkout workflow: the
// only piece of the system with real sequencing logic, compensating
// actions and a cross-step failure model. It owns no storage; every
// side effect goes through one of the typed collaborator interfaces
// below, so the whole workflow is testable against in-memory fakes.
package checkout

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"hotel-booking-backend/internal/model"
	"hotel-booking-backend/internal/payment"
	"hotel-booking-backend/internal/repository"
)

// UserDirectory resolves the requesting user.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// CartStore holds pending reservation line items per cart. RemoveItem
// runs inside the caller-managed transaction so the item consumption
// commits or rolls back together with the booking insert.
type CartStore interface {
	GetByID(ctx context.Context, cartID uint64) (*model.Cart, error)
	RemoveItem(ctx context.Context, tx repository.Tx, cartID, itemID uint64) error
}

// RoomInventory reports room details and availability for a date
// range. The availability probe is a second independent read: cart
// contents are not a reservation guarantee.
type RoomInventory interface {
	GetByID(ctx context.Context, roomID uint64) (*model.Room, error)
	IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error)
}

// HotelDirectory resolves the hotel referenced by a room; the
// workflow only ever needs this forward lookup, never back-traversal.
type HotelDirectory interface {
	GetByID(ctx context.Context, id uint64) (*model.Hotel, error)
}

// BookingLedger persists confirmed bookings with their payment and
// invoice records, all within the caller-managed transaction.
type BookingLedger interface {
	Add(ctx context.Context, tx repository.Tx, b *model.Booking) error
	AddPayment(ctx context.Context, tx repository.Tx, p *model.Payment) error
	AddInvoice(ctx context.Context, tx repository.Tx, inv *model.Invoice) error
}

// InvoiceGenerator renders and stores a billing document for a
// booking and returns its storage location. The booking is passed in
// memory because generation happens before the enclosing transaction
// commits.
type InvoiceGenerator interface {
	GenerateAndStore(ctx context.Context, userID uint64, b *model.Booking) (string, error)
}

// Notifier dispatches the confirmation message. Best-effort: failures
// after commit never unwind the booking.
type Notifier interface {
	SendConfirmation(ctx context.Context, address string, b *model.Booking, hotelName, invoicePath string) error
}

// Request carries the checkout details supplied by the caller.
type Request struct {
	UserID        uint64 `json:"user_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	PaymentMethod string `json:"payment_method"`
}

// Response is the outward-facing checkout result. Callers always
// receive one of these (or a classified *Error), never a raw
// exception from a collaborator.
type Response struct {
	Success            bool   `json:"success"`
	ErrorMessage       string `json:"error_message,omitempty"`
	BookingID          uint64 `json:"booking_id,omitempty"`
	HotelID            uint64 `json:"hotel_id,omitempty"`
	RoomID             uint64 `json:"room_id,omitempty"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
	CheckIn            string `json:"check_in,omitempty"`
	CheckOut           string `json:"check_out,omitempty"`
	HotelName          string `json:"hotel_name,omitempty"`
	RoomType           string `json:"room_type,omitempty"`
	TotalPriceCents    int64  `json:"total_price_cents,omitempty"`
	PaymentStatus      string `json:"payment_status,omitempty"`
	InvoiceURL         string `json:"invoice_url,omitempty"`
}

// Workflow coordinates the five collaborators of a single-item
// checkout. It is safe for concurrent use; all per-invocation state
// lives on the stack of ProcessSingleItem.
type Workflow struct {
	users    UserDirectory
	carts    CartStore
	rooms    RoomInventory
	hotels   HotelDirectory
	ledger   BookingLedger
	gateway  payment.Gateway
	invoices InvoiceGenerator
	notifier Notifier
	uow      repository.UnitOfWork
}

// NewWorkflow constructs a Workflow. All dependencies must be non-nil.
func NewWorkflow(
	users UserDirectory,
	carts CartStore,
	rooms RoomInventory,
	hotels HotelDirectory,
	ledger BookingLedger,
	gateway payment.Gateway,
	invoices InvoiceGenerator,
	notifier Notifier,
	uow repository.UnitOfWork,
) *Workflow {
	if users == nil || carts == nil || rooms == nil || hotels == nil || ledger == nil ||
		gateway == nil || invoices == nil || notifier == nil || uow == nil {
		panic("nil dependency passed to NewWorkflow")
	}
	return &Workflow{
		users:    users,
		carts:    carts,
		rooms:    rooms,
		hotels:   hotels,
		ledger:   ledger,
		gateway:  gateway,
		invoices: invoices,
		notifier: notifier,
		uow:      uow,
	}
}

// ProcessSingleItem runs the
// 	resolve -> validate -> charge -> persist -> notify
// sequence for one cart item, in that fixed order. Failures before
// the charge return a classified *Error and leave no side effects.
// A failed charge returns *Error with KindPaymentFailed; nothing was
// persisted so there is nothing to compensate. Failures after the
// charge roll back the transaction, attempt a refund, and produce a
// generic failure Response with payment status PENDING (refund in
// flight) instead of leaking the internal error.
//
// Re-invoking with the same cartItemID after success fails at the
// cart-item lookup because the item is gone: that is the intended
// idempotency guard.
func (w *Workflow) ProcessSingleItem(ctx context.Context, cartID, cartItemID uint64, req Request) (*Response, error) {
	// Step 1: resolve user. Unknown caller identity, nothing happened yet.
	user, err := w.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errUnauthorized("user not authenticated")
		}
		return nil, err
	}

	log.Printf("checkout: processing | user=%d cart=%d item=%d", user.ID, cartID, cartItemID)

	// Step 2: resolve the cart item.
	cart, err := w.carts.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errNotFound("cart %d not found", cartID)
		}
		return nil, err
	}
	var item *model.CartItem
	for i := range cart.Items {
		if cart.Items[i].ID == cartItemID {
			item = &cart.Items[i]
			break
		}
	}
	if item == nil {
		return nil, errNotFound("cart item %d not found", cartItemID)
	}

	// Step 3: resolve the room and re-check availability for the exact
	// window. The cart item may be stale relative to concurrent bookings.
	room, err := w.rooms.GetByID(ctx, item.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, errNotFound("room %d not found", item.RoomID)
		}
		return nil, err
	}
	available, err := w.rooms.IsAvailable(ctx, item.RoomID, item.CheckInUTC, item.CheckOutUTC)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, errConflict("room %d is no longer available", item.RoomID)
	}
	hotel, err := w.hotels.GetByID(ctx, room.HotelID)
	if err != nil {
		return nil, err
	}

	// Step 4: build the pending booking in memory. Total price is taken
	// verbatim from the cart item; dates are normalized to UTC.
	now := time.Now().UTC()
	booking := &model.Booking{
		UserID:             user.ID,
		HotelID:            room.HotelID,
		RoomID:             room.ID,
		CheckInUTC:         item.CheckInUTC.UTC(),
		CheckOutUTC:        item.CheckOutUTC.UTC(),
		TotalPriceCents:    item.TotalPriceCents,
		ConfirmationNumber: newConfirmationNumber(now),
		Status:             model.BookingStatusPending,
		CreatedAt:          now,
	}

	// Step 5: charge. A decline aborts here; nothing has been persisted
	// so no compensating action is needed.
	state := &chargeState{}
	result, err := w.gateway.Charge(ctx, booking.TotalPriceCents, req.PaymentMethod)
	if err != nil {
		log.Printf("checkout: charge error | user=%d cart=%d item=%d: %v", user.ID, cartID, cartItemID, err)
		return nil, errPaymentFailed("payment processing failed")
	}
	if result.Status != model.PaymentStatusConfirmed {
		return nil, errPaymentFailed("payment processing failed")
	}
	if err := state.markCharged(result.TransactionID); err != nil {
		return nil, err
	}
	booking.Status = model.BookingStatusConfirmed
	pay := &model.Payment{
		AmountCents:   booking.TotalPriceCents,
		Method:        req.PaymentMethod,
		TransactionID: result.TransactionID,
		Status:        result.Status,
		PaidAt:        time.Now().UTC(),
	}

	// Steps 6+7: invoice generation and atomic persistence. Any failure
	// inside triggers rollback plus the compensating refund.
	invoicePath, err := w.persist(ctx, cartID, cartItemID, user.ID, booking, pay)
	if err != nil {
		log.Printf("checkout: persist failed, refunding | user=%d cart=%d item=%d txn=%s: %v",
			user.ID, cartID, cartItemID, result.TransactionID, err)
		w.refund(ctx, state)
		return &Response{
			Success:       false,
			ErrorMessage:  "checkout process failed",
			PaymentStatus: model.PaymentStatusPending,
		}, nil
	}
	if err := state.markPersisted(); err != nil {
		log.Printf("checkout: charge state out of sync | item=%d: %v", cartItemID, err)
	}

	// Step 8: notify. Best-effort; the reservation already exists, so a
	// delivery failure is logged and swallowed.
	address := req.Email
	if address == "" {
		address = user.Email
	}
	if err := w.notifier.SendConfirmation(ctx, address, booking, hotel.Name, invoicePath); err != nil {
		log.Printf("checkout: confirmation dispatch failed | booking=%d addr=%s: %v", booking.ID, address, err)
	}

	log.Printf("checkout: completed | user=%d booking=%d confirmation=%s", user.ID, booking.ID, booking.ConfirmationNumber)

	// Step 9: respond.
	return &Response{
		Success:            true,
		BookingID:          booking.ID,
		HotelID:            hotel.ID,
		RoomID:             room.ID,
		ConfirmationNumber: booking.ConfirmationNumber,
		CheckIn:            booking.CheckInUTC.Format(time.RFC3339),
		CheckOut:           booking.CheckOutUTC.Format(time.RFC3339),
		HotelName:          hotel.Name,
		RoomType:           room.RoomType,
		TotalPriceCents:    booking.TotalPriceCents,
		PaymentStatus:      pay.Status,
		InvoiceURL:         invoicePath,
	}, nil
}

// persist runs the transactional tail of the workflow: insert the
// booking, its payment, the invoice record, and remove the consumed
// cart item, all atomically. The invoice document is rendered inside
// the guarded region so a rendering failure unwinds like any other
// mid-transaction failure.
func (w *Workflow) persist(ctx context.Context, cartID, cartItemID, userID uint64, booking *model.Booking, pay *model.Payment) (string, error) {
	tx, err := w.uow.Begin(ctx)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := w.ledger.Add(ctx, tx, booking); err != nil {
		return "", err
	}
	pay.BookingID = booking.ID
	if err := w.ledger.AddPayment(ctx, tx, pay); err != nil {
		return "", err
	}
	invoicePath, err := w.invoices.GenerateAndStore(ctx, userID, booking)
	if err != nil {
		return "", err
	}
	inv := &model.Invoice{
		BookingID:   booking.ID,
		FilePath:    invoicePath,
		GeneratedAt: time.Now().UTC(),
	}
	if err := w.ledger.AddInvoice(ctx, tx, inv); err != nil {
		return "", err
	}
	if err := w.carts.RemoveItem(ctx, tx, cartID, cartItemID); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	committed = true
	return invoicePath, nil
}

// refund issues the compensating refund for a charged-but-unpersisted
// payment. It runs on a context detached from the caller's
// cancellation: once money moved, request cancellation must not
// short-circuit the compensation. An undeliverable refund is logged
// with the transaction reference and otherwise swallowed; the
// response already reports payment status PENDING.
func (w *Workflow) refund(ctx context.Context, state *chargeState) {
	txnID, ok := state.refundable()
	if !ok {
		return
	}
	if err := w.gateway.Refund(context.WithoutCancel(ctx), txnID); err != nil {
		log.Printf("checkout: refund failed | txn=%s: %v", txnID, err)
		return
	}
	if err := state.markRefunded(); err != nil {
		log.Printf("checkout: charge state out of sync after refund | txn=%s: %v", txnID, err)
	}
}
