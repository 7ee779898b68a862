package repository

import (
	"context"
	"database/sql"
	"errors"

	"hotel-booking-backend/internal/model"
)

// CartRepo encapsulates database operations for carts and their line
// items. Each user owns at most one cart, created lazily on first use.
type CartRepo struct {
	db *sql.DB
}

// NewCartRepo constructs a CartRepo given a DB handle.
func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

// GetOrCreateForUser returns the user's cart, creating an empty one if
// none exists yet. The returned cart has its items loaded.
func (r *CartRepo) GetOrCreateForUser(ctx context.Context, userID uint64) (*model.Cart, error) {
	cart, err := r.getForUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO carts (user_id) VALUES (?)`, userID)
	if err != nil {
		// A concurrent request may have created the cart between the
		// lookup and the insert; the unique user_id index surfaces that.
		if isDuplicateKey(err) {
			return r.getForUser(ctx, userID)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *CartRepo) getForUser(ctx context.Context, userID uint64) (*model.Cart, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = ?`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a cart with all of its line items. It returns
// ErrCartNotFound if no row is found.
func (r *CartRepo) GetByID(ctx context.Context, cartID uint64) (*model.Cart, error) {
	var c model.Cart
	const q = `SELECT id, user_id, created_at, updated_at FROM carts WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, q, cartID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	const qi = `SELECT id, cart_id, room_id, check_in_utc, check_out_utc, total_price_cents, added_at
	            FROM cart_items WHERE cart_id = ? ORDER BY added_at, id`
	rows, err := r.db.QueryContext(ctx, qi, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.RoomID, &it.CheckInUTC, &it.CheckOutUTC, &it.TotalPriceCents, &it.AddedAt); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

// AddItem appends a line item to the cart. The total price is
// computed here, nights × nightly price, and stored verbatim; checkout
// later carries it into the booking unchanged. The item's dates must
// span at least one full night.
func (r *CartRepo) AddItem(ctx context.Context, cartID uint64, room *model.Room, it *model.CartItem) error {
	it.CheckInUTC = it.CheckInUTC.UTC()
	it.CheckOutUTC = it.CheckOutUTC.UTC()
	it.CartID = cartID
	it.RoomID = room.ID
	nights := it.Nights()
	if nights < 1 {
		return ErrInvalidDateRange
	}
	it.TotalPriceCents = int64(nights) * room.PricePerNightCents

	const q = `INSERT INTO cart_items (cart_id, room_id, check_in_utc, check_out_utc, total_price_cents)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, it.CartID, it.RoomID, it.CheckInUTC, it.CheckOutUTC, it.TotalPriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// RemoveItem deletes one line item within the supplied transaction.
// Checkout calls this alongside the booking insert so the item is
// consumed exactly when the booking commits. It returns
// ErrCartItemNotFound when the item does not exist in that cart,
// which also covers a repeated checkout of an already-consumed item.
func (r *CartRepo) RemoveItem(ctx context.Context, tx Tx, cartID, itemID uint64) error {
	st, err := sqlTx(tx)
	if err != nil {
		return err
	}
	res, err := st.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItemDirect deletes one line item outside any transaction, for
// the explicit "remove from cart" endpoint.
func (r *CartRepo) RemoveItemDirect(ctx context.Context, cartID, itemID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}
