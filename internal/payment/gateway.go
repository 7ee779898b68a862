// Package payment defines the payment gateway contract used by the
// checkout workflow and a simulated card provider implementation.
package payment

import "context"

// Payment method names accepted by the gateway.
const (
	MethodCard     = "CARD"
	MethodPayPal   = "PAYPAL"
	MethodTransfer = "BANK_TRANSFER"
)

// Result describes the outcome of one gateway charge. Status uses the
// model.PaymentStatus* values (CONFIRMED, PENDING, FAILED). A result
// with no TransactionID cannot be refunded.
type Result struct {
	TransactionID string
	Status        string
	ErrorMessage  string
}

// Gateway charges a payment method and can refund a prior charge by
// transaction reference. Refund is best-effort; callers log failures
// instead of propagating them.
type Gateway interface {
	Charge(ctx context.Context, amountCents int64, method string) (Result, error)
	Refund(ctx context.Context, transactionID string) error
}
