package payment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hotel-booking-backend/internal/model"
)

// Magic amounts the simulated provider reacts to, in cents. They make
// decline and pending paths reachable from tests and manual runs
// without a real processor account.
const (
	amountAlwaysDeclined int64 = 99_999_99
	amountAlwaysPending  int64 = 88_888_88
)

// CardProvider simulates a card payment processor. When an API key is
// configured it would talk to the real processor; without one it runs
// in mock mode and settles charges locally. Refunds are remembered so
// double refunds can be rejected.
type CardProvider struct {
	apiKey string

	mu       sync.Mutex
	refunded map[string]bool
}

// NewCardProvider returns a CardProvider. An empty apiKey enables
// mock mode, which is the only mode implemented here.
func NewCardProvider(apiKey string) *CardProvider {
	return &CardProvider{
		apiKey:   apiKey,
		refunded: make(map[string]bool),
	}
}

// Charge settles a charge for the given amount. Unknown methods and
// non-positive amounts fail without producing a transaction ID. The
// magic amounts above produce FAILED and PENDING results with a
// transaction reference attached, mirroring how real processors
// report declined-but-registered attempts.
func (p *CardProvider) Charge(ctx context.Context, amountCents int64, method string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	switch strings.ToUpper(method) {
	case MethodCard, MethodPayPal, MethodTransfer:
	default:
		return Result{Status: model.PaymentStatusFailed, ErrorMessage: "unsupported payment method"}, nil
	}
	if amountCents <= 0 {
		return Result{Status: model.PaymentStatusFailed, ErrorMessage: "invalid amount"}, nil
	}

	txnID := "txn_" + uuid.NewString()
	switch amountCents {
	case amountAlwaysDeclined:
		log.Printf("payment: charge declined | amount_cents=%d method=%s txn=%s", amountCents, method, txnID)
		return Result{TransactionID: txnID, Status: model.PaymentStatusFailed, ErrorMessage: "card declined"}, nil
	case amountAlwaysPending:
		return Result{TransactionID: txnID, Status: model.PaymentStatusPending}, nil
	}

	log.Printf("payment: charge confirmed | amount_cents=%d method=%s txn=%s", amountCents, method, txnID)
	return Result{TransactionID: txnID, Status: model.PaymentStatusConfirmed}, nil
}

// Refund reverses a prior charge. It fails on unknown or already
// refunded transaction references. Callers treat refund failures as
// loggable, not fatal.
func (p *CardProvider) Refund(ctx context.Context, transactionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasPrefix(transactionID, "txn_") {
		return fmt.Errorf("unknown transaction %q", transactionID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refunded[transactionID] {
		return fmt.Errorf("transaction %s already refunded", transactionID)
	}
	p.refunded[transactionID] = true
	log.Printf("payment: refund issued | txn=%s", transactionID)
	return nil
}
