package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking-backend/internal/model"
)

func TestCardProviderCharge(t *testing.T) {
	p := NewCardProvider("")
	ctx := context.Background()

	res, err := p.Charge(ctx, 15000, MethodCard)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusConfirmed, res.Status)
	assert.NotEmpty(t, res.TransactionID)

	res, err = p.Charge(ctx, amountAlwaysDeclined, MethodCard)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, res.Status)
	assert.NotEmpty(t, res.TransactionID, "declined charges still register a transaction")

	res, err = p.Charge(ctx, amountAlwaysPending, MethodPayPal)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, res.Status)
}

func TestCardProviderChargeRejectsBadInput(t *testing.T) {
	p := NewCardProvider("")
	ctx := context.Background()

	res, err := p.Charge(ctx, 15000, "BARTER")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, res.Status)
	assert.Empty(t, res.TransactionID)

	res, err = p.Charge(ctx, 0, MethodCard)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, res.Status)
	assert.Empty(t, res.TransactionID)
}

func TestCardProviderRefund(t *testing.T) {
	p := NewCardProvider("")
	ctx := context.Background()

	res, err := p.Charge(ctx, 15000, MethodCard)
	require.NoError(t, err)

	require.NoError(t, p.Refund(ctx, res.TransactionID))
	assert.Error(t, p.Refund(ctx, res.TransactionID), "double refund must fail")
	assert.Error(t, p.Refund(ctx, "bogus"))
}
