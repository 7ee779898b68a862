package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeStateHappyTransitions(t *testing.T) {
	s := &chargeState{}

	_, ok := s.refundable()
	assert.False(t, ok, "nothing refundable before a charge")

	require.NoError(t, s.markCharged("tx-1"))
	txn, ok := s.refundable()
	assert.True(t, ok)
	assert.Equal(t, "tx-1", txn)

	require.NoError(t, s.markPersisted())
	_, ok = s.refundable()
	assert.False(t, ok, "persisted charges are no longer refundable")
}

func TestChargeStateRefundPath(t *testing.T) {
	s := &chargeState{}
	require.NoError(t, s.markCharged("tx-2"))
	require.NoError(t, s.markRefunded())

	_, ok := s.refundable()
	assert.False(t, ok)
	assert.ErrorIs(t, s.markPersisted(), errIllegalTransition)
}

func TestChargeStateIllegalTransitions(t *testing.T) {
	s := &chargeState{}

	assert.ErrorIs(t, s.markPersisted(), errIllegalTransition)
	assert.ErrorIs(t, s.markRefunded(), errIllegalTransition)
	assert.ErrorIs(t, s.markCharged(""), errIllegalTransition, "empty transaction reference")

	require.NoError(t, s.markCharged("tx-3"))
	assert.ErrorIs(t, s.markCharged("tx-4"), errIllegalTransition, "double charge")

	require.NoError(t, s.markRefunded())
	assert.ErrorIs(t, s.markRefunded(), errIllegalTransition, "double refund")
}
