package checkout

import "errors"

// chargePhase tracks how far a checkout's money movement has
// progressed. Modeling this explicitly keeps the compensating-action
// rules out of error handlers: a refund is only reachable from
// Charged, never from NotCharged or Persisted.
type chargePhase int

const (
	phaseNotCharged chargePhase = iota
	phaseCharged
	phasePersisted
	phaseRefunded
)

var errIllegalTransition = errors.New("illegal charge state transition")

// chargeState is the per-invocation state machine
// NotCharged -> Charged -> {Persisted | Refunded}.
// It remembers the gateway transaction reference so the refund path
// always has something to act on.
type chargeState struct {
	phase         chargePhase
	transactionID string
}

// markCharged records a successful gateway charge. Valid only once,
// from NotCharged, and requires a transaction reference.
func (s *chargeState) markCharged(transactionID string) error {
	if s.phase != phaseNotCharged || transactionID == "" {
		return errIllegalTransition
	}
	s.phase = phaseCharged
	s.transactionID = transactionID
	return nil
}

// markPersisted records that the booking was durably committed; the
// charge can no longer be refunded by this workflow.
func (s *chargeState) markPersisted() error {
	if s.phase != phaseCharged {
		return errIllegalTransition
	}
	s.phase = phasePersisted
	return nil
}

// markRefunded records the compensating refund after a post-charge
// failure.
func (s *chargeState) markRefunded() error {
	if s.phase != phaseCharged {
		return errIllegalTransition
	}
	s.phase = phaseRefunded
	return nil
}

// refundable returns the transaction reference eligible for a refund.
// It reports false unless the state is exactly Charged.
func (s *chargeState) refundable() (string, bool) {
	if s.phase != phaseCharged {
		return "", false
	}
	return s.transactionID, true
}
