package checkout

import "fmt"

// Kind classifies a checkout failure so that handlers can map it to
// an HTTP status without parsing messages.
type Kind int

const (
	// KindUnauthorized: the checkout request carries an unknown user.
	KindUnauthorized Kind = iota + 1
	// KindNotFound: the cart, cart item or room does not exist.
	KindNotFound
	// KindConflict: the room is no longer available for the dates.
	KindConflict
	// KindPaymentFailed: the gateway declined or errored before
	// anything was persisted.
	KindPaymentFailed
	// KindCheckoutFailed: a post-payment failure; a refund was
	// attempted and the caller only sees a generic message.
	KindCheckoutFailed
)

// Error is a classified checkout failure. NotFound and Conflict
// messages include the offending identifier for diagnosability.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func errUnauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func errNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func errConflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func errPaymentFailed(msg string) *Error {
	return &Error{Kind: KindPaymentFailed, Msg: msg}
}
