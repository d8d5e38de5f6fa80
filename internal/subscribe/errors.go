package subscribe

import "errors"

var (
	// ErrStoreNotFound aborts the operation before any side effect: a
	// subscription payment for a store id with no backing row.
	ErrStoreNotFound = errors.New("store not found")

	// ErrSubscriptionNotFound is the renewal path finding no subscription
	// row for a store that was expected to have one.
	ErrSubscriptionNotFound = errors.New("subscription info not found")

	// ErrPaymentGatewayUnstable replaces the gateway's own decline error
	// towards callers. The original reason is logged, never propagated, so
	// the failed-history write always completes before the caller sees it.
	ErrPaymentGatewayUnstable = errors.New("payment gateway is unstable")
)
