package models

import "time"

// Subscription status values. There is no stored EXPIRED state; lapse is
// computed on read by comparing the end date with the current date.
const (
	SubscriptionActive  = "ACTIVE"
	SubscriptionExpired = "EXPIRED"
)

// Subscription is the single billing period row of a store. At most one
// exists per store (UNIQUE KEY on store_id); renewals mutate it in place.
type Subscription struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"storeId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Period    int64     `json:"period"` // length of one paid period, in days
}

// Status reports ACTIVE while the end date has not passed relative to today.
func (s *Subscription) Status(today time.Time) string {
	if s.EndDate.Before(DateOf(today)) {
		return SubscriptionExpired
	}
	return SubscriptionActive
}

// SubscriptionHistory is one append-only ledger entry per payment attempt.
// EndDate is nil for failed attempts; rows are never mutated or deleted.
type SubscriptionHistory struct {
	ID        int64      `json:"id"`
	StoreID   int64      `json:"storeId"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Amount    int64      `json:"amount"`
	Paid      bool       `json:"paid"`
	CreatedAt time.Time  `json:"createdAt"`
}

// DateOf truncates a timestamp to its calendar date in UTC. All subscription
// date math runs on these day-granular values.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
