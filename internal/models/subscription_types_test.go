package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionStatus(t *testing.T) {
	sub := &Subscription{
		StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, SubscriptionActive, sub.Status(time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, SubscriptionActive, sub.Status(time.Date(2024, time.February, 1, 23, 59, 0, 0, time.UTC)), "still active on the end date itself")
	assert.Equal(t, SubscriptionExpired, sub.Status(time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC)))
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, time.January, 15, 23, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), DateOf(ts))
}
