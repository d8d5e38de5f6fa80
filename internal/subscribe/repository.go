package subscribe

import (
	"context"

	"github.com/Hounds1/Mosk-Server/internal/models"
)

// Repository is the persistence seam of the lifecycle service. Implementations
// must make SaveNew and Renew atomic: a paid history row is never visible
// without its subscription mutation, and vice versa.
type Repository interface {
	// StoreExists reports whether the tenant row exists.
	StoreExists(ctx context.Context, storeID int64) (bool, error)

	// FindByStoreID returns the store's subscription or ErrSubscriptionNotFound.
	FindByStoreID(ctx context.Context, storeID int64) (*models.Subscription, error)

	// SaveNew inserts a first subscription together with its paid history
	// entry in one transaction and fills in sub.ID.
	SaveNew(ctx context.Context, sub *models.Subscription, history models.SubscriptionHistory) error

	// Renew loads the store's subscription with a row lock, hands it to
	// apply, then persists the mutated row and the history entry apply
	// returned, all in one transaction. Concurrent renewals for the same
	// store serialize on that lock. Returns ErrSubscriptionNotFound if the
	// store has no subscription row.
	Renew(ctx context.Context, storeID int64, apply func(sub *models.Subscription) models.SubscriptionHistory) (*models.Subscription, error)

	// AppendHistory inserts a single ledger entry outside any subscription
	// mutation (the failed-payment path).
	AppendHistory(ctx context.Context, history models.SubscriptionHistory) error

	// ListHistory returns every ledger entry of a store, newest first.
	ListHistory(ctx context.Context, storeID int64) ([]models.SubscriptionHistory, error)
}
