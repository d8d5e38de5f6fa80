package subscribe

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Hounds1/Mosk-Server/internal/models"
	"github.com/Hounds1/Mosk-Server/internal/payment"
)

// PaymentRequest is one inbound subscription payment. OrderID is accepted
// for wire compatibility but never forwarded: the gateway-side order id is
// always regenerated so it stays unique per attempt.
type PaymentRequest struct {
	PaymentKey string `json:"paymentKey" binding:"required"`
	OrderID    string `json:"orderId" binding:"required"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Period     int64  `json:"period" binding:"required,gt=0"` // days
}

// SubscriptionResponse summarizes the subscription after a settled payment.
type SubscriptionResponse struct {
	StoreID   int64  `json:"storeId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

// HistoryResponse is one ledger entry of the store's payment history.
type HistoryResponse struct {
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Amount    int64   `json:"amount"`
	Paid      bool    `json:"paid"`
}

// Service owns creation, renewal and historical recording of a store's
// subscription period, driven by gateway payment outcomes.
type Service struct {
	repo    Repository
	gateway payment.Client
	now     func() time.Time

	mu         sync.Mutex
	storeLocks map[int64]*sync.Mutex
}

func NewService(repo Repository, gateway payment.Client) *Service {
	return &Service{
		repo:       repo,
		gateway:    gateway,
		now:        time.Now,
		storeLocks: make(map[int64]*sync.Mutex),
	}
}

// SubscribePayment settles one payment attempt and applies its outcome.
//
// The gateway is called exactly once, with a freshly generated order id.
// A decline appends a failed history entry and surfaces
// ErrPaymentGatewayUnstable; the subscription row is left untouched. An
// approval creates the store's subscription (start=today, end=today+period)
// or renews the existing one: a lapsed period first gets its start date reset
// to today, the history entry records the pre-renewal dates, and the end date
// is extended by period days from its current value, not from today.
func (s *Service) SubscribePayment(ctx context.Context, storeID int64, req PaymentRequest) (SubscriptionResponse, error) {
	unlock := s.lockStore(storeID)
	defer unlock()

	exists, err := s.repo.StoreExists(ctx, storeID)
	if err != nil {
		return SubscriptionResponse{}, err
	}
	if !exists {
		return SubscriptionResponse{}, ErrStoreNotFound
	}

	today := models.DateOf(s.now())

	approval := payment.ApprovalRequest{
		PaymentKey: req.PaymentKey,
		OrderID:    payment.NewOrderID(),
		Amount:     req.Amount,
	}
	if err := s.gateway.Approve(ctx, approval); err != nil {
		// The decline reason stays server-side; callers only ever see the
		// generic instability error, and only after the ledger entry landed.
		log.Printf("subscription payment declined for store %d: %v", storeID, err)

		failed := models.SubscriptionHistory{
			StoreID:   storeID,
			StartDate: today,
			EndDate:   nil,
			Amount:    req.Amount,
			Paid:      false,
			CreatedAt: s.now(),
		}
		if histErr := s.repo.AppendHistory(ctx, failed); histErr != nil {
			return SubscriptionResponse{}, histErr
		}
		return SubscriptionResponse{}, ErrPaymentGatewayUnstable
	}

	sub, err := s.repo.FindByStoreID(ctx, storeID)
	switch {
	case errors.Is(err, ErrSubscriptionNotFound):
		sub, err = s.createSubscription(ctx, storeID, req, today)
	case err == nil:
		sub, err = s.renewSubscription(ctx, storeID, req, today)
	}
	if err != nil {
		return SubscriptionResponse{}, err
	}

	return SubscriptionResponse{
		StoreID:   sub.StoreID,
		StartDate: sub.StartDate.Format(time.DateOnly),
		EndDate:   sub.EndDate.Format(time.DateOnly),
		Amount:    req.Amount,
		Status:    sub.Status(today),
	}, nil
}

func (s *Service) createSubscription(ctx context.Context, storeID int64, req PaymentRequest, today time.Time) (*models.Subscription, error) {
	sub := &models.Subscription{
		StoreID:   storeID,
		StartDate: today,
		EndDate:   today.AddDate(0, 0, int(req.Period)),
		Period:    req.Period,
	}
	end := sub.EndDate
	history := models.SubscriptionHistory{
		StoreID:   storeID,
		StartDate: sub.StartDate,
		EndDate:   &end,
		Amount:    req.Amount,
		Paid:      true,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveNew(ctx, sub, history); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) renewSubscription(ctx context.Context, storeID int64, req PaymentRequest, today time.Time) (*models.Subscription, error) {
	return s.repo.Renew(ctx, storeID, func(sub *models.Subscription) models.SubscriptionHistory {
		if sub.EndDate.Before(today) {
			sub.StartDate = today
		}

		// The ledger records the pre-renewal period, after any lapse reset.
		end := sub.EndDate
		history := models.SubscriptionHistory{
			StoreID:   storeID,
			StartDate: sub.StartDate,
			EndDate:   &end,
			Amount:    req.Amount,
			Paid:      true,
			CreatedAt: s.now(),
		}

		// Extend from the current end date, lapsed or not.
		sub.EndDate = sub.EndDate.AddDate(0, 0, int(req.Period))
		sub.Period = req.Period
		return history
	})
}

// History returns the store's payment ledger, newest first.
func (s *Service) History(ctx context.Context, storeID int64) ([]HistoryResponse, error) {
	entries, err := s.repo.ListHistory(ctx, storeID)
	if err != nil {
		return nil, err
	}

	responses := make([]HistoryResponse, 0, len(entries))
	for _, h := range entries {
		resp := HistoryResponse{
			StartDate: h.StartDate.Format(time.DateOnly),
			Amount:    h.Amount,
			Paid:      h.Paid,
		}
		if h.EndDate != nil {
			end := h.EndDate.Format(time.DateOnly)
			resp.EndDate = &end
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// lockStore serializes payment attempts per store. The DB row lock already
// protects renewals; this also covers the create path, where two concurrent
// first payments would otherwise race on the unique store_id key.
//
// Mutexes are kept for every store ever seen. A mutex is a few words and the
// map is bounded by the tenant count, so there is no eviction.
func (s *Service) lockStore(storeID int64) func() {
	s.mu.Lock()
	l, ok := s.storeLocks[storeID]
	if !ok {
		l = &sync.Mutex{}
		s.storeLocks[storeID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
