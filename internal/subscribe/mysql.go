package subscribe

import (
	"context"
	"database/sql"

	"github.com/Hounds1/Mosk-Server/internal/models"
)

// MySQLRepository implements Repository on the shared connection pool.
type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) StoreExists(ctx context.Context, storeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM stores WHERE id = ? AND withdrawn_at IS NULL)", storeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *MySQLRepository) FindByStoreID(ctx context.Context, storeID int64) (*models.Subscription, error) {
	query := "SELECT id, store_id, start_date, end_date, period FROM subscriptions WHERE store_id = ?"
	return scanSubscription(r.db.QueryRowContext(ctx, query, storeID))
}

func (r *MySQLRepository) SaveNew(ctx context.Context, sub *models.Subscription, history models.SubscriptionHistory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO subscriptions (store_id, start_date, end_date, period) VALUES (?, ?, ?, ?)",
		sub.StoreID, sub.StartDate, sub.EndDate, sub.Period,
	)
	if err != nil {
		return err
	}
	sub.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}

	if err := insertHistory(ctx, tx, history); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *MySQLRepository) Renew(ctx context.Context, storeID int64, apply func(sub *models.Subscription) models.SubscriptionHistory) (*models.Subscription, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Row lock: two renewals for one store queue up here instead of both
	// extending from the same end date.
	query := "SELECT id, store_id, start_date, end_date, period FROM subscriptions WHERE store_id = ? FOR UPDATE"
	sub, err := scanSubscription(tx.QueryRowContext(ctx, query, storeID))
	if err != nil {
		return nil, err
	}

	history := apply(sub)

	_, err = tx.ExecContext(ctx,
		"UPDATE subscriptions SET start_date = ?, end_date = ?, period = ? WHERE id = ?",
		sub.StartDate, sub.EndDate, sub.Period, sub.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := insertHistory(ctx, tx, history); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *MySQLRepository) AppendHistory(ctx context.Context, history models.SubscriptionHistory) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO subscription_histories (store_id, start_date, end_date, amount, paid, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		history.StoreID, history.StartDate, history.EndDate, history.Amount, history.Paid, history.CreatedAt,
	)
	return err
}

func (r *MySQLRepository) ListHistory(ctx context.Context, storeID int64) ([]models.SubscriptionHistory, error) {
	query := `
		SELECT id, store_id, start_date, end_date, amount, paid, created_at
		FROM subscription_histories
		WHERE store_id = ?
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.SubscriptionHistory
	for rows.Next() {
		var h models.SubscriptionHistory
		var endDate sql.NullTime
		if err := rows.Scan(&h.ID, &h.StoreID, &h.StartDate, &endDate, &h.Amount, &h.Paid, &h.CreatedAt); err != nil {
			return nil, err
		}
		if endDate.Valid {
			end := endDate.Time
			h.EndDate = &end
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

func insertHistory(ctx context.Context, tx *sql.Tx, history models.SubscriptionHistory) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO subscription_histories (store_id, start_date, end_date, amount, paid, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		history.StoreID, history.StartDate, history.EndDate, history.Amount, history.Paid, history.CreatedAt,
	)
	return err
}

func scanSubscription(row *sql.Row) (*models.Subscription, error) {
	var sub models.Subscription
	err := row.Scan(&sub.ID, &sub.StoreID, &sub.StartDate, &sub.EndDate, &sub.Period)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}
