package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAccountNotFound = errors.New("account not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

func (r *PostgresRepository) GetAccount(ctx context.Context, userID string) (*Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, name, role, COALESCE(stripe_customer_id, ''), COALESCE(subscription_id, ''), created_at
		FROM users
		WHERE id = $1
	`, userID)

	var a Account
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.StripeCustomerID, &a.SubscriptionID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) SetRole(ctx context.Context, userID, role string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, userID, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) SetSubscription(ctx context.Context, userID, customerID, subscriptionID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET stripe_customer_id = $2, subscription_id = $3
		WHERE id = $1
	`, userID, customerID, subscriptionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) ListAccounts(ctx context.Context) ([]*Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, name, role, COALESCE(stripe_customer_id, ''), COALESCE(subscription_id, ''), created_at
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.StripeCustomerID, &a.SubscriptionID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// --------------------------------------------------
// Trial usage counters
// --------------------------------------------------

func (r *PostgresRepository) GetUsage(ctx context.Context, userID string) ([]*Usage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT feature, used_count, period_start
		FROM trial_usage
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Usage
	for rows.Next() {
		var u Usage
		if err := rows.Scan(&u.Feature, &u.UsedCount, &u.PeriodStart); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetFeatureUsage(ctx context.Context, userID, feature string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT used_count FROM trial_usage
		WHERE user_id = $1 AND feature = $2
		  AND ($3::timestamp IS NULL OR period_start >= $3)
	`, userID, feature, nullableTime(since)).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) IncrementUsage(ctx context.Context, userID, feature string, resetBefore time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO trial_usage (user_id, feature, used_count, period_start)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (user_id, feature)
		DO UPDATE SET
			used_count = CASE
				WHEN $3::timestamp IS NOT NULL AND trial_usage.period_start < $3 THEN 1
				ELSE trial_usage.used_count + 1
			END,
			period_start = CASE
				WHEN $3::timestamp IS NOT NULL AND trial_usage.period_start < $3 THEN NOW()
				ELSE trial_usage.period_start
			END
	`, userID, feature, nullableTime(resetBefore))
	return err
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *PostgresRepository) ResetUsage(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE trial_usage
		SET used_count = 0, period_start = NOW()
		WHERE user_id = $1
	`, userID)
	return err
}
