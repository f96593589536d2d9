package orders

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `
	id,
	restaurant_id,
	order_number,
	service_type,
	customer_details,
	items,
	subtotal,
	tax,
	delivery_fee,
	total,
	status,
	payment_status,
	COALESCE(payment_intent_id, ''),
	COALESCE(receipt_url, ''),
	COALESCE(payment_slip_url, ''),
	COALESCE(notes, ''),
	created_at,
	updated_at
`

func scanOrder(row pgx.Row) (*Order, error) {
	var order Order
	var details, items []byte

	if err := row.Scan(
		&order.ID,
		&order.RestaurantID,
		&order.OrderNumber,
		&order.ServiceType,
		&details,
		&items,
		&order.Subtotal,
		&order.Tax,
		&order.DeliveryFee,
		&order.Total,
		&order.Status,
		&order.PaymentStatus,
		&order.PaymentIntentID,
		&order.ReceiptURL,
		&order.PaymentSlipURL,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	_ = json.Unmarshal(details, &order.CustomerDetails)
	_ = json.Unmarshal(items, &order.Items)

	return &order, nil
}

func (r *PostgresRepository) Create(ctx context.Context, order *Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	details, err := json.Marshal(order.CustomerDetails)
	if err != nil {
		return err
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (
			id, restaurant_id, order_number, service_type,
			customer_details, items,
			subtotal, tax, delivery_fee, total,
			status, payment_status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''))
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		order.ID,
		order.RestaurantID,
		order.OrderNumber,
		order.ServiceType,
		details,
		items,
		order.Subtotal,
		order.Tax,
		order.DeliveryFee,
		order.Total,
		order.Status,
		order.PaymentStatus,
		order.Notes,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID, status string) ([]*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT 200
	`

	rows, err := r.db.Query(ctx, query, restaurantID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return order, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_intent_id = $2, payment_status = 'processing', updated_at = NOW()
		WHERE id = $1
	`, id, intentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPaymentStatus(ctx context.Context, id, paymentStatus string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET payment_status = $2, updated_at = NOW() WHERE id = $1`,
		id, paymentStatus,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid moves the order into the kitchen queue.
func (r *PostgresRepository) MarkPaid(ctx context.Context, id, receiptURL string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_status = 'paid',
		    status = 'pending',
		    receipt_url = NULLIF($2, ''),
		    updated_at = NOW()
		WHERE id = $1
	`, id, receiptURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetSlipURL(ctx context.Context, id, slipURL string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_slip_url = $2, payment_status = 'processing', updated_at = NOW()
		WHERE id = $1
	`, id, slipURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
