package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// OrderRepository handles order data access.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, student_id, item_type, item_id, amount_cents, currency,
	COALESCE(provider_order_id, ''), COALESCE(provider_payment_id, ''), status, created_at, updated_at`

// GetByID retrieves an order by its UUID.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o := &model.Order{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.StudentID, &o.ItemType, &o.ItemID, &o.AmountCents, &o.Currency,
		&o.ProviderOrderID, &o.ProviderPaymentID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetPendingByItem finds a student's open order for an item, so checkout
// retries reuse the same gateway order instead of stacking new ones.
func (r *OrderRepository) GetPendingByItem(ctx context.Context, studentID int, itemType model.ItemType, itemID uuid.UUID) (*model.Order, error) {
	o := &model.Order{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE student_id = $1 AND item_type = $2 AND item_id = $3 AND status = $4
		 ORDER BY created_at DESC LIMIT 1`,
		studentID, itemType, itemID, model.OrderStatusPending,
	).Scan(&o.ID, &o.StudentID, &o.ItemType, &o.ItemID, &o.AmountCents, &o.Currency,
		&o.ProviderOrderID, &o.ProviderPaymentID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListByStudentPaginated retrieves a student's orders, newest first.
func (r *OrderRepository) ListByStudentPaginated(ctx context.Context, studentID, limit, offset int) ([]model.Order, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE student_id = $1`, studentID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE student_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, studentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.StudentID, &o.ItemType, &o.ItemID, &o.AmountCents, &o.Currency,
			&o.ProviderOrderID, &o.ProviderPaymentID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// ListPaginated retrieves all orders across students, newest first.
// Admin reporting only.
func (r *OrderRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Order, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.StudentID, &o.ItemType, &o.ItemID, &o.AmountCents, &o.Currency,
			&o.ProviderOrderID, &o.ProviderPaymentID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, o *model.Order) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO orders (student_id, item_type, item_id, amount_cents, currency, provider_order_id, status)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		 RETURNING id, created_at, updated_at`,
		o.StudentID, o.ItemType, o.ItemID, o.AmountCents, o.Currency, o.ProviderOrderID, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

// MarkCompleted records the verified payment and closes the order.
func (r *OrderRepository) MarkCompleted(ctx context.Context, id uuid.UUID, providerPaymentID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE orders
		 SET status = $1, provider_payment_id = $2, updated_at = NOW()
		 WHERE id = $3`,
		model.OrderStatusCompleted, providerPaymentID, id)
	return err
}

// UpdateStatus moves an order to a terminal state without payment data.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	return err
}

// CompleteAndEnroll closes the order and writes the access-granting
// enrollment in one transaction, so a crash can never leave a paid
// student without access or an unpaid enrollment behind.
func (r *OrderRepository) CompleteAndEnroll(ctx context.Context, o *model.Order, providerPaymentID string) (*model.Enrollment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE orders
		 SET status = $1, provider_payment_id = $2, updated_at = NOW()
		 WHERE id = $3`,
		model.OrderStatusCompleted, providerPaymentID, o.ID); err != nil {
		return nil, err
	}

	e := &model.Enrollment{
		StudentID: o.StudentID,
		ItemType:  o.ItemType,
		ItemID:    o.ItemID,
		OrderID:   &o.ID,
	}
	if err := tx.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, item_type, item_id, order_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.StudentID, e.ItemType, e.ItemID, e.OrderID,
	).Scan(&e.ID, &e.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}
