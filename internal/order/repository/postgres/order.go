package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zahrafashion/storefront/internal/order/domain"
	"github.com/zahrafashion/storefront/internal/order/repository"
	"github.com/zahrafashion/storefront/pkg/database"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order and its items atomically within a transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var addressJSON []byte
	if o.ShippingAddress != nil {
		addressJSON, err = json.Marshal(o.ShippingAddress)
		if err != nil {
			return fmt.Errorf("marshal shipping address: %w", err)
		}
	}

	orderQuery := `
		INSERT INTO orders (id, user_id, status, subtotal, discount_amount, shipping_cost, total_amount, currency,
			courier, shipping_service, shipping_etd, billable_weight_grams, shipping_address,
			payment_method_id, payment_method_name, payment_proof_url, notes, cancel_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err = tx.Exec(ctx, orderQuery,
		o.ID,
		o.UserID,
		o.Status,
		o.Subtotal,
		o.DiscountAmount,
		o.ShippingCost,
		o.TotalAmount,
		o.Currency,
		o.Courier,
		o.ShippingService,
		o.ShippingETD,
		o.BillableWeightGrams,
		addressJSON,
		o.PaymentMethodID,
		o.PaymentMethodName,
		o.PaymentProofURL,
		o.Notes,
		o.CancelReason,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, size, color, price, quantity, weight_grams)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.Size,
			item.Color,
			item.Price,
			item.Quantity,
			item.WeightGrams,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID with items aggregated in one query.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT
			o.id, o.user_id, o.status, o.subtotal, o.discount_amount, o.shipping_cost,
			o.total_amount, o.currency, o.courier, o.shipping_service, o.shipping_etd,
			o.billable_weight_grams, o.shipping_address, o.payment_method_id,
			o.payment_method_name, o.payment_proof_url, o.notes, o.cancel_reason,
			o.created_at, o.updated_at,
			COALESCE(
				JSONB_AGG(
					JSONB_BUILD_OBJECT(
						'id', oi.id,
						'order_id', oi.order_id,
						'product_id', oi.product_id,
						'name', oi.name,
						'size', oi.size,
						'color', oi.color,
						'price', oi.price,
						'quantity', oi.quantity,
						'weight_grams', oi.weight_grams
					) ORDER BY oi.id
				) FILTER (WHERE oi.id IS NOT NULL),
				'[]'::jsonb
			) AS items
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE o.id = $1
		GROUP BY o.id`

	var (
		o           domain.Order
		addressJSON []byte
		itemsJSON   []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.Subtotal,
		&o.DiscountAmount,
		&o.ShippingCost,
		&o.TotalAmount,
		&o.Currency,
		&o.Courier,
		&o.ShippingService,
		&o.ShippingETD,
		&o.BillableWeightGrams,
		&addressJSON,
		&o.PaymentMethodID,
		&o.PaymentMethodName,
		&o.PaymentProofURL,
		&o.Notes,
		&o.CancelReason,
		&o.CreatedAt,
		&o.UpdatedAt,
		&itemsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if len(addressJSON) > 0 && string(addressJSON) != "null" {
		var addr domain.Address
		if err := json.Unmarshal(addressJSON, &addr); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address: %w", err)
		}
		o.ShippingAddress = &addr
	}

	if len(itemsJSON) > 0 && string(itemsJSON) != "null" && string(itemsJSON) != "[]" {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	} else {
		o.Items = []domain.OrderItem{}
	}

	return &o, nil
}

// List returns orders matching the given filter with the total count.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIndex))
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, status, subtotal, discount_amount, shipping_cost, total_amount, currency,
			courier, shipping_service, shipping_etd, billable_weight_grams, shipping_address,
			payment_method_id, payment_method_name, payment_proof_url, notes, cancel_reason,
			created_at, updated_at,
			count(*) OVER() AS total_count
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var totalCount int
	orders := make([]domain.Order, 0)

	for rows.Next() {
		var (
			o           domain.Order
			addressJSON []byte
		)

		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Status,
			&o.Subtotal,
			&o.DiscountAmount,
			&o.ShippingCost,
			&o.TotalAmount,
			&o.Currency,
			&o.Courier,
			&o.ShippingService,
			&o.ShippingETD,
			&o.BillableWeightGrams,
			&addressJSON,
			&o.PaymentMethodID,
			&o.PaymentMethodName,
			&o.PaymentProofURL,
			&o.Notes,
			&o.CancelReason,
			&o.CreatedAt,
			&o.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}

		if len(addressJSON) > 0 && string(addressJSON) != "null" {
			var addr domain.Address
			if err := json.Unmarshal(addressJSON, &addr); err != nil {
				return nil, 0, fmt.Errorf("unmarshal shipping address: %w", err)
			}
			o.ShippingAddress = &addr
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	// Batch-load items for the page in a single query.
	if len(orders) > 0 {
		orderIDs := make([]string, len(orders))
		for i := range orders {
			orderIDs[i] = orders[i].ID
		}

		itemsQuery := `
			SELECT id, order_id, product_id, name, size, color, price, quantity, weight_grams
			FROM order_items
			WHERE order_id = ANY($1)
			ORDER BY id`

		itemRows, err := r.pool.Query(ctx, itemsQuery, orderIDs)
		if err != nil {
			return nil, 0, fmt.Errorf("batch load order items: %w", err)
		}
		defer itemRows.Close()

		itemsByOrderID := make(map[string][]domain.OrderItem, len(orders))
		for itemRows.Next() {
			var item domain.OrderItem
			if err := itemRows.Scan(
				&item.ID,
				&item.OrderID,
				&item.ProductID,
				&item.Name,
				&item.Size,
				&item.Color,
				&item.Price,
				&item.Quantity,
				&item.WeightGrams,
			); err != nil {
				return nil, 0, fmt.Errorf("scan order item: %w", err)
			}
			itemsByOrderID[item.OrderID] = append(itemsByOrderID[item.OrderID], item)
		}
		if err := itemRows.Err(); err != nil {
			return nil, 0, fmt.Errorf("iterate batch order item rows: %w", err)
		}

		for i := range orders {
			if items, ok := itemsByOrderID[orders[i].ID]; ok {
				orders[i].Items = items
			} else {
				orders[i].Items = []domain.OrderItem{}
			}
		}
	}

	return orders, totalCount, nil
}

// UpdateStatus changes the status of an order and optionally records a
// cancel reason or payment proof reference.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status, cancelReason, paymentProofURL string) error {
	query := `
		UPDATE orders
		SET status = $1,
			cancel_reason = CASE WHEN $2 <> '' THEN $2 ELSE cancel_reason END,
			payment_proof_url = CASE WHEN $3 <> '' THEN $3 ELSE payment_proof_url END,
			updated_at = $4
		WHERE id = $5`

	ct, err := r.pool.Exec(ctx, query, status, cancelReason, paymentProofURL, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}
