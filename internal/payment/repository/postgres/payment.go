package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zahrafashion/storefront/internal/payment/domain"
	"github.com/zahrafashion/storefront/pkg/database"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

const methodColumns = `id, type, name, bank_name, account_number, account_holder, active, created_at, updated_at`

// PaymentMethodRepository implements repository.PaymentMethodRepository using PostgreSQL.
type PaymentMethodRepository struct {
	pool database.DBTX
}

// NewPaymentMethodRepository creates a PostgreSQL-backed payment method repository.
func NewPaymentMethodRepository(pool database.DBTX) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

// Create inserts a new payment method.
func (r *PaymentMethodRepository) Create(ctx context.Context, m *domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (` + methodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Type,
		m.Name,
		m.BankName,
		m.AccountNumber,
		m.AccountHolder,
		m.Active,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment method: %w", err)
	}

	return nil
}

// GetByID retrieves a payment method by its ID.
func (r *PaymentMethodRepository) GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	query := `SELECT ` + methodColumns + ` FROM payment_methods WHERE id = $1`

	var m domain.PaymentMethod
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Type,
		&m.Name,
		&m.BankName,
		&m.AccountNumber,
		&m.AccountHolder,
		&m.Active,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("payment method", id)
		}
		return nil, fmt.Errorf("scan payment method: %w", err)
	}

	return &m, nil
}

// List returns payment methods, optionally restricted to active ones.
func (r *PaymentMethodRepository) List(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	query := `SELECT ` + methodColumns + ` FROM payment_methods`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY type, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	methods := make([]domain.PaymentMethod, 0)
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(
			&m.ID,
			&m.Type,
			&m.Name,
			&m.BankName,
			&m.AccountNumber,
			&m.AccountHolder,
			&m.Active,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment method row: %w", err)
		}
		methods = append(methods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment method rows: %w", err)
	}

	return methods, nil
}

// SetActive toggles availability of a payment method.
func (r *PaymentMethodRepository) SetActive(ctx context.Context, id string, active bool) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE payment_methods SET active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update payment method: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("payment method", id)
	}
	return nil
}
