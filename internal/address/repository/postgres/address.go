package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zahrafashion/storefront/internal/address/domain"
	"github.com/zahrafashion/storefront/pkg/database"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

const addressColumns = `id, user_id, label, recipient_name, phone, street,
	province_id, province_name, city_id, city_name,
	district_id, district_name, subdistrict_id, subdistrict_name,
	postal_code, is_default, created_at, updated_at`

// AddressRepository implements repository.AddressRepository using PostgreSQL.
type AddressRepository struct {
	pool database.DBTX
}

// NewAddressRepository creates a PostgreSQL-backed address repository.
func NewAddressRepository(pool database.DBTX) *AddressRepository {
	return &AddressRepository{pool: pool}
}

// Create inserts a new address, clearing the previous default in the same
// transaction when the new one is marked default.
func (r *AddressRepository) Create(ctx context.Context, addr *domain.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if addr.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, addr.UserID); err != nil {
			return fmt.Errorf("clear default address: %w", err)
		}
	}

	query := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err = tx.Exec(ctx, query,
		addr.ID,
		addr.UserID,
		addr.Label,
		addr.RecipientName,
		addr.Phone,
		addr.Street,
		addr.ProvinceID,
		addr.ProvinceName,
		addr.CityID,
		addr.CityName,
		addr.DistrictID,
		addr.DistrictName,
		addr.SubdistrictID,
		addr.SubdistrictName,
		addr.PostalCode,
		addr.IsDefault,
		addr.CreatedAt,
		addr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an address by its ID.
func (r *AddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	var addr domain.Address
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&addr.ID,
		&addr.UserID,
		&addr.Label,
		&addr.RecipientName,
		&addr.Phone,
		&addr.Street,
		&addr.ProvinceID,
		&addr.ProvinceName,
		&addr.CityID,
		&addr.CityName,
		&addr.DistrictID,
		&addr.DistrictName,
		&addr.SubdistrictID,
		&addr.SubdistrictName,
		&addr.PostalCode,
		&addr.IsDefault,
		&addr.CreatedAt,
		&addr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", id)
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}

	return &addr, nil
}

// ListByUser returns all addresses for a user, default first, newest next.
func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		var addr domain.Address
		if err := rows.Scan(
			&addr.ID,
			&addr.UserID,
			&addr.Label,
			&addr.RecipientName,
			&addr.Phone,
			&addr.Street,
			&addr.ProvinceID,
			&addr.ProvinceName,
			&addr.CityID,
			&addr.CityName,
			&addr.DistrictID,
			&addr.DistrictName,
			&addr.SubdistrictID,
			&addr.SubdistrictName,
			&addr.PostalCode,
			&addr.IsDefault,
			&addr.CreatedAt,
			&addr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}

	return addresses, nil
}

// Update rewrites an existing address.
func (r *AddressRepository) Update(ctx context.Context, addr *domain.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if addr.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND id <> $2`, addr.UserID, addr.ID); err != nil {
			return fmt.Errorf("clear default address: %w", err)
		}
	}

	query := `
		UPDATE addresses
		SET label = $1, recipient_name = $2, phone = $3, street = $4,
			province_id = $5, province_name = $6, city_id = $7, city_name = $8,
			district_id = $9, district_name = $10, subdistrict_id = $11, subdistrict_name = $12,
			postal_code = $13, is_default = $14, updated_at = $15
		WHERE id = $16`

	ct, err := tx.Exec(ctx, query,
		addr.Label,
		addr.RecipientName,
		addr.Phone,
		addr.Street,
		addr.ProvinceID,
		addr.ProvinceName,
		addr.CityID,
		addr.CityName,
		addr.DistrictID,
		addr.DistrictName,
		addr.SubdistrictID,
		addr.SubdistrictName,
		addr.PostalCode,
		addr.IsDefault,
		addr.UpdatedAt,
		addr.ID,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", addr.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Delete removes an address.
func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", id)
	}
	return nil
}
