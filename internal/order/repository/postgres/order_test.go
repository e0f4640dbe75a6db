package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahrafashion/storefront/internal/order/domain"
	"github.com/zahrafashion/storefront/pkg/database"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

func newTestRepo(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewOrderRepository(mock)
	return repo, mock
}

func sampleOrder() *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		ID:                  "order-001",
		UserID:              "user-001",
		Status:              domain.StatusPending,
		Subtotal:            370000,
		DiscountAmount:      20000,
		ShippingCost:        18000,
		TotalAmount:         368000,
		Currency:            "IDR",
		Courier:             "jnt",
		ShippingService:     "REG",
		ShippingETD:         "2-3",
		BillableWeightGrams: 3000,
		ShippingAddress: &domain.Address{
			RecipientName:   "Siti Aminah",
			Phone:           "+6281234567890",
			Street:          "Jl. Melati No. 5",
			SubdistrictID:   "123",
			SubdistrictName: "Sukamaju",
			DistrictID:      "456",
			DistrictName:    "Cilodong",
			PostalCode:      "16415",
		},
		PaymentMethodID:   "pm-bca",
		PaymentMethodName: "Transfer BCA",
		CreatedAt:         now,
		UpdatedAt:         now,
		Items: []domain.OrderItem{
			{
				ID:          "item-001",
				OrderID:     "order-001",
				ProductID:   "gamis-basic",
				Name:        "Gamis Basic Crinkle",
				Size:        "M",
				Color:       "navy",
				Price:       185000,
				Quantity:    2,
				WeightGrams: 350,
			},
		},
	}
}

func TestOrderRepository_Create_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.UserID, o.Status,
			o.Subtotal, o.DiscountAmount, o.ShippingCost, o.TotalAmount, o.Currency,
			o.Courier, o.ShippingService, o.ShippingETD, o.BillableWeightGrams,
			pgxmock.AnyArg(), // address JSON
			o.PaymentMethodID, o.PaymentMethodName, o.PaymentProofURL,
			o.Notes, o.CancelReason, o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	for _, item := range o.Items {
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(
				item.ID, item.OrderID, item.ProductID, item.Name,
				item.Size, item.Color, item.Price, item.Quantity, item.WeightGrams,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	mock.ExpectCommit()

	err := repo.Create(context.Background(), o)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_ItemInsertFailureRollsBack(t *testing.T) {
	repo, mock := newTestRepo(t)

	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.UserID, o.Status,
			o.Subtotal, o.DiscountAmount, o.ShippingCost, o.TotalAmount, o.Currency,
			o.Courier, o.ShippingService, o.ShippingETD, o.BillableWeightGrams,
			pgxmock.AnyArg(),
			o.PaymentMethodID, o.PaymentMethodName, o.PaymentProofURL,
			o.Notes, o.CancelReason, o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(
			o.Items[0].ID, o.Items[0].OrderID, o.Items[0].ProductID, o.Items[0].Name,
			o.Items[0].Size, o.Items[0].Color, o.Items[0].Price, o.Items[0].Quantity, o.Items[0].WeightGrams,
		).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), o)
	assert.Error(t, err)
}

func TestOrderRepository_GetByID_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	o := sampleOrder()
	addressJSON, err := json.Marshal(o.ShippingAddress)
	require.NoError(t, err)
	itemsJSON, err := json.Marshal(o.Items)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "status", "subtotal", "discount_amount", "shipping_cost",
		"total_amount", "currency", "courier", "shipping_service", "shipping_etd",
		"billable_weight_grams", "shipping_address", "payment_method_id",
		"payment_method_name", "payment_proof_url", "notes", "cancel_reason",
		"created_at", "updated_at", "items",
	}).AddRow(
		o.ID, o.UserID, o.Status, o.Subtotal, o.DiscountAmount, o.ShippingCost,
		o.TotalAmount, o.Currency, o.Courier, o.ShippingService, o.ShippingETD,
		o.BillableWeightGrams, addressJSON, o.PaymentMethodID,
		o.PaymentMethodName, o.PaymentProofURL, o.Notes, o.CancelReason,
		o.CreatedAt, o.UpdatedAt, itemsJSON,
	)

	mock.ExpectQuery("SELECT(.+)FROM orders o").
		WithArgs(o.ID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, o.ShippingAddress, got.ShippingAddress)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "gamis-basic", got.Items[0].ProductID)
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT(.+)FROM orders o").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderRepository_UpdateStatus_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.StatusPaid, "", "", pgxmock.AnyArg(), "order-001").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), "order-001", domain.StatusPaid, "", "")
	assert.NoError(t, err)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.StatusPaid, "", "", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusPaid, "", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
