package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zahrafashion/storefront/internal/payment/domain"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

type mockMethodRepository struct {
	mock.Mock
}

func (m *mockMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *mockMethodRepository) GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *mockMethodRepository) List(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *mockMethodRepository) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func newTestService(repo *mockMethodRepository) *PaymentMethodService {
	return NewPaymentMethodService(repo, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func transferMethod(active bool) *domain.PaymentMethod {
	now := time.Now().UTC()
	return &domain.PaymentMethod{
		ID:            "pm-bca",
		Type:          domain.MethodTransfer,
		Name:          "Transfer BCA",
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountHolder: "Zahra Fashion",
		Active:        active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestPaymentMethodService_RequireAvailable_Active(t *testing.T) {
	repo := new(mockMethodRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, "pm-bca").Return(transferMethod(true), nil)

	method, err := svc.RequireAvailable(context.Background(), "pm-bca")
	require.NoError(t, err)
	assert.Equal(t, "Transfer BCA", method.Name)
}

func TestPaymentMethodService_RequireAvailable_Inactive(t *testing.T) {
	repo := new(mockMethodRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, "pm-bca").Return(transferMethod(false), nil)

	_, err := svc.RequireAvailable(context.Background(), "pm-bca")
	assert.ErrorIs(t, err, apperrors.ErrPaymentMethod)
}

func TestPaymentMethodService_RequireAvailable_Missing(t *testing.T) {
	repo := new(mockMethodRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, "pm-x").Return(nil, apperrors.NotFound("payment method", "pm-x"))

	_, err := svc.RequireAvailable(context.Background(), "pm-x")
	assert.ErrorIs(t, err, apperrors.ErrPaymentMethod)
}

func TestPaymentMethodService_Create_TransferRequiresAccount(t *testing.T) {
	svc := newTestService(new(mockMethodRepository))

	_, err := svc.Create(context.Background(), CreateMethodInput{Type: "transfer", Name: "Transfer BRI"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPaymentMethodService_Create_COD(t *testing.T) {
	repo := new(mockMethodRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.PaymentMethod) bool {
		return m.Type == domain.MethodCOD && m.Active
	})).Return(nil)

	method, err := svc.Create(context.Background(), CreateMethodInput{Type: "cod", Name: "Bayar di Tempat"})
	require.NoError(t, err)
	assert.True(t, method.Active)
	repo.AssertExpectations(t)
}
