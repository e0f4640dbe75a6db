package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zahrafashion/storefront/internal/payment/domain"
	"github.com/zahrafashion/storefront/internal/payment/repository"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

// CreateMethodInput holds the parameters for registering a payment method.
type CreateMethodInput struct {
	Type          string `json:"type" validate:"required,oneof=transfer cod"`
	Name          string `json:"name" validate:"required,max=100"`
	BankName      string `json:"bank_name" validate:"max=100"`
	AccountNumber string `json:"account_number" validate:"max=50"`
	AccountHolder string `json:"account_holder" validate:"max=200"`
}

// PaymentMethodService implements business logic for the payment method catalog.
type PaymentMethodService struct {
	repo   repository.PaymentMethodRepository
	logger *slog.Logger
}

// NewPaymentMethodService creates a payment method service.
func NewPaymentMethodService(repo repository.PaymentMethodRepository, logger *slog.Logger) *PaymentMethodService {
	return &PaymentMethodService{
		repo:   repo,
		logger: logger,
	}
}

// ListAvailable returns the payment methods customers can currently choose.
func (s *PaymentMethodService) ListAvailable(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.repo.List(ctx, true)
}

// ListAll returns every payment method including disabled ones.
func (s *PaymentMethodService) ListAll(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.repo.List(ctx, false)
}

// RequireAvailable returns the method when it exists and is active, and a
// PaymentMethodUnavailable error otherwise. Order submission depends on this
// check.
func (s *PaymentMethodService) RequireAvailable(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	method, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.PaymentMethodUnavailable("metode pembayaran tidak ditemukan, pilih metode lain")
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	if !method.Active {
		return nil, apperrors.PaymentMethodUnavailable("metode pembayaran sedang tidak tersedia, pilih metode lain")
	}
	return method, nil
}

// Create registers a new payment method (admin only, enforced at the route).
func (s *PaymentMethodService) Create(ctx context.Context, input CreateMethodInput) (*domain.PaymentMethod, error) {
	methodType := domain.MethodType(input.Type)
	if !methodType.Valid() {
		return nil, apperrors.InvalidInput("unknown payment method type: " + input.Type)
	}
	if methodType == domain.MethodTransfer && input.AccountNumber == "" {
		return nil, apperrors.InvalidInput("transfer methods require an account number")
	}

	now := time.Now().UTC()
	method := &domain.PaymentMethod{
		ID:            uuid.NewString(),
		Type:          methodType,
		Name:          input.Name,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		AccountHolder: input.AccountHolder,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, method); err != nil {
		return nil, fmt.Errorf("create payment method: %w", err)
	}

	s.logger.InfoContext(ctx, "payment method created",
		slog.String("method_id", method.ID),
		slog.String("type", string(method.Type)))

	return method, nil
}

// SetActive toggles a payment method (admin only, enforced at the route).
func (s *PaymentMethodService) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}
