package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zahrafashion/storefront/internal/address/domain"
	"github.com/zahrafashion/storefront/internal/address/repository"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

// MaxAddressesPerUser bounds the address book size.
const MaxAddressesPerUser = 20

// AddressInput holds the parameters for creating or updating an address.
type AddressInput struct {
	Label           string `json:"label" validate:"required,max=50"`
	RecipientName   string `json:"recipient_name" validate:"required,max=200"`
	Phone           string `json:"phone" validate:"required,max=20"`
	Street          string `json:"street" validate:"required,max=500"`
	ProvinceID      string `json:"province_id"`
	ProvinceName    string `json:"province_name"`
	CityID          string `json:"city_id"`
	CityName        string `json:"city_name"`
	DistrictID      string `json:"district_id"`
	DistrictName    string `json:"district_name"`
	SubdistrictID   string `json:"subdistrict_id"`
	SubdistrictName string `json:"subdistrict_name"`
	PostalCode      string `json:"postal_code" validate:"max=10"`
	IsDefault       bool   `json:"is_default"`
}

// AddressService implements the business logic for the address book.
type AddressService struct {
	repo   repository.AddressRepository
	logger *slog.Logger
}

// NewAddressService creates an address service.
func NewAddressService(repo repository.AddressRepository, logger *slog.Logger) *AddressService {
	return &AddressService{
		repo:   repo,
		logger: logger,
	}
}

// Create adds an address to the user's address book. The first address
// becomes the default regardless of the input flag.
func (s *AddressService) Create(ctx context.Context, userID string, input AddressInput) (*domain.Address, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	if len(existing) >= MaxAddressesPerUser {
		return nil, apperrors.InvalidInput(fmt.Sprintf("address book must not exceed %d entries", MaxAddressesPerUser))
	}

	now := time.Now().UTC()
	addr := &domain.Address{
		ID:              uuid.NewString(),
		UserID:          userID,
		Label:           input.Label,
		RecipientName:   input.RecipientName,
		Phone:           input.Phone,
		Street:          input.Street,
		ProvinceID:      input.ProvinceID,
		ProvinceName:    input.ProvinceName,
		CityID:          input.CityID,
		CityName:        input.CityName,
		DistrictID:      input.DistrictID,
		DistrictName:    input.DistrictName,
		SubdistrictID:   input.SubdistrictID,
		SubdistrictName: input.SubdistrictName,
		PostalCode:      input.PostalCode,
		IsDefault:       input.IsDefault || len(existing) == 0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	s.logger.InfoContext(ctx, "address created",
		slog.String("address_id", addr.ID),
		slog.String("user_id", userID),
		slog.Bool("is_default", addr.IsDefault))

	return addr, nil
}

// Get returns an address owned by the user.
func (s *AddressService) Get(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, apperrors.Forbidden("address belongs to another user")
	}
	return addr, nil
}

// List returns the user's address book, default first.
func (s *AddressService) List(ctx context.Context, userID string) ([]domain.Address, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update rewrites an address owned by the user.
func (s *AddressService) Update(ctx context.Context, userID, addressID string, input AddressInput) (*domain.Address, error) {
	addr, err := s.Get(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	addr.Label = input.Label
	addr.RecipientName = input.RecipientName
	addr.Phone = input.Phone
	addr.Street = input.Street
	addr.ProvinceID = input.ProvinceID
	addr.ProvinceName = input.ProvinceName
	addr.CityID = input.CityID
	addr.CityName = input.CityName
	addr.DistrictID = input.DistrictID
	addr.DistrictName = input.DistrictName
	addr.SubdistrictID = input.SubdistrictID
	addr.SubdistrictName = input.SubdistrictName
	addr.PostalCode = input.PostalCode
	addr.IsDefault = input.IsDefault
	addr.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	return addr, nil
}

// Delete removes an address owned by the user.
func (s *AddressService) Delete(ctx context.Context, userID, addressID string) error {
	if _, err := s.Get(ctx, userID, addressID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, addressID)
}

// SetDefault marks an address as the user's default.
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	addr, err := s.Get(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	addr.IsDefault = true
	addr.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, fmt.Errorf("set default address: %w", err)
	}

	return addr, nil
}
