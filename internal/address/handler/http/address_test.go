package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zahrafashion/storefront/internal/address/domain"
	"github.com/zahrafashion/storefront/internal/address/service"
	"github.com/zahrafashion/storefront/pkg/middleware"
)

type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) Create(ctx context.Context, addr *domain.Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *mockAddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockAddressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockAddressRepository) Update(ctx context.Context, addr *domain.Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *mockAddressRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(t *testing.T, repo *mockAddressRepository) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	svc := service.NewAddressService(repo, logger)
	handler := NewAddressHandler(svc, logger)

	validate := func(token string) (*middleware.Claims, error) {
		return &middleware.Claims{UserID: token, Role: "customer"}, nil
	}

	r := chi.NewRouter()
	r.Route("/api/v1/addresses", func(r chi.Router) {
		r.Use(middleware.Auth(validate))
		handler.Routes(r)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func homeAddress(userID string) *domain.Address {
	now := time.Now()
	return &domain.Address{
		ID:              "addr-1",
		UserID:          userID,
		Label:           "Rumah",
		RecipientName:   "Siti Aminah",
		Phone:           "+6281234567890",
		Street:          "Jl. Merdeka No. 10",
		ProvinceID:      "9",
		ProvinceName:    "Jawa Barat",
		CityID:          "23",
		CityName:        "Bandung",
		DistrictID:      "456",
		DistrictName:    "Coblong",
		SubdistrictID:   "123",
		SubdistrictName: "Dago",
		PostalCode:      "40135",
		IsDefault:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestAddressHandler_Create(t *testing.T) {
	repo := new(mockAddressRepository)
	repo.On("ListByUser", mock.Anything, "user-1").Return([]domain.Address{}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(addr *domain.Address) bool {
		return addr.UserID == "user-1" && addr.Label == "Rumah" && addr.IsDefault
	})).Return(nil)

	router := setupRouter(t, repo)
	body := `{
		"label": "Rumah",
		"recipient_name": "Siti Aminah",
		"phone": "+6281234567890",
		"street": "Jl. Merdeka No. 10",
		"district_id": "456",
		"district_name": "Coblong",
		"subdistrict_id": "123",
		"subdistrict_name": "Dago",
		"postal_code": "40135"
	}`
	rec := doRequest(t, router, "POST", "/api/v1/addresses", "user-1", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_default":true`)
	repo.AssertExpectations(t)
}

func TestAddressHandler_Create_MissingRequiredFields(t *testing.T) {
	repo := new(mockAddressRepository)
	router := setupRouter(t, repo)

	rec := doRequest(t, router, "POST", "/api/v1/addresses", "user-1", `{"label": "Rumah"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, rec.Body.String(), "RecipientName")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddressHandler_List(t *testing.T) {
	repo := new(mockAddressRepository)
	repo.On("ListByUser", mock.Anything, "user-1").Return([]domain.Address{*homeAddress("user-1")}, nil)

	router := setupRouter(t, repo)
	rec := doRequest(t, router, "GET", "/api/v1/addresses", "user-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"Rumah"`)
	assert.Contains(t, rec.Body.String(), `"subdistrict_id":"123"`)
}

func TestAddressHandler_Get_OtherUsersAddress(t *testing.T) {
	repo := new(mockAddressRepository)
	repo.On("GetByID", mock.Anything, "addr-1").Return(homeAddress("user-2"), nil)

	router := setupRouter(t, repo)
	rec := doRequest(t, router, "GET", "/api/v1/addresses/addr-1", "user-1", "")

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestAddressHandler_Update(t *testing.T) {
	repo := new(mockAddressRepository)
	repo.On("GetByID", mock.Anything, "addr-1").Return(homeAddress("user-1"), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(addr *domain.Address) bool {
		return addr.ID == "addr-1" && addr.Label == "Kantor" && addr.DistrictID == "789"
	})).Return(nil)

	router := setupRouter(t, repo)
	body := `{
		"label": "Kantor",
		"recipient_name": "Siti Aminah",
		"phone": "+6281234567890",
		"street": "Jl. Asia Afrika No. 8",
		"district_id": "789",
		"district_name": "Sumur Bandung"
	}`
	rec := doRequest(t, router, "PUT", "/api/v1/addresses/addr-1", "user-1", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"Kantor"`)
	repo.AssertExpectations(t)
}

func TestAddressHandler_Delete(t *testing.T) {
	repo := new(mockAddressRepository)
	repo.On("GetByID", mock.Anything, "addr-1").Return(homeAddress("user-1"), nil)
	repo.On("Delete", mock.Anything, "addr-1").Return(nil)

	router := setupRouter(t, repo)
	rec := doRequest(t, router, "DELETE", "/api/v1/addresses/addr-1", "user-1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestAddressHandler_SetDefault(t *testing.T) {
	addr := homeAddress("user-1")
	addr.IsDefault = false

	repo := new(mockAddressRepository)
	repo.On("GetByID", mock.Anything, "addr-1").Return(addr, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Address) bool {
		return a.ID == "addr-1" && a.IsDefault
	})).Return(nil)

	router := setupRouter(t, repo)
	rec := doRequest(t, router, "POST", "/api/v1/addresses/addr-1/default", "user-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_default":true`)
	repo.AssertExpectations(t)
}
