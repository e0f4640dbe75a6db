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

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahrafashion/storefront/internal/cart/domain"
	redisrepo "github.com/zahrafashion/storefront/internal/cart/repository/redis"
	"github.com/zahrafashion/storefront/internal/cart/service"
	"github.com/zahrafashion/storefront/pkg/middleware"
)

type noopPublisher struct{}

func (noopPublisher) PublishCartUpdated(context.Context, *domain.Cart) error { return nil }
func (noopPublisher) PublishCartCleared(context.Context, string) error       { return nil }

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := redisrepo.NewCartRepository(client, 24*time.Hour)
	svc := service.NewCartService(repo, noopPublisher{}, logger, 24*time.Hour)
	handler := NewCartHandler(svc, logger)

	validate := func(token string) (*middleware.Claims, error) {
		return &middleware.Claims{UserID: token, Role: "customer"}, nil
	}

	r := chi.NewRouter()
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.Auth(validate))
		handler.Routes(r)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCartHandler_GetCart_EmptyByDefault(t *testing.T) {
	router := setupRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"user-1"`)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestCartHandler_AddThenGet(t *testing.T) {
	router := setupRouter(t)

	body := `{"product_id": "gamis-basic", "name": "Gamis Basic", "size": "M", "color": "navy", "price": 185000, "quantity": 2, "weight_grams": 350}`
	rec := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gamis-basic"`)
	assert.Contains(t, rec.Body.String(), `"quantity":2`)
}

func TestCartHandler_AddItem_ValidationFailure(t *testing.T) {
	router := setupRouter(t)

	body := `{"product_id": "", "quantity": 0}`
	rec := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	router := setupRouter(t)

	add := `{"product_id": "gamis-basic", "name": "Gamis Basic", "size": "M", "color": "navy", "price": 185000, "quantity": 2}`
	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/v1/cart/items", add).Code)

	update := `{"size": "M", "color": "navy", "quantity": 5}`
	rec := doRequest(t, router, http.MethodPut, "/api/v1/cart/items/gamis-basic", update)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":5`)
}

func TestCartHandler_ClearCart(t *testing.T) {
	router := setupRouter(t)

	add := `{"product_id": "gamis-basic", "name": "Gamis Basic", "size": "M", "color": "navy", "price": 185000, "quantity": 2}`
	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/v1/cart/items", add).Code)

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/cart", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/cart", "")
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestCartHandler_Unauthorized(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
