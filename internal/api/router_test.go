package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/catalog"
	"github.com/emycrochet/storefront-api/internal/config"
	"github.com/emycrochet/storefront-api/internal/domain"
	"github.com/emycrochet/storefront-api/internal/service"
)

type stubFlow struct{}

func (s *stubFlow) BeginOrder(ctx context.Context, req service.BeginOrderRequest) (*service.BeginOrderResponse, error) {
	return &service.BeginOrderResponse{ID: "ORDER-1"}, nil
}

func (s *stubFlow) FinalizeOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	return json.RawMessage(`{"status":"COMPLETED"}`), nil
}

type stubCatalog struct{}

func (s *stubCatalog) Fetch(ctx context.Context) (*catalog.Snapshot, error) {
	return catalog.NewSnapshot([]*domain.Product{
		{ID: "A", Name: "Fox", Price: decimal.RequireFromString("10.00"), Active: true},
		{ID: "old", Name: "Retired", Price: decimal.RequireFromString("5.00"), Active: false},
	}), nil
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Environment: "test", Currency: "EUR"}
	return NewRouter(cfg, &stubFlow{}, &stubCatalog{}, zap.NewNop())
}

func TestPreflightAnswers200WithCORSHeaders(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/api/create-order", "/api/capture-order"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestWrongMethodAnswers405(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/create-order", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, w.Body.String())
}

func TestCreateOrderRoute(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create-order",
		strings.NewReader(`{"items":[{"id":"A","quantity":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"ORDER-1"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProductsRouteServesActiveEntriesOnly(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products []struct {
			ID    string  `json:"id"`
			Price float64 `json:"price"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, "A", body.Products[0].ID)
	assert.Equal(t, 10.0, body.Products[0].Price)
}

func TestHealthRoute(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
