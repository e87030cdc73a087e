package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/service"
	"github.com/emycrochet/storefront-api/pkg/errors"
)

// MockOrderFlow implements OrderFlow for testing
type MockOrderFlow struct {
	beginCalls    int
	finalizeCalls int
	beginResp     *service.BeginOrderResponse
	beginErr      error
	captureResult json.RawMessage
	captureErr    error
}

func (m *MockOrderFlow) BeginOrder(ctx context.Context, req service.BeginOrderRequest) (*service.BeginOrderResponse, error) {
	m.beginCalls++
	return m.beginResp, m.beginErr
}

func (m *MockOrderFlow) FinalizeOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	m.finalizeCalls++
	return m.captureResult, m.captureErr
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler(c)
	return w
}

func TestCreateOrderReturnsHandle(t *testing.T) {
	flow := &MockOrderFlow{beginResp: &service.BeginOrderResponse{ID: "ORDER-123"}}
	w := performJSON(t, HandleCreateOrder(flow, zap.NewNop()), http.MethodPost,
		`{"items":[{"id":"A","quantity":2}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"ORDER-123"}`, w.Body.String())
	assert.Equal(t, 1, flow.beginCalls)
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty items", `{"items":[]}`},
		{"missing items", `{}`},
		{"malformed json", `{"items":`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := &MockOrderFlow{}
			w := performJSON(t, HandleCreateOrder(flow, zap.NewNop()), http.MethodPost, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"No items"}`, w.Body.String())
			assert.Equal(t, 0, flow.beginCalls, "invalid input must not reach the flow")
		})
	}
}

func TestCreateOrderErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantDetail string
	}{
		{"unknown item", &errors.ErrUnknownItem{ID: "X"}, http.StatusBadRequest, "Unknown or invalid item: X", ""},
		{"empty order", &errors.ErrEmptyOrder{}, http.StatusBadRequest, "No items", ""},
		{"catalog down", &errors.ErrCatalogUnavailable{Err: assert.AnError}, http.StatusInternalServerError, "Catalog unavailable", ""},
		{"auth failed", &errors.ErrPaymentAuth{Detail: "invalid_client"}, http.StatusInternalServerError, "PayPal auth failed", "invalid_client"},
		{"create failed", &errors.ErrPaymentCreate{Detail: "AMOUNT_MISMATCH"}, http.StatusInternalServerError, "PayPal create failed", "AMOUNT_MISMATCH"},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "Internal error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := &MockOrderFlow{beginErr: tt.err}
			w := performJSON(t, HandleCreateOrder(flow, zap.NewNop()), http.MethodPost,
				`{"items":[{"id":"A","quantity":1}]}`)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body["detail"])
			}
		})
	}
}

func TestCreateOrderNeverReturnsHandleOnProviderFailure(t *testing.T) {
	flow := &MockOrderFlow{beginErr: &errors.ErrPaymentCreate{Detail: "boom"}}
	w := performJSON(t, HandleCreateOrder(flow, zap.NewNop()), http.MethodPost,
		`{"items":[{"id":"A","quantity":1}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), `"id"`)
}

func TestCaptureOrderRelaysProviderResult(t *testing.T) {
	captureResult := `{"id":"ORDER-123","status":"COMPLETED","payer":{"email_address":"buyer@example.com"}}`
	flow := &MockOrderFlow{captureResult: json.RawMessage(captureResult)}
	w := performJSON(t, HandleCaptureOrder(flow, zap.NewNop()), http.MethodPost,
		`{"orderID":"ORDER-123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, captureResult, w.Body.String())
}

func TestCaptureOrderMissingID(t *testing.T) {
	for _, body := range []string{`{}`, `{"orderID":""}`, ``} {
		flow := &MockOrderFlow{}
		w := performJSON(t, HandleCaptureOrder(flow, zap.NewNop()), http.MethodPost, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing orderID"}`, w.Body.String())
		assert.Equal(t, 0, flow.finalizeCalls)
	}
}

func TestCaptureOrderSurfacesRejection(t *testing.T) {
	flow := &MockOrderFlow{captureErr: &errors.ErrPaymentCapture{Detail: "ORDER_ALREADY_CAPTURED"}}
	w := performJSON(t, HandleCaptureOrder(flow, zap.NewNop()), http.MethodPost,
		`{"orderID":"ORDER-123"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PayPal capture failed", body["error"])
	assert.Equal(t, "ORDER_ALREADY_CAPTURED", body["detail"])
}
