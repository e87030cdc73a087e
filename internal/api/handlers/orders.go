package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/service"
	"github.com/emycrochet/storefront-api/pkg/errors"
)

// OrderFlow is the two-operation order lifecycle the handlers expose.
type OrderFlow interface {
	BeginOrder(ctx context.Context, req service.BeginOrderRequest) (*service.BeginOrderResponse, error)
	FinalizeOrder(ctx context.Context, orderID string) (json.RawMessage, error)
}

// HandleCreateOrder handles POST /api/create-order
func HandleCreateOrder(orders OrderFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.BeginOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No items"})
			return
		}

		resp, err := orders.BeginOrder(c.Request.Context(), req)
		if err != nil {
			respondOrderError(c, err, logger)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleCaptureOrder handles POST /api/capture-order. The provider's
// capture result is relayed to the frontend unmodified.
func HandleCaptureOrder(orders OrderFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.FinalizeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing orderID"})
			return
		}

		result, err := orders.FinalizeOrder(c.Request.Context(), req.OrderID)
		if err != nil {
			respondOrderError(c, err, logger)
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", result)
	}
}

// respondOrderError maps the flow's error taxonomy onto the boundary
// contract. Caller-input faults get 400 with a message safe to show;
// upstream faults get 500 and keep the provider diagnostic in the detail
// field, which the frontend must treat as internal.
func respondOrderError(c *gin.Context, err error, logger *zap.Logger) {
	switch e := err.(type) {
	case *errors.ErrEmptyOrder:
		c.JSON(http.StatusBadRequest, gin.H{"error": "No items"})
	case *errors.ErrUnknownItem:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown or invalid item: %s", e.ID)})
	case *errors.ErrCatalogUnavailable:
		logger.Error("Catalog fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Catalog unavailable"})
	case *errors.ErrPaymentAuth:
		logger.Error("Provider auth failed", zap.String("detail", e.Detail))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PayPal auth failed", "detail": e.Detail})
	case *errors.ErrPaymentCreate:
		logger.Error("Provider create failed", zap.String("detail", e.Detail))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PayPal create failed", "detail": e.Detail})
	case *errors.ErrPaymentCapture:
		logger.Error("Provider capture failed", zap.String("detail", e.Detail))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PayPal capture failed", "detail": e.Detail})
	default:
		logger.Error("Unexpected order flow error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
