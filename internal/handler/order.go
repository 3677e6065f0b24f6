package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
)

// OrderPlacer is what the handler needs from the order service.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, orderNumber string) (*domain.OrderDetail, error)
}

type OrderHandler struct {
	orders OrderPlacer
	logger *zap.Logger
}

func NewOrderHandler(orders OrderPlacer, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req domain.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
		"message": "Order created successfully",
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	detail, err := h.orders.GetOrder(c.Request.Context(), c.Param("orderNumber"))
	if errors.Is(err, domain.ErrNotFound) {
		notFound(c, "Order not found")
		return
	}
	if err != nil {
		h.logger.Error("get order", zap.String("order_number", c.Param("orderNumber")), zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
