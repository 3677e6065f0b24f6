package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
)

type Subscriber interface {
	Subscribe(ctx context.Context, email string) error
}

type NewsletterHandler struct {
	newsletter Subscriber
	logger     *zap.Logger
}

func NewNewsletterHandler(newsletter Subscriber, logger *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter, logger: logger}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req domain.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.newsletter.Subscribe(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Successfully subscribed to newsletter",
	})
}
