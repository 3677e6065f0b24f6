// Package handler maps the REST surface onto the services. Every error
// response is a JSON object with a single "error" string; no stack traces
// leave the process.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
)

// writeError maps the error taxonomy to HTTP statuses: validation 400,
// missing rows 404, unique-key conflicts 409, everything else 500 with the
// underlying message.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

// Routes wires the full REST surface under /api.
func Routes(r *gin.Engine, catalog *CatalogHandler, orders *OrderHandler, newsletter *NewsletterHandler, health *HealthHandler) {
	api := r.Group("/api")
	{
		api.GET("/products", catalog.ListProducts)
		api.GET("/products/:id", catalog.GetProduct)
		api.GET("/categories", catalog.ListCategories)
		api.GET("/jerky-products", catalog.ListJerkyProducts)
		api.GET("/jerky-products/:id", catalog.GetJerkyProduct)

		api.POST("/orders", orders.PlaceOrder)
		api.GET("/orders/:orderNumber", orders.GetOrder)

		api.POST("/newsletter/subscribe", newsletter.Subscribe)

		api.GET("/health", health.Check)
	}
}
