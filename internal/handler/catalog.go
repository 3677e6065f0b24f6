package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
	"github.com/tahoebearjerky/storefront-api/internal/repository"
)

// CatalogHandler serves the read-only catalog endpoints straight from the
// repository; there is no business logic between them.
type CatalogHandler struct {
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

func NewCatalogHandler(catalog repository.CatalogRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		h.logger.Error("get product", zap.Int64("id", id), zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("list categories", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) ListJerkyProducts(c *gin.Context) {
	jerky, err := h.catalog.ListJerkyProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("list jerky products", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jerky)
}

func (h *CatalogHandler) GetJerkyProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid jerky product id"})
		return
	}

	jerky, err := h.catalog.GetJerkyProduct(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		notFound(c, "Jerky product not found")
		return
	}
	if err != nil {
		h.logger.Error("get jerky product", zap.Int64("id", id), zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jerky)
}
