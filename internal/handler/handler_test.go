package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
	"github.com/tahoebearjerky/storefront-api/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOrders struct {
	placeOrder func(context.Context, *domain.PlaceOrderRequest) (*domain.Order, error)
	getOrder   func(context.Context, string) (*domain.OrderDetail, error)
}

func (s *stubOrders) PlaceOrder(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	return s.placeOrder(ctx, req)
}

func (s *stubOrders) GetOrder(ctx context.Context, orderNumber string) (*domain.OrderDetail, error) {
	return s.getOrder(ctx, orderNumber)
}

type stubNewsletter struct {
	subscribe func(context.Context, string) error
}

func (s *stubNewsletter) Subscribe(ctx context.Context, email string) error {
	return s.subscribe(ctx, email)
}

type stubCatalog struct {
	repository.CatalogRepository
	getProduct   func(context.Context, int64) (*domain.Product, error)
	listProducts func(context.Context, string) ([]domain.Product, error)
}

func (s *stubCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getProduct(ctx, id)
}

func (s *stubCatalog) ListProducts(ctx context.Context, slug string) ([]domain.Product, error) {
	return s.listProducts(ctx, slug)
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error { return s.err }
func (s *stubPinger) Engine() string                 { return "sqlite" }

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const orderBody = `{
	"customer_email": "a@b.com",
	"items": [{"id": 1, "name": "Classic Bear Tee", "price": 29.99, "quantity": 2}],
	"shipping_address": {"street_address": "1 Main St", "city": "Truckee", "state": "CA", "postal_code": "96161"}
}`

func orderRouter(orders OrderPlacer) *gin.Engine {
	r := gin.New()
	h := NewOrderHandler(orders, zap.NewNop())
	r.POST("/api/orders", h.PlaceOrder)
	r.GET("/api/orders/:orderNumber", h.GetOrder)
	return r
}

func TestPlaceOrderHandler_Created(t *testing.T) {
	orders := &stubOrders{
		placeOrder: func(_ context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error) {
			assert.Equal(t, "a@b.com", req.CustomerEmail)
			require.Len(t, req.Items, 1)
			assert.True(t, req.Items[0].Price.Equal(decimal.RequireFromString("29.99")))
			return &domain.Order{ID: 42, OrderNumber: "TBJ-20240315-0007"}, nil
		},
	}

	w := perform(orderRouter(orders), http.MethodPost, "/api/orders", orderBody)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Order   domain.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Order created successfully", body.Message)
	assert.Equal(t, "TBJ-20240315-0007", body.Order.OrderNumber)
}

func TestPlaceOrderHandler_ValidationError(t *testing.T) {
	orders := &stubOrders{
		placeOrder: func(_ context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error) {
			return nil, req.Validate()
		},
	}

	w := perform(orderRouter(orders), http.MethodPost, "/api/orders",
		`{"items": [], "shipping_address": {}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestPlaceOrderHandler_MalformedJSON(t *testing.T) {
	orders := &stubOrders{
		placeOrder: func(context.Context, *domain.PlaceOrderRequest) (*domain.Order, error) {
			t.Fatal("service must not be reached on malformed JSON")
			return nil, nil
		},
	}

	w := perform(orderRouter(orders), http.MethodPost, "/api/orders", `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderHandler_StoreFailure(t *testing.T) {
	orders := &stubOrders{
		placeOrder: func(context.Context, *domain.PlaceOrderRequest) (*domain.Order, error) {
			return nil, &domain.OrderCreationError{Err: errors.New("connection reset")}
		},
	}

	w := perform(orderRouter(orders), http.MethodPost, "/api/orders", orderBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection reset")
}

func TestGetOrderHandler_OK(t *testing.T) {
	orders := &stubOrders{
		getOrder: func(_ context.Context, number string) (*domain.OrderDetail, error) {
			assert.Equal(t, "TBJ-20240315-0007", number)
			return &domain.OrderDetail{
				Order: domain.Order{ID: 42, OrderNumber: number},
				Email: "a@b.com",
				Items: []domain.OrderItem{{ID: 1}, {ID: 2}},
			}, nil
		},
	}

	w := perform(orderRouter(orders), http.MethodGet, "/api/orders/TBJ-20240315-0007", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OrderNumber string            `json:"order_number"`
		Email       string            `json:"email"`
		Items       []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a@b.com", body.Email)
	assert.Len(t, body.Items, 2)
}

func TestGetOrderHandler_NotFound(t *testing.T) {
	orders := &stubOrders{
		getOrder: func(context.Context, string) (*domain.OrderDetail, error) {
			return nil, domain.ErrNotFound
		},
	}

	w := perform(orderRouter(orders), http.MethodGet, "/api/orders/TBJ-19990101-0001", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
}

func TestSubscribeHandler(t *testing.T) {
	var got string
	news := &stubNewsletter{subscribe: func(_ context.Context, email string) error {
		got = email
		return nil
	}}
	r := gin.New()
	r.POST("/api/newsletter/subscribe", NewNewsletterHandler(news, zap.NewNop()).Subscribe)

	w := perform(r, http.MethodPost, "/api/newsletter/subscribe", `{"email": "a@b.com"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "a@b.com", got)
	assert.Contains(t, w.Body.String(), "Successfully subscribed")
}

func TestSubscribeHandler_MissingEmail(t *testing.T) {
	news := &stubNewsletter{subscribe: func(_ context.Context, email string) error {
		if email == "" {
			return domain.NewValidationError("email is required")
		}
		return nil
	}}
	r := gin.New()
	r.POST("/api/newsletter/subscribe", NewNewsletterHandler(news, zap.NewNop()).Subscribe)

	w := perform(r, http.MethodPost, "/api/newsletter/subscribe", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email is required")
}

func TestGetProductHandler(t *testing.T) {
	catalog := &stubCatalog{
		getProduct: func(_ context.Context, id int64) (*domain.Product, error) {
			if id != 1 {
				return nil, domain.ErrNotFound
			}
			return &domain.Product{ID: 1, Name: "Classic Bear Tee"}, nil
		},
	}
	r := gin.New()
	h := NewCatalogHandler(catalog, zap.NewNop())
	r.GET("/api/products/:id", h.GetProduct)

	w := perform(r, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Classic Bear Tee")

	w = perform(r, http.MethodGet, "/api/products/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")

	w = perform(r, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProductsHandler_PassesCategoryFilter(t *testing.T) {
	var gotSlug string
	catalog := &stubCatalog{
		listProducts: func(_ context.Context, slug string) ([]domain.Product, error) {
			gotSlug = slug
			return []domain.Product{}, nil
		},
	}
	r := gin.New()
	r.GET("/api/products", NewCatalogHandler(catalog, zap.NewNop()).ListProducts)

	w := perform(r, http.MethodGet, "/api/products?category=hats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hats", gotSlug)
	// An empty catalog still serializes as a JSON array.
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestHealthHandler(t *testing.T) {
	r := gin.New()
	r.GET("/api/health", NewHealthHandler(&stubPinger{}).Check)

	w := perform(r, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "sqlite", body["database"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	r := gin.New()
	r.GET("/api/health", NewHealthHandler(&stubPinger{err: errors.New("down")}).Check)

	w := perform(r, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}
