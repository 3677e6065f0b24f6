// Package service holds the business workflows between the HTTP handlers
// and the repositories. OrderService owns the one multi-statement workflow
// in the system: atomic order placement.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
	"github.com/tahoebearjerky/storefront-api/internal/repository"
)

type OrderService struct {
	repo         repository.OrderRepository
	pricing      domain.PricingPolicy
	logger       *zap.Logger
	tracer       trace.Tracer
	ordersPlaced metric.Int64Counter

	now func() time.Time
}

func NewOrderService(repo repository.OrderRepository, pricing domain.PricingPolicy, logger *zap.Logger) *OrderService {
	ordersPlaced, _ := otel.Meter("storefront-api").Int64Counter("orders_placed_total",
		metric.WithDescription("Orders successfully committed"))
	return &OrderService{
		repo:         repo,
		pricing:      pricing,
		logger:       logger,
		tracer:       otel.Tracer("storefront-api"),
		ordersPlaced: ordersPlaced,
		now:          time.Now,
	}
}

// PlaceOrder runs the order transaction: customer upsert, address insert,
// order insert, one item/stock/ledger triple per line, then commit. Any
// failure after BeginTx rolls the whole scope back — the deferred Rollback
// also covers caller cancellation mid-flight, and is a no-op after Commit.
// Validation happens first and never touches the store.
func (s *OrderService) PlaceOrder(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "place_order")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer_email", req.CustomerEmail),
		attribute.Int("item_count", len(req.Items)),
	)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, &domain.OrderCreationError{Err: err}
	}
	defer tx.Rollback()

	customerID, err := s.repo.UpsertCustomer(ctx, tx, req.CustomerEmail, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		return nil, s.abort(span, err)
	}

	addr := domain.Address{
		CustomerID:     customerID,
		AddressType:    domain.AddressTypeShipping,
		StreetAddress:  req.ShippingAddress.StreetAddress,
		StreetAddress2: req.ShippingAddress.StreetAddress2,
		City:           req.ShippingAddress.City,
		State:          req.ShippingAddress.State,
		PostalCode:     req.ShippingAddress.PostalCode,
		Country:        req.ShippingAddress.Country,
	}
	if addr.Country == "" {
		addr.Country = domain.DefaultCountry
	}
	addressID, err := s.repo.InsertAddress(ctx, tx, addr)
	if err != nil {
		return nil, s.abort(span, err)
	}

	totals := s.pricing.ComputeTotals(req.Items)
	order := &domain.Order{
		OrderNumber:       domain.NewOrderNumber(s.now(), customerID),
		CustomerID:        customerID,
		ShippingAddressID: addressID,
		Subtotal:          totals.Subtotal,
		Tax:               totals.Tax,
		ShippingCost:      totals.ShippingCost,
		Total:             totals.Total,
		Status:            domain.OrderStatusPending,
		PaymentStatus:     domain.PaymentStatusPending,
	}
	orderID, err := s.repo.InsertOrder(ctx, tx, order)
	if err != nil {
		return nil, s.abort(span, err)
	}

	for _, item := range req.Items {
		err = s.repo.InsertOrderItem(ctx, tx, domain.OrderItem{
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Subtotal:    domain.LineSubtotal(item),
		})
		if err != nil {
			return nil, s.abort(span, err)
		}
		if err = s.repo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return nil, s.abort(span, err)
		}
		err = s.repo.InsertInventoryTransaction(ctx, tx, domain.InventoryTransaction{
			ProductID:       item.ProductID,
			TransactionType: domain.TransactionTypeSale,
			QuantityChange:  -item.Quantity,
			ReferenceID:     orderID,
		})
		if err != nil {
			return nil, s.abort(span, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, s.abort(span, err)
	}

	s.ordersPlaced.Add(ctx, 1)
	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.Int64("customer_id", customerID),
		zap.String("total", order.Total.String()))

	// Re-read the committed row so the response carries generated fields.
	committed, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, &domain.OrderCreationError{Err: err}
	}
	return committed, nil
}

func (s *OrderService) abort(span trace.Span, err error) error {
	span.RecordError(err)
	s.logger.Error("order transaction rolled back", zap.Error(err))
	return &domain.OrderCreationError{Err: err}
}

// GetOrder returns the order with its customer identity fields and every
// line item, in insertion order.
func (s *OrderService) GetOrder(ctx context.Context, orderNumber string) (*domain.OrderDetail, error) {
	detail, err := s.repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListOrderItems(ctx, detail.ID)
	if err != nil {
		return nil, err
	}
	detail.Items = items
	return detail, nil
}
