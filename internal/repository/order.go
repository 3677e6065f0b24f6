package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
	"github.com/tahoebearjerky/storefront-api/internal/store"
)

// OrderRepository holds the write operations of the order transaction plus
// the lookup reads. Every write takes the caller's transactional scope; the
// repository never commits or rolls back on its own.
type OrderRepository interface {
	BeginTx(ctx context.Context) (store.Tx, error)

	// UpsertCustomer inserts the customer or, when the email already
	// exists, leaves the stored row untouched. Either way it returns the id
	// owning the email. Atomic, so concurrent submissions of the same email
	// cannot race a check-then-insert.
	UpsertCustomer(ctx context.Context, tx store.Tx, email, firstName, lastName, phone string) (int64, error)

	InsertAddress(ctx context.Context, tx store.Tx, addr domain.Address) (int64, error)
	InsertOrder(ctx context.Context, tx store.Tx, order *domain.Order) (int64, error)
	InsertOrderItem(ctx context.Context, tx store.Tx, item domain.OrderItem) error

	// DecrementStock relies on the store's atomic read-modify-write; no
	// application-level lock, and no floor at zero.
	DecrementStock(ctx context.Context, tx store.Tx, productID int64, quantity int) error

	InsertInventoryTransaction(ctx context.Context, tx store.Tx, itx domain.InventoryTransaction) error

	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderDetail, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
}

type orderRepository struct {
	s *store.Store
}

func NewOrderRepository(s *store.Store) OrderRepository {
	return &orderRepository{s: s}
}

func (r *orderRepository) BeginTx(ctx context.Context) (store.Tx, error) {
	return r.s.BeginTx(ctx)
}

func (r *orderRepository) UpsertCustomer(ctx context.Context, tx store.Tx, email, firstName, lastName, phone string) (int64, error) {
	id, err := r.s.Dialect().UpsertReturningID(ctx, tx,
		"customers", "email",
		[]string{"email", "first_name", "last_name", "phone"},
		email, firstName, lastName, phone)
	if err != nil {
		return 0, fmt.Errorf("upsert customer: %w", err)
	}
	return id, nil
}

func (r *orderRepository) InsertAddress(ctx context.Context, tx store.Tx, addr domain.Address) (int64, error) {
	id, err := r.s.Dialect().InsertReturningID(ctx, tx, `
		INSERT INTO addresses
		(customer_id, address_type, street_address, street_address_2, city, state, postal_code, country)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		addr.CustomerID, addr.AddressType, addr.StreetAddress, addr.StreetAddress2,
		addr.City, addr.State, addr.PostalCode, addr.Country)
	if err != nil {
		return 0, fmt.Errorf("insert address: %w", err)
	}
	return id, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, tx store.Tx, order *domain.Order) (int64, error) {
	id, err := r.s.Dialect().InsertReturningID(ctx, tx, `
		INSERT INTO orders
		(order_number, customer_id, shipping_address_id, subtotal, tax, shipping_cost, total, status, payment_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.OrderNumber, order.CustomerID, order.ShippingAddressID,
		order.Subtotal, order.Tax, order.ShippingCost, order.Total,
		order.Status, order.PaymentStatus)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

func (r *orderRepository) InsertOrderItem(ctx context.Context, tx store.Tx, item domain.OrderItem) error {
	_, err := tx.ExecContext(ctx, r.s.Dialect().Rebind(`
		INSERT INTO order_items
		(order_id, product_id, product_name, quantity, unit_price, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)`),
		item.OrderID, item.ProductID, item.ProductName, item.Quantity,
		item.UnitPrice, item.Subtotal)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *orderRepository) DecrementStock(ctx context.Context, tx store.Tx, productID int64, quantity int) error {
	_, err := tx.ExecContext(ctx, r.s.Dialect().Rebind(`
		UPDATE products SET stock_quantity = stock_quantity - ?
		WHERE id = ?`),
		quantity, productID)
	if err != nil {
		return fmt.Errorf("decrement stock for product %d: %w", productID, err)
	}
	return nil
}

func (r *orderRepository) InsertInventoryTransaction(ctx context.Context, tx store.Tx, itx domain.InventoryTransaction) error {
	_, err := tx.ExecContext(ctx, r.s.Dialect().Rebind(`
		INSERT INTO inventory_transactions
		(product_id, transaction_type, quantity_change, reference_id)
		VALUES (?, ?, ?, ?)`),
		itx.ProductID, itx.TransactionType, itx.QuantityChange, itx.ReferenceID)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

const orderColumns = `
	id, order_number, customer_id, shipping_address_id, subtotal, tax,
	shipping_cost, total, status, payment_status, created_at`

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.s.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders WHERE id = ?`, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.ShippingAddressID,
		&o.Subtotal, &o.Tax, &o.ShippingCost, &o.Total,
		&o.Status, &o.PaymentStatus, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

func (r *orderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderDetail, error) {
	var d domain.OrderDetail
	err := r.s.QueryRowContext(ctx, `
		SELECT o.id, o.order_number, o.customer_id, o.shipping_address_id,
		       o.subtotal, o.tax, o.shipping_cost, o.total, o.status,
		       o.payment_status, o.created_at,
		       c.email, c.first_name, c.last_name
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE o.order_number = ?`, orderNumber).Scan(
		&d.ID, &d.OrderNumber, &d.CustomerID, &d.ShippingAddressID,
		&d.Subtotal, &d.Tax, &d.ShippingCost, &d.Total, &d.Status,
		&d.PaymentStatus, &d.CreatedAt,
		&d.Email, &d.FirstName, &d.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderNumber, err)
	}
	return &d, nil
}

func (r *orderRepository) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.s.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
