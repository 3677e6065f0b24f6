package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	PaymentStatusPending = "pending"

	AddressTypeShipping = "shipping"
	DefaultCountry      = "USA"

	TransactionTypeSale = "sale"
)

type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Product carries the joined category name/slug the catalog queries project.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	CategoryID    int64           `json:"category_id"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      *string         `json:"image_url"`
	Emoji         string          `json:"emoji"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	Featured      bool            `json:"featured"`
	CreatedAt     time.Time       `json:"created_at"`
	CategoryName  string          `json:"category_name"`
	CategorySlug  string          `json:"category_slug"`
}

type JerkyProduct struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Weight       string          `json:"weight"`
	ImageURL     string          `json:"image_url"`
	Status       string          `json:"status"`
	BadgeText    string          `json:"badge_text"`
	BadgeColor   *string         `json:"badge_color"`
	DisplayOrder int             `json:"display_order"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Customer struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Address struct {
	ID             int64  `json:"id"`
	CustomerID     int64  `json:"customer_id"`
	AddressType    string `json:"address_type"`
	StreetAddress  string `json:"street_address"`
	StreetAddress2 string `json:"street_address_2"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
}

type Order struct {
	ID                int64           `json:"id"`
	OrderNumber       string          `json:"order_number"`
	CustomerID        int64           `json:"customer_id"`
	ShippingAddressID int64           `json:"shipping_address_id"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"payment_status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// OrderItem is a denormalized snapshot of the product at purchase time, so
// historical orders stay immutable when the catalog changes.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InventoryTransaction is an append-only ledger row; it is never updated or
// deleted. stock_quantity on the product stays the authoritative level.
type InventoryTransaction struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	TransactionType string    `json:"transaction_type"`
	QuantityChange  int       `json:"quantity_change"`
	ReferenceID     int64     `json:"reference_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderDetail is the order-lookup projection: the order joined with the
// customer's identity fields plus its line items.
type OrderDetail struct {
	Order
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Items     []OrderItem `json:"items"`
}
