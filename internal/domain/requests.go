package domain

import "github.com/shopspring/decimal"

// OrderItemInput is one submitted line item. The wire keys mirror the cart
// payload the storefront sends (id/name/price/quantity).
type OrderItemInput struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type ShippingAddressInput struct {
	StreetAddress  string `json:"street_address"`
	StreetAddress2 string `json:"street_address_2"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
}

type PlaceOrderRequest struct {
	CustomerEmail   string                `json:"customer_email"`
	FirstName       string                `json:"first_name"`
	LastName        string                `json:"last_name"`
	Phone           string                `json:"phone"`
	Items           []OrderItemInput      `json:"items"`
	ShippingAddress *ShippingAddressInput `json:"shipping_address"`
}

// Validate checks the payload before any store access.
func (r *PlaceOrderRequest) Validate() error {
	if r.CustomerEmail == "" {
		return NewValidationError("missing required field: customer_email")
	}
	if len(r.Items) == 0 {
		return NewValidationError("order must contain at least one item")
	}
	for i, item := range r.Items {
		if item.ProductID == 0 {
			return NewValidationError("items[%d]: missing product id", i)
		}
		if item.Quantity <= 0 {
			return NewValidationError("items[%d]: quantity must be positive", i)
		}
		if item.Price.IsNegative() {
			return NewValidationError("items[%d]: price must not be negative", i)
		}
	}
	if r.ShippingAddress == nil {
		return NewValidationError("missing required field: shipping_address")
	}
	addr := r.ShippingAddress
	switch {
	case addr.StreetAddress == "":
		return NewValidationError("shipping_address: missing street_address")
	case addr.City == "":
		return NewValidationError("shipping_address: missing city")
	case addr.State == "":
		return NewValidationError("shipping_address: missing state")
	case addr.PostalCode == "":
		return NewValidationError("shipping_address: missing postal_code")
	}
	return nil
}

type SubscribeRequest struct {
	Email string `json:"email"`
}
