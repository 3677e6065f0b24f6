package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PricingPolicy is the configured pricing ruleset: a flat tax rate and a
// free-shipping threshold. Constructed once from config, never read from the
// environment by the core.
type PricingPolicy struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingCost      decimal.Decimal
}

// NewPricingPolicy parses the configured rates. The values travel as strings
// so they reach decimal arithmetic without a float detour.
func NewPricingPolicy(taxRate, freeShippingThreshold, flatShippingCost string) (PricingPolicy, error) {
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return PricingPolicy{}, fmt.Errorf("parse tax rate: %w", err)
	}
	threshold, err := decimal.NewFromString(freeShippingThreshold)
	if err != nil {
		return PricingPolicy{}, fmt.Errorf("parse free shipping threshold: %w", err)
	}
	flat, err := decimal.NewFromString(flatShippingCost)
	if err != nil {
		return PricingPolicy{}, fmt.Errorf("parse flat shipping cost: %w", err)
	}
	return PricingPolicy{TaxRate: rate, FreeShippingThreshold: threshold, FlatShippingCost: flat}, nil
}

type OrderTotals struct {
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// ComputeTotals derives the monetary fields from the submitted line items:
// subtotal = sum of price*quantity, tax = subtotal*rate rounded to cents,
// shipping is waived only when the subtotal strictly exceeds the threshold.
func (p PricingPolicy) ComputeTotals(items []OrderItemInput) OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := subtotal.Mul(p.TaxRate).Round(2)

	shipping := p.FlatShippingCost
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return OrderTotals{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        subtotal.Add(tax).Add(shipping),
	}
}

// LineSubtotal is the stored snapshot value for one line item.
func LineSubtotal(item OrderItemInput) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// NewOrderNumber builds the human-readable order number
// TBJ-YYYYMMDD-NNNN (UTC date, zero-padded customer id). The same customer
// ordering twice on one calendar day produces the same number; the column is
// deliberately not unique, matching the storefront's historical behavior.
func NewOrderNumber(now time.Time, customerID int64) string {
	return fmt.Sprintf("TBJ-%s-%04d", now.UTC().Format("20060102"), customerID)
}
