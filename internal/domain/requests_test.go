package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlaceOrderRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		CustomerEmail: "a@b.com",
		Items: []OrderItemInput{
			{ProductID: 1, Name: "Classic Bear Tee", Price: decimal.RequireFromString("29.99"), Quantity: 2},
		},
		ShippingAddress: &ShippingAddressInput{
			StreetAddress: "1 Main St",
			City:          "Truckee",
			State:         "CA",
			PostalCode:    "96161",
		},
	}
}

func TestPlaceOrderRequestValidate(t *testing.T) {
	require.NoError(t, validPlaceOrderRequest().Validate())

	cases := []struct {
		name    string
		mutate  func(*PlaceOrderRequest)
		message string
	}{
		{"missing email", func(r *PlaceOrderRequest) { r.CustomerEmail = "" }, "customer_email"},
		{"nil items", func(r *PlaceOrderRequest) { r.Items = nil }, "at least one item"},
		{"empty items", func(r *PlaceOrderRequest) { r.Items = []OrderItemInput{} }, "at least one item"},
		{"missing product id", func(r *PlaceOrderRequest) { r.Items[0].ProductID = 0 }, "product id"},
		{"zero quantity", func(r *PlaceOrderRequest) { r.Items[0].Quantity = 0 }, "quantity"},
		{"negative quantity", func(r *PlaceOrderRequest) { r.Items[0].Quantity = -1 }, "quantity"},
		{"negative price", func(r *PlaceOrderRequest) { r.Items[0].Price = decimal.RequireFromString("-1") }, "price"},
		{"nil address", func(r *PlaceOrderRequest) { r.ShippingAddress = nil }, "shipping_address"},
		{"missing street", func(r *PlaceOrderRequest) { r.ShippingAddress.StreetAddress = "" }, "street_address"},
		{"missing city", func(r *PlaceOrderRequest) { r.ShippingAddress.City = "" }, "city"},
		{"missing state", func(r *PlaceOrderRequest) { r.ShippingAddress.State = "" }, "state"},
		{"missing postal code", func(r *PlaceOrderRequest) { r.ShippingAddress.PostalCode = "" }, "postal_code"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validPlaceOrderRequest()
			tc.mutate(req)

			err := req.Validate()

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Message, tc.message)
		})
	}
}

func TestValidateAllowsOptionalFields(t *testing.T) {
	req := validPlaceOrderRequest()
	req.FirstName = ""
	req.LastName = ""
	req.Phone = ""
	req.ShippingAddress.StreetAddress2 = ""
	req.ShippingAddress.Country = ""

	assert.NoError(t, req.Validate())
}

func TestValidateAllowsFreeItems(t *testing.T) {
	req := validPlaceOrderRequest()
	req.Items[0].Price = decimal.Zero

	assert.NoError(t, req.Validate())
}
