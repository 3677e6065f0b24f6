// smoke drives a running API instance end to end: health, catalog, order
// placement, order lookup, newsletter. It exits non-zero on the first
// unexpected response, so it doubles as a deploy check.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

type orderResponse struct {
	Success bool `json:"success"`
	Order   struct {
		OrderNumber string `json:"order_number"`
		Subtotal    string `json:"subtotal"`
		Tax         string `json:"tax"`
		Total       string `json:"total"`
	} `json:"order"`
	Message string `json:"message"`
}

type orderDetail struct {
	OrderNumber string            `json:"order_number"`
	Email       string            `json:"email"`
	Items       []json.RawMessage `json:"items"`
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:5000", "API base URL")
	flag.Parse()

	client := resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(10 * time.Second)

	check("health", func() error {
		resp, err := client.R().Get("/api/health")
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil
	})

	check("list products", func() error {
		var products []map[string]any
		resp, err := client.R().SetResult(&products).Get("/api/products")
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("status %d", resp.StatusCode())
		}
		if len(products) == 0 {
			return fmt.Errorf("no products returned; run dbinit first")
		}
		return nil
	})

	var placed orderResponse
	check("place order", func() error {
		payload := map[string]any{
			"customer_email": "smoke@tahoebearjerky.com",
			"first_name":     "Smoke",
			"last_name":      "Test",
			"items": []map[string]any{
				{"id": 1, "name": "Classic Bear Tee", "price": 29.99, "quantity": 2},
			},
			"shipping_address": map[string]any{
				"street_address": "1 Main St",
				"city":           "Truckee",
				"state":          "CA",
				"postal_code":    "96161",
			},
		}
		resp, err := client.R().SetBody(payload).SetResult(&placed).Post("/api/orders")
		if err != nil {
			return err
		}
		if resp.StatusCode() != 201 {
			return fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String())
		}
		if !placed.Success || placed.Order.OrderNumber == "" {
			return fmt.Errorf("unexpected body: %s", resp.String())
		}
		return nil
	})

	check("fetch order", func() error {
		var detail orderDetail
		resp, err := client.R().SetResult(&detail).
			Get("/api/orders/" + placed.Order.OrderNumber)
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String())
		}
		if len(detail.Items) != 1 {
			return fmt.Errorf("expected 1 item, got %d", len(detail.Items))
		}
		return nil
	})

	check("subscribe newsletter", func() error {
		resp, err := client.R().
			SetBody(map[string]string{"email": "smoke@tahoebearjerky.com"}).
			Post("/api/newsletter/subscribe")
		if err != nil {
			return err
		}
		if resp.StatusCode() != 201 {
			return fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil
	})

	log.Printf("✅ smoke passed (order %s, total %s)", placed.Order.OrderNumber, placed.Order.Total)
}

func check(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("❌ %s: %v", name, err)
		os.Exit(1)
	}
	log.Printf("✅ %s", name)
}
