// Package client is a small HTTP client for the public storefront API. It
// covers the endpoints a shopper-facing frontend needs: browsing the
// catalog, placing orders and tracking them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/beautique/beautique-backend/pkg/storefront/catalog"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the API, decoded from the standard
// error payload.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the storefront API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL, e.g. "https://api.beautique.pk".
// Pass nil to use a default HTTP client with a 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}
}

// ProductPage is one page of catalog results as returned by the API.
type ProductPage struct {
	Items      []catalog.Product `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ListProducts fetches a catalog page for the given filter state. Size and
// color selections are applied locally by the caller; the API ignores them.
func (c *Client) ListProducts(ctx context.Context, state catalog.FilterState) (ProductPage, error) {
	var page ProductPage
	err := c.get(ctx, "/api/v1/products", catalog.EncodeQuery(state), &page)
	return page, err
}

// Fetch adapts ListProducts to the catalog pipeline.
func (c *Client) Fetch(ctx context.Context, state catalog.FilterState) (catalog.Page, error) {
	page, err := c.ListProducts(ctx, state)
	if err != nil {
		return catalog.Page{}, err
	}
	return catalog.Page{
		Items:      page.Items,
		Total:      int(page.Total),
		Page:       page.Page,
		PageSize:   page.Limit,
		TotalPages: page.TotalPages,
		State:      state.WithPage(page.Page),
	}, nil
}

// GetProduct fetches a single active product.
func (c *Client) GetProduct(ctx context.Context, id uint) (catalog.Product, error) {
	var payload struct {
		Product catalog.Product `json:"product"`
	}
	err := c.get(ctx, fmt.Sprintf("/api/v1/products/%d", id), nil, &payload)
	return payload.Product, err
}

// GetBestsellers fetches the bestseller shelf. A limit of zero uses the
// server default.
func (c *Client) GetBestsellers(ctx context.Context, limit int) ([]catalog.Product, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var payload struct {
		Products []catalog.Product `json:"products"`
	}
	err := c.get(ctx, "/api/v1/products/bestsellers", query, &payload)
	return payload.Products, err
}

// OrderItem is one line of an order being placed.
type OrderItem struct {
	ProductID uint   `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the checkout payload. Prices are not included; the
// server prices every item from the live catalog.
type CreateOrderRequest struct {
	CustomerName  string      `json:"customer_name"`
	Phone         string      `json:"phone"`
	Whatsapp      string      `json:"whatsapp"`
	Email         string      `json:"email,omitempty"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	Country       string      `json:"country,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
}

// OrderLine is one priced line of a placed order.
type OrderLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

// Order is the API view of a placed order.
type Order struct {
	OrderID           string      `json:"order_id"`
	CustomerName      string      `json:"customer_name"`
	Phone             string      `json:"phone"`
	Address           string      `json:"address"`
	City              string      `json:"city"`
	Country           string      `json:"country"`
	Items             []OrderLine `json:"items"`
	TotalAmount       float64     `json:"total_amount"`
	PaymentMethod     string      `json:"payment_method"`
	PaymentStatus     string      `json:"payment_status"`
	OrderStatus       string      `json:"order_status"`
	DeliveryStatus    string      `json:"delivery_status"`
	EstimatedDelivery string      `json:"estimated_delivery,omitempty"`
	TrackingNotes     string      `json:"tracking_notes,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}

// CreateOrder places an order and returns the server's priced view of it,
// including the assigned public order ID.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	var payload struct {
		Order Order `json:"order"`
	}
	err := c.post(ctx, "/api/v1/orders", req, &payload)
	return payload.Order, err
}

// TrackOrder looks up an order by its public ID and the phone number it was
// placed with.
func (c *Client) TrackOrder(ctx context.Context, orderID, phone string) (Order, error) {
	query := url.Values{}
	query.Set("order_id", orderID)
	query.Set("phone", phone)

	var payload struct {
		Order Order `json:"order"`
	}
	err := c.get(ctx, "/api/v1/orders/track", query, &payload)
	return payload.Order, err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
