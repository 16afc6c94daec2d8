package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beautique/beautique-backend/pkg/storefront/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, server.Client())
}

func TestClient_ListProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		assert.Equal(t, "silk", r.URL.Query().Get("search"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [{"id": 1, "name": "Silk Maxi", "regular_price": 10000, "sale_price": 7000, "category": "Maxi"}],
			"total": 13,
			"page": 2,
			"limit": 12,
			"total_pages": 2
		}`))
	})

	state := catalog.FilterState{Search: "silk", Page: 2}
	page, err := c.ListProducts(context.Background(), state)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Silk Maxi", page.Items[0].Name)
	assert.Equal(t, 7000.0, page.Items[0].EffectivePrice())
	assert.Equal(t, int64(13), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestClient_FetchFeedsThePipeline(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [], "total": 0, "page": 1, "limit": 12, "total_pages": 1}`))
	})

	var fetch catalog.FetchFunc = c.Fetch
	page, err := fetch(context.Background(), catalog.FilterState{Category: catalog.CategoryMaxi, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, catalog.CategoryMaxi, page.State.Category)
}

func TestClient_GetProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"product": {"id": 7, "name": "Embroidered Gharara", "regular_price": 12000, "category": "Gharara"}}`))
	})

	product, err := c.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), product.ID)
	assert.Equal(t, "Embroidered Gharara", product.Name)
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "PRODUCT_NOT_FOUND", "message": "Product not found"}`))
	})

	_, err := c.GetProduct(context.Background(), 99)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", apiErr.Code)
}

func TestClient_GetBestsellers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/bestsellers", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products": [{"id": 1, "name": "Silk Maxi", "is_bestseller": true}], "count": 1}`))
	})

	products, err := c.GetBestsellers(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].IsBestseller)
}

func TestClient_CreateOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"message": "Order placed successfully",
			"order": {
				"order_id": "BQ-20260118-001",
				"customer_name": "Ayesha Khan",
				"total_amount": 14000,
				"payment_status": "pending",
				"order_status": "received",
				"items": [{"product_id": 1, "name": "Silk Maxi", "size": "M", "quantity": 2, "price": 7000}]
			}
		}`))
	})

	order, err := c.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName:  "Ayesha Khan",
		Phone:         "03132306429",
		Whatsapp:      "03132306429",
		Address:       "House 4, Street 9",
		City:          "Karachi",
		PaymentMethod: "easypaisa",
		Items:         []OrderItem{{ProductID: 1, Size: "M", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "BQ-20260118-001", order.OrderID)
	assert.Equal(t, 14000.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 7000.0, order.Items[0].Price)
}

func TestClient_TrackOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/track", r.URL.Path)
		assert.Equal(t, "BQ-20260118-001", r.URL.Query().Get("order_id"))
		assert.Equal(t, "03132306429", r.URL.Query().Get("phone"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order": {"order_id": "BQ-20260118-001", "order_status": "processing", "delivery_status": "not-started"}}`))
	})

	order, err := c.TrackOrder(context.Background(), "BQ-20260118-001", "03132306429")
	require.NoError(t, err)
	assert.Equal(t, "processing", order.OrderStatus)
}

func TestClient_TrackOrder_WrongPhone(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "ORDER_NOT_FOUND", "message": "No order matches that ID and phone number"}`))
	})

	_, err := c.TrackOrder(context.Background(), "BQ-20260118-001", "00000000000")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "ORDER_NOT_FOUND", apiErr.Code)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})

	_, err := c.GetProduct(context.Background(), 1)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}
