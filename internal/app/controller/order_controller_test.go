package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/internal/app/service"
	"github.com/beautique/beautique-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, repository.ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderService := service.NewOrderService(orderRepo, productRepo, nil, "BQ")
	exportService := service.NewExportService(orderRepo)
	orderController := NewOrderController(orderService, exportService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, productRepo
}

func seedOrderProduct(t *testing.T, repo repository.ProductRepository) uint {
	t.Helper()

	sale := 7000.0
	product := &model.Product{
		Name:         "Silk Maxi",
		RegularPrice: 10000,
		SalePrice:    &sale,
		Category:     model.CategoryMaxi,
		Sizes:        pq.StringArray{"M", "L"},
		Colors:       pq.StringArray{"Navy"},
		IsActive:     true,
	}
	require.NoError(t, repo.Create(product))
	return product.ID
}

func placeOrder(t *testing.T, router *gin.Engine, productID uint) map[string]interface{} {
	t.Helper()

	payload, _ := json.Marshal(map[string]interface{}{
		"customer_name":  "Ayesha Khan",
		"phone":          "0313-2306429",
		"address":        "House 12, Street 4",
		"city":           "Karachi",
		"payment_method": "easypaisa",
		"items": []map[string]interface{}{
			{"product_id": productID, "size": "M", "color": "Navy", "quantity": 2},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response["order"].(map[string]interface{})
}

func TestOrderController_CreateOrder(t *testing.T) {
	controller, router, productRepo := setupOrderControllerTest(t)
	productID := seedOrderProduct(t, productRepo)

	router.POST("/orders", controller.CreateOrder)

	order := placeOrder(t, router, productID)

	assert.Regexp(t, `^BQ-\d{8}-\d{3}$`, order["order_id"])
	assert.Equal(t, 14000.0, order["total_amount"])
	assert.Equal(t, "pending", order["payment_status"])
	assert.Equal(t, "received", order["order_status"])
}

func TestOrderController_CreateOrder_UnknownPaymentMethod(t *testing.T) {
	controller, router, productRepo := setupOrderControllerTest(t)
	productID := seedOrderProduct(t, productRepo)

	router.POST("/orders", controller.CreateOrder)

	payload, _ := json.Marshal(map[string]interface{}{
		"customer_name":  "Ayesha Khan",
		"phone":          "0313-2306429",
		"address":        "House 12",
		"city":           "Karachi",
		"payment_method": "paypal",
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": 1},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_INVALID_PAYMENT")
}

func TestOrderController_CreateOrder_MissingItems(t *testing.T) {
	controller, router, _ := setupOrderControllerTest(t)

	router.POST("/orders", controller.CreateOrder)

	payload, _ := json.Marshal(map[string]interface{}{
		"customer_name":  "Ayesha Khan",
		"phone":          "0313-2306429",
		"address":        "House 12",
		"city":           "Karachi",
		"payment_method": "easypaisa",
		"items":          []map[string]interface{}{},
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_TrackOrder(t *testing.T) {
	controller, router, productRepo := setupOrderControllerTest(t)
	productID := seedOrderProduct(t, productRepo)

	router.POST("/orders", controller.CreateOrder)
	router.GET("/orders/track", controller.TrackOrder)

	order := placeOrder(t, router, productID)
	orderID := order["order_id"].(string)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/orders/track?order_id=%s&phone=%s", orderID, "03132306429"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), orderID)
}

func TestOrderController_TrackOrder_WrongPhone(t *testing.T) {
	controller, router, productRepo := setupOrderControllerTest(t)
	productID := seedOrderProduct(t, productRepo)

	router.POST("/orders", controller.CreateOrder)
	router.GET("/orders/track", controller.TrackOrder)

	order := placeOrder(t, router, productID)
	orderID := order["order_id"].(string)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/orders/track?order_id=%s&phone=%s", orderID, "03000000000"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Wrong phone is indistinguishable from an unknown order
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_NOT_FOUND")
}

func TestOrderController_AdminUpdateOrderStatus(t *testing.T) {
	controller, router, productRepo := setupOrderControllerTest(t)
	productID := seedOrderProduct(t, productRepo)

	router.POST("/orders", controller.CreateOrder)
	router.PATCH("/admin/orders/:id/status", controller.AdminUpdateOrderStatus)

	order := placeOrder(t, router, productID)
	id := uint(order["id"].(float64))

	payload, _ := json.Marshal(map[string]interface{}{
		"payment_status": "verified",
		"order_status":   "processing",
	})

	req := httptest.NewRequest(http.MethodPatch,
		fmt.Sprintf("/admin/orders/%d/status", id), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	updated := response["order"].(map[string]interface{})
	assert.Equal(t, "verified", updated["payment_status"])
	assert.Equal(t, "processing", updated["order_status"])
}

func TestOrderController_AdminExportOrders(t *testing.T) {
	controller, router, productRepo := setupOrderControllerTest(t)
	productID := seedOrderProduct(t, productRepo)

	router.POST("/orders", controller.CreateOrder)
	router.GET("/admin/orders/export", controller.AdminExportOrders)

	placeOrder(t, router, productID)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders-")
	assert.NotEmpty(t, w.Body.Bytes())
}
