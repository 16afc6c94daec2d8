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
	"gorm.io/gorm"
)

func setupProductControllerTest(t *testing.T) (*ProductController, *gin.Engine, repository.ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	productService := service.NewProductService(productRepo)
	productController := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return productController, router, productRepo, testDB
}

func floatPtr(v float64) *float64 {
	return &v
}

func createCatalog(t *testing.T, repo repository.ProductRepository) {
	t.Helper()

	products := []model.Product{
		{
			Name:         "Silk Maxi",
			Description:  "Flowing silk maxi dress",
			RegularPrice: 10000,
			SalePrice:    floatPtr(7000),
			Category:     model.CategoryMaxi,
			Sizes:        pq.StringArray{"M", "L"},
			IsActive:     true,
			IsBestseller: true,
		},
		{
			Name:         "Cotton Long Shirt",
			RegularPrice: 5000,
			Category:     model.CategoryLongShirt,
			IsActive:     true,
		},
		{
			Name:         "Hidden Gharara",
			RegularPrice: 9000,
			Category:     model.CategoryGharara,
			IsActive:     false,
		},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
}

func TestProductController_ListProducts(t *testing.T) {
	controller, router, repo, _ := setupProductControllerTest(t)
	createCatalog(t, repo)

	router.GET("/products", controller.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	items := response["items"].([]interface{})
	assert.Len(t, items, 2)
	assert.Equal(t, float64(2), response["total"])
	assert.Equal(t, float64(1), response["page"])
}

func TestProductController_ListProducts_FilterQuery(t *testing.T) {
	controller, router, repo, _ := setupProductControllerTest(t)
	createCatalog(t, repo)

	router.GET("/products", controller.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?category=Maxi&minPrice=6000&maxPrice=12000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	items := response["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Silk Maxi", first["name"])
}

func TestProductController_ListProducts_InvalidPriceRange(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.GET("/products", controller.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?minPrice=9000&maxPrice=100", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_RANGE")
}

func TestProductController_ListProducts_UnknownCategory(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.GET("/products", controller.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?category=Hoodie", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_GetBestsellers(t *testing.T) {
	controller, router, repo, _ := setupProductControllerTest(t)
	createCatalog(t, repo)

	router.GET("/products/bestsellers", controller.GetBestsellers)

	req := httptest.NewRequest(http.MethodGet, "/products/bestsellers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestProductController_GetProductByID_InactiveHidden(t *testing.T) {
	controller, router, repo, testDB := setupProductControllerTest(t)
	createCatalog(t, repo)

	var hidden model.Product
	require.NoError(t, testDB.Where("is_active = ?", false).First(&hidden).Error)

	router.GET("/products/:id", controller.GetProductByID)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", hidden.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
}

func TestProductController_AdminCreateProduct(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.POST("/admin/products", controller.AdminCreateProduct)

	body := map[string]interface{}{
		"name":          "Velvet Lehanga Choli",
		"regular_price": 18000,
		"sale_price":    15000,
		"category":      "Lehanga Choli",
		"sizes":         []string{"S", "M", "L"},
		"colors":        []string{"Maroon"},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	product := response["product"].(map[string]interface{})
	assert.Equal(t, "Velvet Lehanga Choli", product["name"])
	assert.NotZero(t, product["id"])
}

func TestProductController_AdminCreateProduct_BadCategory(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.POST("/admin/products", controller.AdminCreateProduct)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":          "Mystery Garment",
		"regular_price": 1000,
		"category":      "Hoodie",
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_INVALID_CATEGORY")
}

func TestProductController_AdminDeleteProduct_NotFound(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.DELETE("/admin/products/:id", controller.AdminDeleteProduct)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
