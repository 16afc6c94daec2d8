package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/service"
	apperrors "github.com/beautique/beautique-backend/internal/errors"
	"github.com/beautique/beautique-backend/internal/middleware"
	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Name         string                `json:"name" binding:"required"`
	Description  string                `json:"description"`
	RegularPrice float64               `json:"regular_price" binding:"required,gt=0"`
	SalePrice    *float64              `json:"sale_price"`
	Category     model.ProductCategory `json:"category" binding:"required"`
	Sizes        []string              `json:"sizes"`
	Colors       []string              `json:"colors"`
	Images       []string              `json:"images"`
	IsBestseller bool                  `json:"is_bestseller"`
	IsActive     *bool                 `json:"is_active"`
}

func validCategory(c model.ProductCategory) bool {
	switch c {
	case model.CategoryMaxi, model.CategoryLehangaCholi, model.CategoryLongShirt,
		model.CategoryShalwarKameez, model.CategoryGharara:
		return true
	}
	return false
}

func parseListParams(c *gin.Context, includeInactive bool) (service.ListProductsParams, error) {
	params := service.ListProductsParams{
		Search:          c.Query("search"),
		IncludeInactive: includeInactive,
	}

	if category := c.Query("category"); category != "" {
		cat := model.ProductCategory(category)
		if !validCategory(cat) {
			return params, errors.New("unknown category")
		}
		params.Category = &cat
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		v, err := strconv.ParseFloat(minPrice, 64)
		if err != nil || v < 0 {
			return params, errors.New("invalid minPrice")
		}
		params.MinPrice = &v
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		v, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil || v < 0 {
			return params, errors.New("invalid maxPrice")
		}
		params.MaxPrice = &v
	}
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return params, errors.New("minPrice exceeds maxPrice")
	}

	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	return params, nil
}

// ListProducts returns the filtered, paginated catalog
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	params, err := parseListParams(c, false)
	if err != nil {
		log.Warn("Invalid product list query", map[string]interface{}{
			"error": err.Error(),
			"query": c.Request.URL.RawQuery,
		})
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidRange, err.Error())
		return
	}

	page, err := ctrl.productService.ListProducts(params)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetBestsellers returns the bestseller shelf
// GET /api/v1/products/bestsellers
func (ctrl *ProductController) GetBestsellers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	products, err := ctrl.productService.GetBestsellers(limit)
	if err != nil {
		log.Error("Failed to fetch bestsellers", err, nil)
		apperrors.InternalError(c, "Failed to fetch bestsellers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidID, "Invalid product ID")
		return 0, false
	}
	return uint(id), true
}

// GetProductByID returns a single active product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// AdminListProducts returns the catalog including inactive products
// GET /api/v1/admin/products
func (ctrl *ProductController) AdminListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	params, err := parseListParams(c, true)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidRange, err.Error())
		return
	}

	page, err := ctrl.productService.ListProducts(params)
	if err != nil {
		log.Error("Failed to list products for admin", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, page)
}

// AdminGetProduct returns any product regardless of its active flag
// GET /api/v1/admin/products/:id
func (ctrl *ProductController) AdminGetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByIDAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product for admin", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

func (req *ProductRequest) toModel(id uint) *model.Product {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &model.Product{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		RegularPrice: req.RegularPrice,
		SalePrice:    req.SalePrice,
		Category:     req.Category,
		Sizes:        pq.StringArray(req.Sizes),
		Colors:       pq.StringArray(req.Colors),
		Images:       pq.StringArray(req.Images),
		IsBestseller: req.IsBestseller,
		IsActive:     isActive,
	}
}

func bindProductRequest(c *gin.Context, log *logger.Logger) (*ProductRequest, bool) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidInput, err.Error())
		return nil, false
	}
	if !validCategory(req.Category) {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ProductInvalidCategory, "Unknown product category")
		return nil, false
	}
	if req.SalePrice != nil && *req.SalePrice <= 0 {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ProductInvalidPrice, "Sale price must be positive")
		return nil, false
	}
	return &req, true
}

// AdminCreateProduct creates a new product
// POST /api/v1/admin/products
func (ctrl *ProductController) AdminCreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	req, ok := bindProductRequest(c, log)
	if !ok {
		return
	}

	product := req.toModel(0)
	if err := ctrl.productService.CreateProduct(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// AdminUpdateProduct replaces a product
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) AdminUpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	req, ok := bindProductRequest(c, log)
	if !ok {
		return
	}

	product := req.toModel(id)
	if err := ctrl.productService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to update product")
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// AdminDeleteProduct soft-deletes a product
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) AdminDeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

type AppendImagesRequest struct {
	Images []string `json:"images" binding:"required,min=1,dive,url"`
}

// AdminAppendProductImages attaches uploaded image URLs to a product,
// typically after a presigned S3 upload completes
// POST /api/v1/admin/products/:id/images
func (ctrl *ProductController) AdminAppendProductImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AppendImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.AppendProductImages(id, req.Images)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to append product images", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to update product images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Images added successfully",
		"product": product,
	})
}
