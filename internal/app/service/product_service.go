package service

import (
	"errors"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const (
	DefaultPageSize    = 12
	MaxPageSize        = 50
	MaxBestsellerLimit = 20
)

// ProductPage is a paginated product listing
type ProductPage struct {
	Items      []model.Product `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type ListProductsParams struct {
	Category        *model.ProductCategory
	Search          string
	MinPrice        *float64
	MaxPrice        *float64
	Page            int
	Limit           int
	IncludeInactive bool
}

type ProductService interface {
	ListProducts(params ListProductsParams) (*ProductPage, error)
	GetBestsellers(limit int) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductByIDAdmin(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	AppendProductImages(id uint, urls []string) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (s *productService) ListProducts(params ListProductsParams) (*ProductPage, error) {
	page, limit := normalizePagination(params.Page, params.Limit)

	logger.Debug("Listing products", map[string]interface{}{
		"category": params.Category,
		"search":   params.Search,
		"page":     page,
		"limit":    limit,
	})

	filter := repository.ProductFilter{
		Category:        params.Category,
		Search:          params.Search,
		MinPrice:        params.MinPrice,
		MaxPrice:        params.MaxPrice,
		IncludeInactive: params.IncludeInactive,
	}

	total, err := s.productRepo.CountWithFilter(filter)
	if err != nil {
		logger.Error("Failed to count products", err, nil)
		return nil, err
	}

	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, err
	}

	logger.Info("Products listed successfully", map[string]interface{}{
		"count": len(products),
		"total": total,
		"page":  page,
	})

	return &ProductPage{
		Items:      products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *productService) GetBestsellers(limit int) ([]model.Product, error) {
	if limit < 1 || limit > MaxBestsellerLimit {
		limit = 10
	}

	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		BestsellerOnly: true,
		Limit:          limit,
	})
	if err != nil {
		logger.Error("Failed to fetch bestsellers", err, nil)
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

// GetProductByIDAdmin returns the product regardless of its active flag.
func (s *productService) GetProductByIDAdmin(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})
	return s.productRepo.Create(product)
}

func (s *productService) UpdateProduct(product *model.Product) error {
	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	// Preserve creation metadata across full updates
	product.CreatedAt = existing.CreatedAt

	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return s.productRepo.Update(product)
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})
	return s.productRepo.Delete(id)
}

func (s *productService) AppendProductImages(id uint, urls []string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Images = append(product.Images, urls...)
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to append product images", err, map[string]interface{}{
			"product_id": id,
			"new_images": len(urls),
		})
		return nil, err
	}
	return product, nil
}
