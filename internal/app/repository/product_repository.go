package repository

import (
	"fmt"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductFilter struct {
	Category        *model.ProductCategory
	Search          string
	MinPrice        *float64
	MaxPrice        *float64
	BestsellerOnly  bool
	IncludeInactive bool // admin listings see inactive products too
	Limit           int
	Offset          int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	CountWithFilter(filter ProductFilter) (int64, error)
	FindByID(id uint) (*model.Product, error)
	FindActiveByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	BulkCreate(products []model.Product, batchSize int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":     product.Name,
			"category": product.Category,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) filteredQuery(filter ProductFilter) *gorm.DB {
	query := r.db.Model(&model.Product{})

	if !filter.IncludeInactive {
		query = query.Where("products.is_active = ?", true)
	}

	if filter.Category != nil {
		query = query.Where("products.category = ?", *filter.Category)
	}

	if filter.Search != "" {
		// Case-insensitive on every dialect; Postgres LIKE alone is not
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("LOWER(products.name) LIKE LOWER(?) OR LOWER(products.description) LIKE LOWER(?)", like, like)
	}

	// Price bounds apply to the price the shopper actually pays
	effectivePrice := "CASE WHEN products.sale_price IS NOT NULL AND products.sale_price < products.regular_price THEN products.sale_price ELSE products.regular_price END"
	if filter.MinPrice != nil {
		query = query.Where(effectivePrice+" >= ?", *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		query = query.Where(effectivePrice+" <= ?", *filter.MaxPrice)
	}

	if filter.BestsellerOnly {
		query = query.Where("products.is_bestseller = ?", true)
	}

	return query
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category":   filter.Category,
		"search":     filter.Search,
		"min_price":  filter.MinPrice,
		"max_price":  filter.MaxPrice,
		"bestseller": filter.BestsellerOnly,
		"limit":      filter.Limit,
		"offset":     filter.Offset,
	})

	query := r.filteredQuery(filter).Order("products.created_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category": filter.Category,
			"search":   filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) CountWithFilter(filter ProductFilter) (int64, error) {
	var count int64
	if err := r.filteredQuery(filter).Count(&count).Error; err != nil {
		logger.Error("Failed to count products with filter", err, map[string]interface{}{
			"category": filter.Category,
			"search":   filter.Search,
		})
		return 0, err
	}
	return count, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) FindActiveByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Where("is_active = ?", true).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
		})
		return err
	}

	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Info("Bulk creating products", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}
