package repository

import (
	"testing"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/db"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewProductRepository(testDB), testDB
}

func floatPtr(v float64) *float64 {
	return &v
}

func categoryPtr(c model.ProductCategory) *model.ProductCategory {
	return &c
}

func seedProducts(t *testing.T, repo ProductRepository) {
	t.Helper()

	products := []model.Product{
		{
			Name:         "Embroidered Gharara",
			Description:  "Hand embroidered festive gharara",
			RegularPrice: 12000,
			Category:     model.CategoryGharara,
			Sizes:        pq.StringArray{"S", "M"},
			Colors:       pq.StringArray{"Red"},
			IsActive:     true,
		},
		{
			Name:         "Silk Maxi",
			Description:  "Flowing silk maxi dress",
			RegularPrice: 10000,
			SalePrice:    floatPtr(7000),
			Category:     model.CategoryMaxi,
			Sizes:        pq.StringArray{"M", "L"},
			Colors:       pq.StringArray{"Navy"},
			IsActive:     true,
			IsBestseller: true,
		},
		{
			Name:         "Cotton Long Shirt",
			Description:  "Everyday cotton long shirt",
			RegularPrice: 5000,
			Category:     model.CategoryLongShirt,
			Sizes:        pq.StringArray{"S", "M", "L", "XL"},
			Colors:       pq.StringArray{"White"},
			IsActive:     true,
		},
		{
			Name:         "Retired Shalwar Kameez",
			RegularPrice: 8000,
			Category:     model.CategoryShalwarKameez,
			IsActive:     false,
		},
	}

	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
}

func TestProductRepository_FindWithFilter_ActiveOnly(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	seedProducts(t, repo)

	products, err := repo.FindWithFilter(ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
	for _, p := range products {
		assert.True(t, p.IsActive)
	}
}

func TestProductRepository_FindWithFilter_IncludeInactive(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	seedProducts(t, repo)

	products, err := repo.FindWithFilter(ProductFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestProductRepository_FindWithFilter_Category(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	seedProducts(t, repo)

	products, err := repo.FindWithFilter(ProductFilter{
		Category: categoryPtr(model.CategoryMaxi),
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Silk Maxi", products[0].Name)
}

func TestProductRepository_FindWithFilter_Search(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	seedProducts(t, repo)

	products, err := repo.FindWithFilter(ProductFilter{Search: "cotton"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cotton Long Shirt", products[0].Name)

	// Case must not matter regardless of the SQL dialect
	products, err = repo.FindWithFilter(ProductFilter{Search: "COTTON"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cotton Long Shirt", products[0].Name)

	products, err = repo.FindWithFilter(ProductFilter{Search: "SiLk MaXi"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Silk Maxi", products[0].Name)

	// Search matches description too
	products, err = repo.FindWithFilter(ProductFilter{Search: "festive"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Embroidered Gharara", products[0].Name)
}

func TestProductRepository_FindWithFilter_PriceRange(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	seedProducts(t, repo)

	products, err := repo.FindWithFilter(ProductFilter{
		MinPrice: floatPtr(6000),
		MaxPrice: floatPtr(11000),
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Silk Maxi", products[0].Name)

	// Bounds apply to the sale price, not the regular price
	products, err = repo.FindWithFilter(ProductFilter{
		MinPrice: floatPtr(6000),
		MaxPrice: floatPtr(8000),
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Silk Maxi", products[0].Name)

	products, err = repo.FindWithFilter(ProductFilter{
		MinPrice: floatPtr(9000),
		MaxPrice: floatPtr(11000),
	})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_FindWithFilter_Bestseller(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	seedProducts(t, repo)

	products, err := repo.FindWithFilter(ProductFilter{BestsellerOnly: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Silk Maxi", products[0].Name)
}

func TestProductRepository_FindWithFilter_Pagination(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	seedProducts(t, repo)

	total, err := repo.CountWithFilter(ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	page1, err := repo.FindWithFilter(ProductFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := repo.FindWithFilter(ProductFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}

func TestProductRepository_FindActiveByID(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)
	seedProducts(t, repo)

	var inactive model.Product
	require.NoError(t, testDB.Where("is_active = ?", false).First(&inactive).Error)

	_, err := repo.FindActiveByID(inactive.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_ArrayColumnsRoundTrip(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	product := &model.Product{
		Name:         "Lehanga Choli Set",
		RegularPrice: 15000,
		Category:     model.CategoryLehangaCholi,
		Sizes:        pq.StringArray{"S", "M", "L"},
		Colors:       pq.StringArray{"Gold", "Maroon"},
		Images:       pq.StringArray{"https://cdn.example.com/lehanga-1.jpg"},
		IsActive:     true,
	}
	require.NoError(t, repo.Create(product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"S", "M", "L"}, found.Sizes)
	assert.Equal(t, pq.StringArray{"Gold", "Maroon"}, found.Colors)
	assert.Equal(t, pq.StringArray{"https://cdn.example.com/lehanga-1.jpg"}, found.Images)
}
