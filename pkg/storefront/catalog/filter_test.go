package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func sampleProducts() []Product {
	return []Product{
		{
			ID: 1, Name: "Silk Maxi", Description: "Flowing silk maxi dress",
			RegularPrice: 10000, SalePrice: floatPtr(7000),
			Category: CategoryMaxi, Sizes: []string{"M", "L"}, Colors: []string{"Navy"},
		},
		{
			ID: 2, Name: "Cotton Long Shirt", Description: "Everyday cotton",
			RegularPrice: 5000,
			Category:     CategoryLongShirt, Sizes: []string{"S", "M"}, Colors: []string{"White"},
		},
		{
			ID: 3, Name: "Embroidered Gharara", Description: "Festive wear",
			RegularPrice: 12000,
			Category:     CategoryGharara, Sizes: []string{"S"}, Colors: []string{"Red", "Gold"},
		},
	}
}

func TestProduct_EffectivePrice(t *testing.T) {
	sale := 7000.0
	p := Product{RegularPrice: 10000, SalePrice: &sale}
	assert.Equal(t, 7000.0, p.EffectivePrice())
	assert.True(t, p.OnSale())

	// A sale price above the regular price is ignored
	higher := 15000.0
	p.SalePrice = &higher
	assert.Equal(t, 10000.0, p.EffectivePrice())
	assert.False(t, p.OnSale())

	p.SalePrice = nil
	assert.Equal(t, 10000.0, p.EffectivePrice())
}

func TestFilterState_Matches_Search(t *testing.T) {
	products := sampleProducts()

	f := FilterState{Search: "SILK"}
	assert.True(t, f.Matches(&products[0]))
	assert.False(t, f.Matches(&products[1]))

	// Description matches too
	f = FilterState{Search: "festive"}
	assert.True(t, f.Matches(&products[2]))
}

func TestFilterState_Matches_PriceUsesEffectivePrice(t *testing.T) {
	products := sampleProducts()

	// Silk Maxi sells for 7000, not its 10000 regular price
	f := FilterState{MinPrice: floatPtr(6000), MaxPrice: floatPtr(8000)}
	assert.True(t, f.Matches(&products[0]))
	assert.False(t, f.Matches(&products[1]))
	assert.False(t, f.Matches(&products[2]))
}

func TestFilterState_Matches_SizesAnyOverlap(t *testing.T) {
	products := sampleProducts()

	f := FilterState{Sizes: []string{"L", "XL"}}
	assert.True(t, f.Matches(&products[0]))
	assert.False(t, f.Matches(&products[1]))

	// Case-insensitive
	f = FilterState{Sizes: []string{"m"}}
	assert.True(t, f.Matches(&products[0]))
	assert.True(t, f.Matches(&products[1]))
}

func TestFilterState_Matches_CombinedFilters(t *testing.T) {
	products := sampleProducts()

	f := FilterState{
		Category: CategoryMaxi,
		Colors:   []string{"Navy"},
		MaxPrice: floatPtr(8000),
	}
	assert.True(t, f.Matches(&products[0]))
	assert.False(t, f.Matches(&products[1]))
	assert.False(t, f.Matches(&products[2]))
}

func TestFilterState_WithSettersResetPage(t *testing.T) {
	f := FilterState{Page: 4}

	assert.Equal(t, 1, f.WithSearch("silk").Page)
	assert.Equal(t, 1, f.WithCategory(CategoryMaxi).Page)
	assert.Equal(t, 1, f.WithPriceRange(floatPtr(100), nil).Page)
	assert.Equal(t, 1, f.WithSizes([]string{"M"}).Page)
	assert.Equal(t, 1, f.WithColors([]string{"Navy"}).Page)

	// Only explicit paging keeps the other filters and moves the page
	assert.Equal(t, 7, f.WithPage(7).Page)
	assert.Equal(t, 1, f.WithPage(0).Page)
}

func TestApply_Pagination(t *testing.T) {
	var products []Product
	for i := 1; i <= 30; i++ {
		products = append(products, Product{
			ID:           uint(i),
			Name:         fmt.Sprintf("Maxi %02d", i),
			RegularPrice: 5000,
			Category:     CategoryMaxi,
		})
	}

	page := Apply(products, FilterState{}, 0)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, 12)
	assert.Equal(t, 30, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.Page)

	page = Apply(products, FilterState{Page: 3}, 12)
	assert.Len(t, page.Items, 6)
	assert.Equal(t, 3, page.Page)
}

func TestApply_ResetsToFirstPageAfterFilterShrink(t *testing.T) {
	products := sampleProducts()

	// Page 5 no longer exists once the filter narrows to one match
	page := Apply(products, FilterState{Category: CategoryMaxi, Page: 5}, 12)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
}

func TestApply_OverflowPageFallsBackToFirst(t *testing.T) {
	var products []Product
	for i := 1; i <= 30; i++ {
		products = append(products, Product{ID: uint(i), Name: fmt.Sprintf("Maxi %02d", i), Category: CategoryMaxi})
	}

	// 30 items over 3 pages; page 9 shows page 1, not the last page
	page := Apply(products, FilterState{Page: 9}, 12)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 12)
	assert.Equal(t, uint(1), page.Items[0].ID)
}

func TestApply_EmptyResult(t *testing.T) {
	page := Apply(sampleProducts(), FilterState{Search: "nonexistent"}, 12)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
}
