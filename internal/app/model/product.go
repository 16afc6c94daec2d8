package model

import (
	"math"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryMaxi          ProductCategory = "Maxi"
	CategoryLehangaCholi  ProductCategory = "Lehanga Choli"
	CategoryLongShirt     ProductCategory = "Long Shirt"
	CategoryShalwarKameez ProductCategory = "Shalwar Kameez"
	CategoryGharara       ProductCategory = "Gharara"
)

type Product struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	RegularPrice float64         `gorm:"not null;index" json:"regular_price"`
	SalePrice    *float64        `json:"sale_price,omitempty"`
	Category     ProductCategory `gorm:"type:varchar(50);index" json:"category"`
	Sizes        pq.StringArray  `gorm:"type:text[]" json:"sizes"`
	Colors       pq.StringArray  `gorm:"type:text[]" json:"colors"`
	Images       pq.StringArray  `gorm:"type:text[]" json:"images"`
	IsBestseller bool            `gorm:"default:false" json:"is_bestseller"`
	IsActive     bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the sale price when one is set and lower than the
// regular price, otherwise the regular price.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil && *p.SalePrice < p.RegularPrice {
		return *p.SalePrice
	}
	return p.RegularPrice
}

// DiscountPercentage returns the rounded discount relative to the regular
// price, or 0 when no discount applies.
func (p *Product) DiscountPercentage() int {
	if p.SalePrice == nil || p.RegularPrice <= 0 || *p.SalePrice >= p.RegularPrice {
		return 0
	}
	return int(math.Round((p.RegularPrice - *p.SalePrice) / p.RegularPrice * 100))
}
