package catalog

// Product categories carried by the catalog API.
const (
	CategoryMaxi          = "Maxi"
	CategoryLehangaCholi  = "Lehanga Choli"
	CategoryLongShirt     = "Long Shirt"
	CategoryShalwarKameez = "Shalwar Kameez"
	CategoryGharara       = "Gharara"
)

// Categories lists every category in display order.
var Categories = []string{
	CategoryMaxi,
	CategoryLehangaCholi,
	CategoryLongShirt,
	CategoryShalwarKameez,
	CategoryGharara,
}

// Sizes lists the supported garment sizes in display order.
var Sizes = []string{"S", "M", "L", "XL", "XXL"}

// Product is the storefront view of a catalog item, matching the API JSON.
type Product struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	RegularPrice float64  `json:"regular_price"`
	SalePrice    *float64 `json:"sale_price,omitempty"`
	Category     string   `json:"category"`
	Sizes        []string `json:"sizes"`
	Colors       []string `json:"colors"`
	Images       []string `json:"images"`
	IsBestseller bool     `json:"is_bestseller"`
}

// EffectivePrice returns the sale price when one is set and lower than the
// regular price, otherwise the regular price.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil && *p.SalePrice < p.RegularPrice {
		return *p.SalePrice
	}
	return p.RegularPrice
}

// OnSale reports whether the effective price differs from the regular price.
func (p *Product) OnSale() bool {
	return p.SalePrice != nil && *p.SalePrice < p.RegularPrice
}

// FirstImage returns the primary image URL, or empty when the product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
