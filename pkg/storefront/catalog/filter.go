package catalog

import "strings"

// DefaultPageSize is the number of products shown per catalog page.
const DefaultPageSize = 12

// FilterState captures every catalog control the shopper can set. The zero
// value means "no filters, first page".
type FilterState struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sizes    []string
	Colors   []string
	Page     int
}

// WithSearch returns a copy with the search term changed and the page reset.
func (f FilterState) WithSearch(search string) FilterState {
	f.Search = search
	f.Page = 1
	return f
}

// WithCategory returns a copy with the category changed and the page reset.
func (f FilterState) WithCategory(category string) FilterState {
	f.Category = category
	f.Page = 1
	return f
}

// WithPriceRange returns a copy with the price bounds changed and the page reset.
func (f FilterState) WithPriceRange(min, max *float64) FilterState {
	f.MinPrice = min
	f.MaxPrice = max
	f.Page = 1
	return f
}

// WithSizes returns a copy with the size selection changed and the page reset.
func (f FilterState) WithSizes(sizes []string) FilterState {
	f.Sizes = append([]string(nil), sizes...)
	f.Page = 1
	return f
}

// WithColors returns a copy with the color selection changed and the page reset.
func (f FilterState) WithColors(colors []string) FilterState {
	f.Colors = append([]string(nil), colors...)
	f.Page = 1
	return f
}

// WithPage returns a copy on the given page with all filters unchanged.
func (f FilterState) WithPage(page int) FilterState {
	if page < 1 {
		page = 1
	}
	f.Page = page
	return f
}

// IsDefault reports whether no filter is active and the page is the first.
func (f FilterState) IsDefault() bool {
	return f.Search == "" && f.Category == "" &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		len(f.Sizes) == 0 && len(f.Colors) == 0 &&
		f.Page <= 1
}

// Matches reports whether the product passes every active filter.
func (f FilterState) Matches(p *Product) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}

	if f.Category != "" && p.Category != f.Category {
		return false
	}

	price := p.EffectivePrice()
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}

	if len(f.Sizes) > 0 && !intersects(f.Sizes, p.Sizes) {
		return false
	}
	if len(f.Colors) > 0 && !intersects(f.Colors, p.Colors) {
		return false
	}

	return true
}

func intersects(selected, available []string) bool {
	for _, want := range selected {
		for _, have := range available {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

// Page is one page of filtered catalog results. State records the filter
// that produced it, so consumers can tell which request a page answers.
type Page struct {
	Items      []Product
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	State      FilterState
}

// Apply filters the products and slices out the requested page. A page
// number beyond the last page falls back to page 1, so a filter change that
// shrinks the result set never yields an empty page while matches remain.
func Apply(products []Product, state FilterState, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var matched []Product
	for i := range products {
		if state.Matches(&products[i]) {
			matched = append(matched, products[i])
		}
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := state.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Page{
		Items:      matched[start:end],
		Total:      len(matched),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		State:      state.WithPage(page),
	}
}
