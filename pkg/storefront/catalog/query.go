package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names shared with the catalog API and the address bar.
const (
	paramSearch   = "search"
	paramCategory = "category"
	paramMinPrice = "minPrice"
	paramMaxPrice = "maxPrice"
	paramSizes    = "sizes"
	paramColors   = "colors"
	paramPage     = "page"
)

// EncodeQuery serializes the filter state for the address bar. Inactive
// filters are omitted entirely, and page 1 is left out so the default view
// has a clean URL.
func EncodeQuery(f FilterState) url.Values {
	values := url.Values{}

	if f.Search != "" {
		values.Set(paramSearch, f.Search)
	}
	if f.Category != "" {
		values.Set(paramCategory, f.Category)
	}
	if f.MinPrice != nil {
		values.Set(paramMinPrice, strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		values.Set(paramMaxPrice, strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if len(f.Sizes) > 0 {
		values.Set(paramSizes, strings.Join(f.Sizes, ","))
	}
	if len(f.Colors) > 0 {
		values.Set(paramColors, strings.Join(f.Colors, ","))
	}
	if f.Page > 1 {
		values.Set(paramPage, strconv.Itoa(f.Page))
	}

	return values
}

// ParseQuery rebuilds the filter state from URL parameters. Unparseable
// values are dropped rather than failing the whole state, so a mangled
// shared link still loads the catalog.
func ParseQuery(values url.Values) FilterState {
	f := FilterState{
		Search:   values.Get(paramSearch),
		Category: values.Get(paramCategory),
		Page:     1,
	}

	if raw := values.Get(paramMinPrice); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			f.MinPrice = &v
		}
	}
	if raw := values.Get(paramMaxPrice); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			f.MaxPrice = &v
		}
	}
	if raw := values.Get(paramSizes); raw != "" {
		f.Sizes = splitParam(raw)
	}
	if raw := values.Get(paramColors); raw != "" {
		f.Colors = splitParam(raw)
	}
	if raw := values.Get(paramPage); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 1 {
			f.Page = v
		}
	}

	return f
}

func splitParam(raw string) []string {
	var result []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
