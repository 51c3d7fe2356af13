package catalog

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
)

var (
	fifty           = decimal.NewFromInt(50)
	oneHundred      = decimal.NewFromInt(100)
	oneHundredFifty = decimal.NewFromInt(150)
)

// Query selects and orders a product listing. Empty groups do not filter.
// Groups combine with AND; values inside a group combine with OR.
type Query struct {
	Categories []enums.ProductCategory
	Prices     []enums.PriceBracket
	Sizes      []enums.ProductSize
	Sort       enums.ProductSort
}

// Apply returns the products matching q in the requested order. The input
// slice is not modified.
func Apply(products []Product, q Query) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q.matches(p) {
			out = append(out, p)
		}
	}

	switch q.Sort {
	case enums.ProductSortNewest:
		slices.SortStableFunc(out, func(a, b Product) int {
			switch {
			case a.IsNew == b.IsNew:
				return 0
			case a.IsNew:
				return -1
			default:
				return 1
			}
		})
	case enums.ProductSortPriceLow:
		slices.SortStableFunc(out, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case enums.ProductSortPriceHigh:
		slices.SortStableFunc(out, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	}
	return out
}

func (q Query) matches(p Product) bool {
	if len(q.Categories) > 0 && !slices.Contains(q.Categories, p.Category) {
		return false
	}
	if len(q.Prices) > 0 && !slices.ContainsFunc(q.Prices, func(b enums.PriceBracket) bool {
		return InBracket(p.Price, b)
	}) {
		return false
	}
	if len(q.Sizes) > 0 && !slices.ContainsFunc(q.Sizes, p.HasSize) {
		return false
	}
	return true
}

// InBracket reports whether price falls in the bracket: under-50 is < 50,
// 50-100 is [50,100], 100-150 is (100,150] and over-150 is > 150.
func InBracket(price decimal.Decimal, bracket enums.PriceBracket) bool {
	switch bracket {
	case enums.PriceBracketUnder50:
		return price.LessThan(fifty)
	case enums.PriceBracket50To100:
		return price.GreaterThanOrEqual(fifty) && price.LessThanOrEqual(oneHundred)
	case enums.PriceBracket100To150:
		return price.GreaterThan(oneHundred) && price.LessThanOrEqual(oneHundredFifty)
	case enums.PriceBracketOver150:
		return price.GreaterThan(oneHundredFifty)
	}
	return false
}
