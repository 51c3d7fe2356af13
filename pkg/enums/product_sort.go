package enums

import "fmt"

// ProductSort selects the listing order. The zero value keeps catalog order.
type ProductSort string

const (
	ProductSortNone      ProductSort = ""
	ProductSortNewest    ProductSort = "newest"
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
)

var validProductSorts = []ProductSort{
	ProductSortNewest,
	ProductSortPriceLow,
	ProductSortPriceHigh,
}

func (s ProductSort) String() string {
	return string(s)
}

func (s ProductSort) IsValid() bool {
	if s == ProductSortNone {
		return true
	}
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseProductSort(value string) (ProductSort, error) {
	if value == "" {
		return ProductSortNone, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort %q", value)
}
