package enums

import "fmt"

// ProductCategory represents the storefront catalog categories.
type ProductCategory string

const (
	ProductCategoryTShirts     ProductCategory = "t-shirts"
	ProductCategoryHoodies     ProductCategory = "hoodies"
	ProductCategoryPants       ProductCategory = "pants"
	ProductCategoryAccessories ProductCategory = "accessories"
)

var validProductCategories = []ProductCategory{
	ProductCategoryTShirts,
	ProductCategoryHoodies,
	ProductCategoryPants,
	ProductCategoryAccessories,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductSize is a size label a product can be offered in.
type ProductSize string

const (
	ProductSizeS       ProductSize = "S"
	ProductSizeM       ProductSize = "M"
	ProductSizeL       ProductSize = "L"
	ProductSizeXL      ProductSize = "XL"
	ProductSizeOneSize ProductSize = "One Size"
)

var validProductSizes = []ProductSize{
	ProductSizeS,
	ProductSizeM,
	ProductSizeL,
	ProductSizeXL,
	ProductSizeOneSize,
}

func (s ProductSize) String() string {
	return string(s)
}

func (s ProductSize) IsValid() bool {
	for _, candidate := range validProductSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseProductSize(value string) (ProductSize, error) {
	for _, candidate := range validProductSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product size %q", value)
}
