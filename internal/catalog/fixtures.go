package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
)

const imageHost = "https://images.pexels.com/photos/"

func pexels(id string) string {
	return imageHost + id + "/pexels-photo-" + id + ".jpeg"
}

var (
	apparelSizes = []enums.ProductSize{enums.ProductSizeS, enums.ProductSizeM, enums.ProductSizeL, enums.ProductSizeXL}
	oneSize      = []enums.ProductSize{enums.ProductSizeOneSize}

	black = Color{Name: "Black", Value: "#000000"}
	white = Color{Name: "White", Value: "#FFFFFF"}
)

// Fixtures returns the URBANX launch collection in catalog order. Each call
// returns fresh values.
func Fixtures() []Product {
	release := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	return []Product{
		{
			ID:          "1",
			Name:        "Urban Element Tee",
			Price:       decimal.RequireFromString("89.99"),
			Description: "Premium cotton t-shirt with urban-inspired graphic design.",
			ImageURL:    pexels("6311387"),
			ImageURLs:   []string{pexels("6311387"), pexels("5868743"), pexels("5384423")},
			Category:    enums.ProductCategoryTShirts,
			Tags:        []string{"new", "tee", "cotton"},
			Sizes:       append([]enums.ProductSize(nil), apparelSizes...),
			Colors:      []Color{black, white},
			InStock:     true,
			IsNew:       true,
		},
		{
			ID:          "2",
			Name:        "Street Culture Hoodie",
			Price:       decimal.RequireFromString("129.99"),
			Description: "Heavyweight cotton hoodie with embroidered details.",
			ImageURL:    pexels("5698853"),
			ImageURLs:   []string{pexels("5698853"), pexels("7764555"), pexels("7525056")},
			Category:    enums.ProductCategoryHoodies,
			Tags:        []string{"featured", "hoodie", "winter"},
			Sizes:       append([]enums.ProductSize(nil), apparelSizes...),
			Colors:      []Color{black, {Name: "Gray", Value: "#808080"}},
			InStock:     true,
		},
		{
			ID:          "3",
			Name:        "Concrete Jungle Cap",
			Price:       decimal.RequireFromString("59.99"),
			Description: "Adjustable cap with embroidered logo.",
			ImageURL:    pexels("1124465"),
			ImageURLs:   []string{pexels("1124465"), pexels("844867"), pexels("6347546")},
			Category:    enums.ProductCategoryAccessories,
			Tags:        []string{"cap", "accessories", "unisex"},
			Sizes:       append([]enums.ProductSize(nil), oneSize...),
			Colors:      []Color{black},
			InStock:     true,
			IsNew:       true,
		},
		{
			ID:          "4",
			Name:        "Urban Cargo Pants",
			Price:       decimal.RequireFromString("149.99"),
			Description: "Functional cargo pants with multiple pockets.",
			ImageURL:    pexels("9558577"),
			ImageURLs:   []string{pexels("9558577"), pexels("12094488"), pexels("6347576")},
			Category:    enums.ProductCategoryPants,
			Tags:        []string{"cargo", "pants", "streetwear"},
			Sizes:       append([]enums.ProductSize(nil), apparelSizes...),
			Colors:      []Color{black, {Name: "Khaki", Value: "#c3b091"}},
			InStock:     true,
			IsLimited:   true,
		},
		{
			ID:          "5",
			Name:        "Graffiti Print Tee",
			Price:       decimal.RequireFromString("79.99"),
			Description: "Bold graffiti-inspired graphic tee on premium cotton.",
			ImageURL:    pexels("5868743"),
			ImageURLs:   []string{pexels("5868743"), pexels("6311387"), pexels("5384423")},
			Category:    enums.ProductCategoryTShirts,
			Tags:        []string{"graphic", "tee", "art"},
			Sizes:       append([]enums.ProductSize(nil), apparelSizes...),
			Colors:      []Color{white, black},
			InStock:     true,
			IsNew:       true,
		},
		{
			ID:          "6",
			Name:        "Urban Crossbody Bag",
			Price:       decimal.RequireFromString("89.99"),
			Description: "Functional crossbody bag with multiple compartments.",
			ImageURL:    pexels("1317712"),
			ImageURLs:   []string{pexels("1317712"), pexels("1152077"), pexels("934673")},
			Category:    enums.ProductCategoryAccessories,
			Tags:        []string{"bag", "accessories", "unisex"},
			Sizes:       append([]enums.ProductSize(nil), oneSize...),
			Colors:      []Color{black},
			InStock:     true,
		},
		{
			ID:          "7",
			Name:        "Technical Zip Hoodie",
			Price:       decimal.RequireFromString("159.99"),
			Description: "Technical hoodie with water-resistant finish and premium hardware.",
			ImageURL:    pexels("7525056"),
			ImageURLs:   []string{pexels("7525056"), pexels("5698853"), pexels("7764555")},
			Category:    enums.ProductCategoryHoodies,
			Tags:        []string{"technical", "hoodie", "premium"},
			Sizes:       append([]enums.ProductSize(nil), apparelSizes...),
			Colors:      []Color{black, {Name: "Navy", Value: "#000080"}},
			InStock:     true,
			IsNew:       true,
			IsLimited:   true,
			ReleaseDate: &release,
		},
		{
			ID:          "8",
			Name:        "Oversized Graphic Tee",
			Price:       decimal.RequireFromString("84.99"),
			Description: "Oversized fit t-shirt with artistic graphic print.",
			ImageURL:    pexels("5384423"),
			ImageURLs:   []string{pexels("5384423"), pexels("6311387"), pexels("5868743")},
			Category:    enums.ProductCategoryTShirts,
			Tags:        []string{"oversized", "graphic", "tee"},
			Sizes:       []enums.ProductSize{enums.ProductSizeM, enums.ProductSizeL, enums.ProductSizeXL},
			Colors:      []Color{white, black},
			InStock:     true,
		},
	}
}
