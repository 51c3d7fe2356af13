package catalog

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanx-storefront/pkg/db/models"
	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
)

// ErrProductNotFound is returned by Lookup when no product carries the id.
var ErrProductNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")

// Catalog is the read-only product source consumed by the storefront.
type Catalog interface {
	Lookup(ctx context.Context, id string) (Product, error)
	ListAll(ctx context.Context) ([]Product, error)
}

// Color is a named swatch offered for a product.
type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is the catalog record as seen by the cart and the listing.
type Product struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Price         decimal.Decimal       `json:"price"`
	OriginalPrice *decimal.Decimal      `json:"original_price,omitempty"`
	Description   string                `json:"description"`
	ImageURL      string                `json:"image_url"`
	ImageURLs     []string              `json:"image_urls"`
	Category      enums.ProductCategory `json:"category"`
	Tags          []string              `json:"tags"`
	Sizes         []enums.ProductSize   `json:"sizes"`
	Colors        []Color               `json:"colors"`
	InStock       bool                  `json:"in_stock"`
	IsNew         bool                  `json:"is_new"`
	IsLimited     bool                  `json:"is_limited"`
	ReleaseDate   *time.Time            `json:"release_date,omitempty"`
}

// HasSize reports whether the product is offered in size.
func (p Product) HasSize(size enums.ProductSize) bool {
	return slices.Contains(p.Sizes, size)
}

// Clone returns a deep copy so callers cannot alias catalog-owned slices.
func (p Product) Clone() Product {
	out := p
	out.ImageURLs = slices.Clone(p.ImageURLs)
	out.Tags = slices.Clone(p.Tags)
	out.Sizes = slices.Clone(p.Sizes)
	out.Colors = slices.Clone(p.Colors)
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		out.OriginalPrice = &v
	}
	if p.ReleaseDate != nil {
		v := *p.ReleaseDate
		out.ReleaseDate = &v
	}
	return out
}

// FromModel maps a products row into the domain type.
func FromModel(m models.Product) Product {
	p := Product{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		ImageURLs:   slices.Clone([]string(m.ImageURLs)),
		Category:    m.Category,
		Tags:        slices.Clone([]string(m.Tags)),
		InStock:     m.InStock,
		IsNew:       m.IsNew,
		IsLimited:   m.IsLimited,
		ReleaseDate: m.ReleaseDate,
	}
	if m.OriginalPrice.Valid {
		v := m.OriginalPrice.Decimal
		p.OriginalPrice = &v
	}
	p.Sizes = make([]enums.ProductSize, 0, len(m.Sizes))
	for _, size := range m.Sizes {
		p.Sizes = append(p.Sizes, enums.ProductSize(size))
	}
	p.Colors = make([]Color, 0, len(m.Colors))
	for _, c := range m.Colors {
		p.Colors = append(p.Colors, Color{Name: c.Name, Value: c.Value})
	}
	return p
}

// ToModel maps the domain type into a products row at the given position.
func ToModel(p Product, position int) models.Product {
	m := models.Product{
		ID:          p.ID,
		Position:    position,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		ImageURLs:   slices.Clone(p.ImageURLs),
		Category:    p.Category,
		Tags:        slices.Clone(p.Tags),
		InStock:     p.InStock,
		IsNew:       p.IsNew,
		IsLimited:   p.IsLimited,
		ReleaseDate: p.ReleaseDate,
	}
	if p.OriginalPrice != nil {
		m.OriginalPrice = decimal.NewNullDecimal(*p.OriginalPrice)
	}
	m.Sizes = make([]string, 0, len(p.Sizes))
	for _, size := range p.Sizes {
		m.Sizes = append(m.Sizes, size.String())
	}
	m.Colors = make([]models.ProductColor, 0, len(p.Colors))
	for _, c := range p.Colors {
		m.Colors = append(m.Colors, models.ProductColor{Name: c.Name, Value: c.Value})
	}
	return m
}
