package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanx-storefront/internal/catalog"
)

// ProductSnapshot holds the display fields copied from the catalog when a
// line is first added.
type ProductSnapshot struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
}

func snapshotOf(p catalog.Product) ProductSnapshot {
	return ProductSnapshot{Name: p.Name, UnitPrice: p.Price, ImageURL: p.ImageURL}
}

// Line is one distinct product in the cart. Quantity is always at least 1.
type Line struct {
	ProductID string          `json:"product_id"`
	Product   ProductSnapshot `json:"product"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is an immutable copy of the cart. Lines keep first-added order.
type State struct {
	Lines      []Line          `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Version    uint64          `json:"version"`
}

// IsEmpty reports whether the cart has no lines.
func (s State) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Line returns the line for productID, if present.
func (s State) Line(productID string) (Line, bool) {
	for _, l := range s.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

func newState(lines []Line, version uint64) State {
	st := State{
		Lines:      make([]Line, len(lines)),
		TotalPrice: decimal.Zero,
		Version:    version,
	}
	copy(st.Lines, lines)
	for _, l := range lines {
		st.TotalItems += l.Quantity
		st.TotalPrice = st.TotalPrice.Add(l.Subtotal())
	}
	return st
}
