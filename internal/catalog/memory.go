package catalog

import (
	"context"
	"fmt"
)

// MemoryCatalog serves a fixed product list held in process memory.
type MemoryCatalog struct {
	products []Product
	byID     map[string]int
}

// NewMemoryCatalog indexes products, preserving their order. Duplicate ids
// and negative prices are rejected.
func NewMemoryCatalog(products []Product) (*MemoryCatalog, error) {
	c := &MemoryCatalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product id is required")
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %q has negative price", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	return c, nil
}

func (c *MemoryCatalog) Lookup(ctx context.Context, id string) (Product, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[idx].Clone(), nil
}

func (c *MemoryCatalog) ListAll(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.Clone())
	}
	return out, nil
}
