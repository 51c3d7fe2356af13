package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
)

func TestMemoryCatalogLookup(t *testing.T) {
	t.Parallel()

	cat, err := NewMemoryCatalog(Fixtures())
	require.NoError(t, err)

	ctx := context.Background()
	p, err := cat.Lookup(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Technical Zip Hoodie", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("159.99")))
	require.NotNil(t, p.ReleaseDate)
	assert.Equal(t, 2025, p.ReleaseDate.Year())

	_, err = cat.Lookup(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestMemoryCatalogReturnsCopies(t *testing.T) {
	t.Parallel()

	cat, err := NewMemoryCatalog(Fixtures())
	require.NoError(t, err)

	ctx := context.Background()
	all, err := cat.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 8)
	all[0].Name = "mutated"
	all[0].Sizes[0] = enums.ProductSizeOneSize

	again, err := cat.Lookup(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Urban Element Tee", again.Name)
	assert.Equal(t, enums.ProductSizeS, again.Sizes[0])
}

func TestNewMemoryCatalogRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := NewMemoryCatalog([]Product{priced("1", "1"), priced("1", "2")})
	assert.Error(t, err)

	_, err = NewMemoryCatalog([]Product{priced("1", "-1")})
	assert.Error(t, err)

	_, err = NewMemoryCatalog([]Product{priced("", "1")})
	assert.Error(t, err)
}
