package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/urbanx-storefront/api/responses"
	"github.com/angelmondragon/urbanx-storefront/api/validators"
	"github.com/angelmondragon/urbanx-storefront/internal/catalog"
	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
	"github.com/angelmondragon/urbanx-storefront/pkg/pagination"
)

const maxProductIDLen = 64

type productListResponse struct {
	Products   []catalog.Product `json:"products"`
	Total      int               `json:"total"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// ProductList returns the catalog filtered and sorted by the query string.
// Paging is opt-in through ?limit= and ?cursor=; Total counts every match.
func ProductList(cat catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query, err := parseProductQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := cat.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filtered := catalog.Apply(products, query)
		page, err := pagination.Slice(filtered, pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}
		responses.WriteSuccess(w, productListResponse{
			Products:   page.Items,
			Total:      len(filtered),
			NextCursor: page.NextCursor,
		})
	}
}

func ProductDetail(cat catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		productID := validators.SanitizeString(chi.URLParam(r, "productId"), maxProductIDLen)
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := cat.Lookup(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func parseProductQuery(r *http.Request) (catalog.Query, error) {
	categories, err := validators.ParseQueryEnums(r, "category", enums.ParseProductCategory)
	if err != nil {
		return catalog.Query{}, err
	}
	prices, err := validators.ParseQueryEnums(r, "price", enums.ParsePriceBracket)
	if err != nil {
		return catalog.Query{}, err
	}
	sizes, err := validators.ParseQueryEnums(r, "size", enums.ParseProductSize)
	if err != nil {
		return catalog.Query{}, err
	}
	sort, err := validators.ParseQueryEnum(r, "sort", enums.ParseProductSort)
	if err != nil {
		return catalog.Query{}, err
	}
	return catalog.Query{
		Categories: categories,
		Prices:     prices,
		Sizes:      sizes,
		Sort:       sort,
	}, nil
}
