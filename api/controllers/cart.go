package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/urbanx-storefront/api/middleware"
	"github.com/angelmondragon/urbanx-storefront/api/responses"
	"github.com/angelmondragon/urbanx-storefront/api/validators"
	"github.com/angelmondragon/urbanx-storefront/internal/cart"
	"github.com/angelmondragon/urbanx-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
)

const (
	opAdd    = "add"
	opUpdate = "update"
	opRemove = "remove"
	opClear  = "clear"
)

// CartRegistry hands out the cart store for a shopper session.
type CartRegistry interface {
	Get(sessionID uuid.UUID) *cart.Store
}

// CartOpRecorder counts cart mutations by outcome.
type CartOpRecorder interface {
	IncCartOp(op string, err error)
}

// CartDeps groups what the cart handlers share.
type CartDeps struct {
	Registry CartRegistry
	Catalog  catalog.Catalog
	Metrics  CartOpRecorder
	Logger   *logger.Logger
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"max=999"`
}

// updateItemRequest allows zero or negative quantities, which remove the line.
type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=999"`
}

// CartFetch returns the session's cart snapshot.
func CartFetch(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := deps.store(w, r)
		if !ok {
			return
		}
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartAddItem resolves the product from the catalog and adds it. The response
// is 201 when a new line was created and 200 when quantities merged.
func CartAddItem(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := deps.store(w, r)
		if !ok {
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}

		if deps.Catalog == nil {
			responses.WriteError(r.Context(), deps.Logger, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		product, err := deps.Catalog.Lookup(r.Context(), validators.SanitizeString(payload.ProductID, maxProductIDLen))
		if err != nil {
			deps.record(opAdd, err)
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}

		state, created, err := store.AddLine(r.Context(), product, payload.Quantity)
		deps.record(opAdd, err)
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, state)
	}
}

// CartUpdateItem sets a line's quantity; zero or less removes the line.
func CartUpdateItem(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := deps.store(w, r)
		if !ok {
			return
		}
		productID, ok := deps.productID(w, r)
		if !ok {
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}

		state, err := store.UpdateQuantity(r.Context(), productID, *payload.Quantity)
		deps.record(opUpdate, err)
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CartRemoveItem drops a line. Removing an absent line succeeds unchanged.
func CartRemoveItem(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := deps.store(w, r)
		if !ok {
			return
		}
		productID, ok := deps.productID(w, r)
		if !ok {
			return
		}

		state, err := store.RemoveItem(r.Context(), productID)
		deps.record(opRemove, err)
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CartClear empties the session's cart.
func CartClear(deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := deps.store(w, r)
		if !ok {
			return
		}

		state, err := store.Clear(r.Context())
		deps.record(opClear, err)
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

func (d CartDeps) store(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	if d.Registry == nil {
		responses.WriteError(r.Context(), d.Logger, w, pkgerrors.New(pkgerrors.CodeInternal, "cart registry unavailable"))
		return nil, false
	}
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), d.Logger, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
		return nil, false
	}
	return d.Registry.Get(sessionID), true
}

func (d CartDeps) productID(w http.ResponseWriter, r *http.Request) (string, bool) {
	productID := validators.SanitizeString(chi.URLParam(r, "productId"), maxProductIDLen)
	if productID == "" {
		responses.WriteError(r.Context(), d.Logger, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
		return "", false
	}
	return productID, true
}

func (d CartDeps) record(op string, err error) {
	if d.Metrics != nil {
		d.Metrics.IncCartOp(op, err)
	}
}
