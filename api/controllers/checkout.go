package controllers

import (
	"net/http"

	"github.com/angelmondragon/urbanx-storefront/api/responses"
	"github.com/angelmondragon/urbanx-storefront/api/validators"
	"github.com/angelmondragon/urbanx-storefront/internal/checkout"
	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
)

// CheckoutQuote prices the session's cart for ?shipping=standard|express.
func CheckoutQuote(svc checkout.Service, deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), deps.Logger, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		store, ok := deps.store(w, r)
		if !ok {
			return
		}

		method, err := validators.ParseQueryEnum(r, "shipping", enums.ParseShippingMethod)
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}

		quote, err := svc.Quote(store.Snapshot(), method)
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutSubmit places the simulated order and empties the cart. Dropping
// the request before the processing delay elapses leaves the cart intact.
func CheckoutSubmit(svc checkout.Service, deps CartDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), deps.Logger, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		store, ok := deps.store(w, r)
		if !ok {
			return
		}

		var input checkout.Input
		if err := validators.DecodeJSONBody(w, r, &input); err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}

		conf, err := svc.Submit(r.Context(), store, input)
		if err != nil {
			responses.WriteError(r.Context(), deps.Logger, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, conf)
	}
}
