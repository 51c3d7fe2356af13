package controllers

import (
	"net/http"

	"github.com/angelmondragon/urbanx-storefront/api/middleware"
	"github.com/angelmondragon/urbanx-storefront/api/responses"
)

// PublicPing echoes the resolved shopper session, which lets a client
// bootstrap its session token without touching the cart.
func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"status": "ok"}
		if sessionID, ok := middleware.SessionIDFromContext(r.Context()); ok {
			payload["session_id"] = sessionID.String()
		}
		responses.WriteSuccess(w, payload)
	}
}
