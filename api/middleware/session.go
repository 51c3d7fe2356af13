package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/urbanx-storefront/api/responses"
	"github.com/angelmondragon/urbanx-storefront/pkg/auth"
	"github.com/angelmondragon/urbanx-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
)

const (
	SessionHeader = "X-UX-Session"
	SessionCookie = "ux_session"
)

// Session resolves the anonymous shopper session from the session header or
// cookie. A missing or invalid token starts a new session; the (possibly new)
// token is echoed back in both the header and the cookie.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := sessionToken(r)

			var sessionID uuid.UUID
			if token != "" {
				claims, err := auth.ParseSessionToken(cfg, token)
				if err == nil {
					sessionID = claims.SessionID
				} else if logg != nil {
					logg.Debug(logg.WithField(ctx, "reason", err.Error()), "session token rejected")
				}
			}

			if sessionID == uuid.Nil {
				sessionID = uuid.New()
				minted, err := auth.MintSessionToken(cfg, time.Now(), sessionID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
					return
				}
				token = minted
				if logg != nil {
					logg.Info(logg.WithSessionID(ctx, sessionID.String()), "session.started")
				}
			}

			w.Header().Set(SessionHeader, token)
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	if raw := strings.TrimSpace(r.Header.Get(SessionHeader)); raw != "" {
		return raw
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
