package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/auth"
	coffeeHttp "github.com/tai160903/viet-coffee-server/internal/handler/http"
)

// RequireSession verifies the bearer token on every request of a route group.
// A missing or dead session answers 401 and publishes on the broadcast so any
// attached listener (storefront session, dashboard poller) learns about it
// from one place.
func RequireSession(svc auth.Service, broadcast *auth.UnauthenticatedBroadcast) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthenticated(w, broadcast, "Missing bearer token")
				return
			}

			claims, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				log.Warn().Err(err).Msg("transport: rejected bearer token")
				unauthenticated(w, broadcast, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(coffeeHttp.WithSession(r.Context(), claims, token)))
		})
	}
}

// RequireManager guards the manager route group. It assumes RequireSession
// already ran.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := coffeeHttp.ClaimsFromContext(r.Context())
		if !ok {
			respondJSONError(w, http.StatusUnauthorized, "Not logged in")
			return
		}
		if claims.Role != auth.RoleManager {
			log.Warn().Stringer("user_id", claims.UserID).Msg("transport: manager route denied")
			respondJSONError(w, http.StatusForbidden, "Manager role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func unauthenticated(w http.ResponseWriter, broadcast *auth.UnauthenticatedBroadcast, message string) {
	broadcast.Notify()
	respondJSONError(w, http.StatusUnauthorized, message)
}

func respondJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Error().Err(err).Msg("transport: failed to write error response")
	}
}
