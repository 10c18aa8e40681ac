package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"placement/internal/auth"
	"placement/internal/entity"
	"placement/internal/metrics"
	"placement/internal/session"
)

// AccountLookup is the identity-store slice needed for lazy role backfill.
type AccountLookup interface {
	LookupByID(ctx context.Context, id int) (*entity.Account, error)
}

// EnrichSession backfills role and display fields onto sessions that carry
// a subject but no role yet. Lookup errors are logged and the request
// continues with whatever is already on the token.
func EnrichSession(store *session.Store, accounts AccountLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := store.Get(r)
			if claims != nil && claims.Role == auth.RoleUnset {
				acc, err := accounts.LookupByID(r.Context(), claims.AccountID)
				if err != nil {
					log.Printf("session backfill failed for account %d: %v", claims.AccountID, err)
				} else if merged := claims.Enrich(acc); merged != *claims {
					if err := store.Save(w, r, merged); err != nil {
						log.Printf("session save failed for account %d: %v", claims.AccountID, err)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guard applies the route guard decision to every navigable request.
func Guard(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := Decide(r.URL.Path, store.Get(r))
			if !decision.Allow {
				target, _, _ := strings.Cut(decision.RedirectTo, "?")
				metrics.GuardRedirects.WithLabelValues(target).Inc()
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole protects API routes: 401 without a session, 403 when the
// session's role does not match.
func RequireRole(store *session.Store, role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := store.Get(r)
			if claims == nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}
			if claims.Role != role {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession protects API routes that any signed-in role may use.
func RequireSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store.Get(r) == nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
