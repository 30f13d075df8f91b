package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/domain"
)

// Require rejects requests whose credential does not verify or does not
// meet req before the body is read. Services still authorize every
// operation against the full policy, ownership included.
func Require(verifier authz.TokenVerifier, req authz.Requirement) func(http.Handler) http.Handler {
	gate := authz.RoleGate{}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if req == authz.RequirePublic {
				next.ServeHTTP(w, r)
				return
			}

			id, err := verifier.Verify(r.Header.Get("Authorization"))
			if err != nil {
				deny(w, http.StatusUnauthorized, err)
				return
			}
			if err := gate.Check(id, req); err != nil {
				deny(w, http.StatusForbidden, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(authz.WithIdentity(r.Context(), id)))
		})
	}
}

func deny(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": domain.MessageOf(err)})
}
