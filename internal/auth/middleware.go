package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// RequireBearer gates admin routes on the syntactic presence of a
// bearer-style Authorization header. The token value is deliberately not
// validated: the site ships the same anonymous public key to every caller,
// so there is no secret to check. Known weakness, preserved as observed
// behavior rather than silently hardened.
func RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
