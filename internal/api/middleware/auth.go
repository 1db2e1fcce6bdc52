package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"slowquery-monitor/internal/api/utils"
)

// Auth requires "Authorization: Bearer <token>". An empty token leaves
// the API open, which is only sensible on a loopback listener.
func Auth(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Fields(r.Header.Get("Authorization"))
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") ||
			subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
