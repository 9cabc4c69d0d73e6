package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}
	corsHeaders = []string{"Authorization", "Content-Type", "X-Requested-With"}
)

// CORS allows browser requests from the given origins with credentials.
// An empty list leaves handlers unchanged.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods(corsMethods),
		handlers.AllowedHeaders(corsHeaders),
		handlers.AllowCredentials(),
	)
}
