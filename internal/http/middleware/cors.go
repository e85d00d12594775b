package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS applies the site's fixed open policy: any origin, the full method
// set, and the two headers the browser client sends.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	})
}
