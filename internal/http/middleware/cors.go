package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"ftc-event-service/internal/http/requestutil"
)

// CORS allows browser front ends on the given origins to read the API.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedOrigins: allowedOrigins,
		AllowedHeaders: []string{"Accept", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID},
		MaxAge:         600,
	})
	return c.Handler(next)
}
