package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/ecolog/freightquote/internal/config"
)

// CORS lets the quotation dashboard call the API from another origin.
// Preflight requests are answered here, before tracing and rate limiting,
// so browsers are never throttled on OPTIONS. A nil config disables it.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return c.Handler
}
