package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the configured origins ("*" for any) with every method and
// header, the policy browser frontends of the salon rely on.
func CORS(origins []string, allowCredentials bool) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: allowCredentials,
	})
	return c.Handler
}
