package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the frontend origins. The API is
// unauthenticated JSON over the listed methods, so only Content-Type is
// negotiated and no credentials are exchanged.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
}
