package middleware

import (
	"net/http"
)

// bridgeCSP is strict: the bridge serves JSON and a websocket, never documents.
const bridgeCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders adds the response headers every bridge endpoint carries.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()

		// Clickjacking protection
		headers.Set("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		headers.Set("X-Content-Type-Options", "nosniff")

		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Cache-Control", "no-store")
		headers.Set("Content-Security-Policy", bridgeCSP)

		next.ServeHTTP(w, r)
	})
}
