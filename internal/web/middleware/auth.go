// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// dashboardHeader carries the dashboard password on API requests.
const dashboardHeader = "X-Dashboard-Password"

// PasswordAuth returns middleware that gates every request behind the
// configured dashboard password. The password may be supplied via the
// X-Dashboard-Password header or HTTP basic auth (any username).
func PasswordAuth(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(dashboardHeader)
			if supplied == "" {
				if _, pw, ok := r.BasicAuth(); ok {
					supplied = pw
				}
			}

			if supplied == "" {
				slog.Warn("auth: missing dashboard password",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"missing password","code":"AUTH_MISSING"}`, http.StatusUnauthorized)
				return
			}

			// Constant-time comparison so response timing reveals nothing
			// about the configured password.
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
				slog.Warn("auth: invalid dashboard password",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"invalid password","code":"AUTH_INVALID"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
