package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/JonMunkholm/droprows/internal/config"
	"github.com/JonMunkholm/droprows/internal/core"
	"github.com/JonMunkholm/droprows/internal/logging"
)

// RejectFunc writes the response for a request a middleware refuses.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// APIKeyAuth checks the X-API-Key header against cfg.APIKeys when
// cfg.RequireAPIKey is set. A missing key is rejected with
// core.ErrMissingAPIKey, a wrong one with core.ErrInvalidAPIKey.
func APIKeyAuth(cfg config.SecurityConfig, reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.RequireAPIKey {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")

			var err error
			switch {
			case key == "":
				err = core.ErrMissingAPIKey
			case !isValidAPIKey(key, cfg.APIKeys):
				err = core.ErrInvalidAPIKey
			}
			if err != nil {
				logging.FromContext(r.Context()).Warn("auth rejected",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
					"reason", err.Error(),
				)
				reject(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isValidAPIKey compares against every key in constant time so the
// duration does not reveal which key matched.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, validKey := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(validKey))
	}
	return valid == 1
}
