package middleware

import (
	"net/http"

	"github.com/rotalabs/shift-backend-go/internal/handler/http/response"
	"github.com/rotalabs/shift-backend-go/internal/pkg/apikey"
)

// DeviceKeyRequired authenticates checkin devices by the X-Device-Key header.
// Devices carry no user identity, so this route group skips the JWT stack.
func DeviceKeyRequired(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Device-Key")
			if !apikey.Verify(keyHash, key) {
				response.Unauthorized(w, "Invalid or missing device key")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
