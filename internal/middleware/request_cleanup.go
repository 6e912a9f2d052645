package middleware

import (
	"io"
	"net/http"
)

// maxDrainBytes caps how much of an unread body is discarded. A larger leftover
// costs the connection instead.
const maxDrainBytes = 64 << 10

// DiscardUnreadBody closes the request body once the handler returns, draining
// at most maxDrainBytes of what the handler left unread.
func DiscardUnreadBody() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
