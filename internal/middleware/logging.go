package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// TraceRequests logs every incoming request at trace level. Nothing is
// built when trace logging is off.
func TraceRequests() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if log.IsLevelEnabled(log.TraceLevel) {
				log.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"route":  routeName(r),
					"ua":     r.Header.Get("User-Agent"),
				}).Trace("warm-up request")
			}
			next.ServeHTTP(w, r)
		})
	}
}
