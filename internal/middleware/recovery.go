package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/metrics"
	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

const panicResponseBody = `{"error":"warm-up service failed to handle the request"}`

// PanicRecovery turns a handler panic into a JSON 500 and counts it.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				log.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"route":  routeName(r),
				}).Errorf("warm-up handler panicked: %v\n%s", recovered, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteResponse(w, pkg.ContentType.JSON, panicResponseBody, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// routeName is the mux route name, or "unmatched" outside a mux router.
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
		return route.GetName()
	}
	return "unmatched"
}
