package middleware

import (
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/volleyfit/internal/telemetry/metrics"
	"github.com/2beens/volleyfit/pkg"
)

const panicResponse = `{"error":"internal server error"}`

// PanicRecovery turns a handler panic into a 500 with a json error body, so the
// api clients always get json back. The request id header, when already set,
// is logged to find the failed request in the access logs.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				route := routeName(req)
				log.WithFields(log.Fields{
					"route":      route,
					"request_id": w.Header().Get(RequestIDHeader),
				}).Errorf("panic serving %s %s: %v\n%s", req.Method, req.URL.Path, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.WithLabelValues(route).Inc()
				}
				pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte(panicResponse), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
