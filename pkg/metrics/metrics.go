// Package metrics defines the Prometheus metrics exported by simple-rbac.
//
// Metrics are registered with the default registry on package init and
// served by Handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/simple-rbac/pkg/user"
)

const namespace = "idm"

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP method
//   - route: chi route pattern (e.g. "/api/v1/idm/roles/{name}")
//   - code: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status code.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration measures request latency by method and route pattern.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// PasswordChangesTotal counts password change outcomes.
// Label:
//   - result: "changed", "not_same" or "not_correct"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of password change requests that reached a status, by result.",
	},
	[]string{"result"},
)

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency per chi route pattern
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// PasswordChangeRecorder feeds PasswordChangesTotal from the user service
type PasswordChangeRecorder struct{}

var _ user.StatusRecorder = PasswordChangeRecorder{}

func (PasswordChangeRecorder) RecordPasswordChange(status user.PasswordChangeStatus) {
	PasswordChangesTotal.WithLabelValues(resultLabel(status)).Inc()
}

func resultLabel(status user.PasswordChangeStatus) string {
	switch status {
	case user.PasswordChanged:
		return "changed"
	case user.PasswordsNotSame:
		return "not_same"
	case user.PasswordNotCorrect:
		return "not_correct"
	default:
		return "unknown"
	}
}
