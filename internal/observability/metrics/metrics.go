package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrbackend_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrbackend_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	coverageAssignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrbackend_coverage_assignments_total",
		Help: "Count of coverage guard assignment attempts by result",
	}, []string{"result"})

	paymentsFinalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrbackend_payments_finalized_total",
		Help: "Count of payment finalization attempts by result",
	}, []string{"result"})

	identityRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrbackend_identity_requests_total",
		Help: "Count of identity provider admin API calls by operation and result",
	}, []string{"operation", "result"})

	employeeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrbackend_employee_mutations_total",
		Help: "Count of employee create/delete operations by action and result",
	}, []string{"action", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveAssignment increments the assignment counter with a result label.
func ObserveAssignment(result string) {
	coverageAssignments.WithLabelValues(result).Inc()
}

// ObserveFinalization increments the payment finalization counter.
func ObserveFinalization(result string) {
	paymentsFinalized.WithLabelValues(result).Inc()
}

// ObserveIdentityRequest records one identity provider admin call.
func ObserveIdentityRequest(operation, result string) {
	identityRequests.WithLabelValues(operation, result).Inc()
}

// ObserveEmployeeMutation records an employee create or delete.
func ObserveEmployeeMutation(action, result string) {
	employeeMutations.WithLabelValues(action, result).Inc()
}

// Result converts an error into a metric result label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
