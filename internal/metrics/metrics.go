// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK              = "ok"
	ResultValidationError = "validation_error"
	ResultStorageError    = "storage_error"
	ResultSent            = "sent"
	ResultFailed          = "failed"
	ResultSkipped         = "skipped"
)

var (
	once sync.Once

	// ContactSubmissionsTotal counts contact submissions by outcome.
	ContactSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grpaccess",
		Subsystem: "contact",
		Name:      "submissions_total",
		Help:      "Total number of contact submissions, labeled by result.",
	}, []string{"result"})

	// NotificationsTotal counts notification email attempts by outcome.
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grpaccess",
		Subsystem: "contact",
		Name:      "notifications_total",
		Help:      "Total number of contact notification emails, labeled by result (sent, failed, skipped).",
	}, []string{"result"})

	StatusChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grpaccess",
		Subsystem: "status",
		Name:      "checks_total",
		Help:      "Total number of status checks recorded, labeled by result.",
	}, []string{"result"})
)

// Register registers the collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ContactSubmissionsTotal,
			NotificationsTotal,
			StatusChecksTotal,
		)
	})
}
