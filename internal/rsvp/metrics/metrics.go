package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registration core's Prometheus metrics. A nil *Metrics is
// safe everywhere so unit tests don't need a registry.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	Cancellations        prometheus.Counter
	DuplicateRejections  prometheus.Counter
	CapacityRejections   *prometheus.CounterVec
	CommitConflicts      prometheus.Counter
	IndexDegradations    prometheus.Counter
}

// New creates and registers all registration metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "volunteerhub_registrations_created_total",
			Help: "Registration records committed",
		}),
		Cancellations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "volunteerhub_cancellations_total",
			Help: "Registrations cancelled",
		}),
		DuplicateRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "volunteerhub_duplicate_rejections_total",
			Help: "Submissions rejected because every attendee was already registered",
		}),
		// The pre/commit split is the observability hook for the capacity
		// race: commit-stage rejections mean two submissions actually raced.
		CapacityRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "volunteerhub_capacity_rejections_total",
			Help: "Submissions rejected for capacity, by validation stage",
		}, []string{"stage"}),
		CommitConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "volunteerhub_commit_conflicts_total",
			Help: "Batches rejected because an attendee was concurrently registered",
		}),
		IndexDegradations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "volunteerhub_guardian_index_degradations_total",
			Help: "Check responses served without the owner index",
		}),
	}
}

func (m *Metrics) AddRegistrations(n int) {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Add(float64(n))
}

func (m *Metrics) IncCancellations() {
	if m == nil {
		return
	}
	m.Cancellations.Inc()
}

func (m *Metrics) IncDuplicateRejections() {
	if m == nil {
		return
	}
	m.DuplicateRejections.Inc()
}

// IncCapacityRejections records a capacity rejection at stage "pre" or
// "commit".
func (m *Metrics) IncCapacityRejections(stage string) {
	if m == nil {
		return
	}
	m.CapacityRejections.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncCommitConflicts() {
	if m == nil {
		return
	}
	m.CommitConflicts.Inc()
}

func (m *Metrics) IncIndexDegradations() {
	if m == nil {
		return
	}
	m.IndexDegradations.Inc()
}
