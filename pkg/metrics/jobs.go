package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AdminJobMetrics records metadata for admin-triggered jobs such as the
// profit backfill and the bulk commission reset.
type AdminJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	rows     *prometheus.CounterVec
}

// NewAdminJobMetrics registers the job metrics on the provided registerer.
func NewAdminJobMetrics(reg prometheus.Registerer) *AdminJobMetrics {
	if reg == nil {
		return &AdminJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_job_duration_seconds",
		Help:    "Duration of admin jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_job_success",
		Help: "Successful admin job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_job_failure",
		Help: "Failed admin job executions.",
	}, []string{"job"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_job_rows_total",
		Help: "Rows written by admin job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure, rows)
	return &AdminJobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		rows:     rows,
	}
}

// ObserveDuration records the duration for the named job.
func (m *AdminJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (m *AdminJobMetrics) IncSuccess(job string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (m *AdminJobMetrics) IncFailure(job string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// AddRows accumulates the number of rows a job wrote.
func (m *AdminJobMetrics) AddRows(job string, n int) {
	if m == nil || m.rows == nil || n <= 0 {
		return
	}
	m.rows.WithLabelValues(normalizeLabel(job)).Add(float64(n))
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
