// Package metrics provides Prometheus exporters for application metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the intern log system.
var (
	// Counters.
	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_check_ins_total",
			Help: "Total number of attendance check-ins",
		},
		[]string{"status", "in_radius"},
	)

	CheckOutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_check_outs_total",
			Help: "Total number of attendance check-outs",
		},
	)

	ActivitiesLoggedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_logged_total",
			Help: "Total number of activities logged",
		},
		[]string{"category"},
	)

	BadgesAwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badges_awarded_total",
			Help: "Total number of badges awarded",
		},
		[]string{"badge_name"},
	)

	ReportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of reports generated",
		},
		[]string{"type", "ai_used"},
	)

	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total generative-language API calls",
		},
		[]string{"operation", "status"},
	)

	// Gauges.
	ActiveBadgeHolders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "active_badge_holders",
			Help: "Current number of users holding each badge",
		},
		[]string{"badge_name"},
	)

	SchedulerLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduler_last_run_timestamp",
			Help: "Unix timestamp of last scheduler run",
		},
	)

	// Scheduler counters and histograms.
	SchedulerJobsRunTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_run_total",
			Help: "Total scheduler job executions",
		},
		[]string{"job", "status"},
	)

	SchedulerJobDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_job_duration_seconds",
			Help:    "Time taken to execute scheduler jobs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8), // 1s to ~128s
		},
		[]string{"job"},
	)

	AIRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "Generative-language API call latency",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
		},
		[]string{"operation"},
	)
)

// RecordCheckIn increments the check-in counter.
func RecordCheckIn(status string, inRadius bool) {
	label := "false"
	if inRadius {
		label = "true"
	}
	CheckInsTotal.WithLabelValues(status, label).Inc()
}

// RecordCheckOut increments the check-out counter.
func RecordCheckOut() {
	CheckOutsTotal.Inc()
}

// RecordActivityLogged increments the activity counter.
func RecordActivityLogged(category string) {
	ActivitiesLoggedTotal.WithLabelValues(category).Inc()
}

// RecordBadgeAwarded increments the badge-award counter.
func RecordBadgeAwarded(badgeName string) {
	BadgesAwardedTotal.WithLabelValues(badgeName).Inc()
}

// SetActiveBadgeHolders sets the holder gauge for a badge.
func SetActiveBadgeHolders(badgeName string, count int) {
	ActiveBadgeHolders.WithLabelValues(badgeName).Set(float64(count))
}

// RecordReportGenerated increments the report counter.
func RecordReportGenerated(reportType string, aiUsed bool) {
	label := "false"
	if aiUsed {
		label = "true"
	}
	ReportsGeneratedTotal.WithLabelValues(reportType, label).Inc()
}

// RecordAIRequest increments the AI request counter.
func RecordAIRequest(operation, status string) {
	AIRequestsTotal.WithLabelValues(operation, status).Inc()
}

// ObserveAIRequestDuration records AI call latency.
func ObserveAIRequestDuration(operation string, seconds float64) {
	AIRequestDurationSeconds.WithLabelValues(operation).Observe(seconds)
}

// RecordSchedulerJobRun increments scheduler job counters.
func RecordSchedulerJobRun(job, status string) {
	SchedulerJobsRunTotal.WithLabelValues(job, status).Inc()
}

// ObserveSchedulerJobDuration records scheduler job duration.
func ObserveSchedulerJobDuration(job string, seconds float64) {
	SchedulerJobDurationSeconds.WithLabelValues(job).Observe(seconds)
}

// SetSchedulerLastRun updates the last-run timestamp gauge.
func SetSchedulerLastRun() {
	SchedulerLastRunTimestamp.Set(float64(time.Now().Unix()))
}
