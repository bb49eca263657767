package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes, used as the "outcome" label.
const (
	OutcomeSuccess       = "success"
	OutcomeNotConfigured = "not_configured"
	OutcomeEmpty         = "empty_response"
	OutcomeMalformed     = "malformed_response"
	OutcomeFailed        = "failed"
)

var (
	// Model calls can take tens of seconds with three images attached.
	GenerationBuckets = []float64{0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89}

	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_generation_total",
			Help: "Total number of profile generation calls by outcome",
		},
		[]string{"outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_generation_duration_seconds",
			Help:    "Profile generation call duration in seconds",
			Buckets: GenerationBuckets,
		},
		[]string{"outcome"},
	)

	ImagesAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interview_images_accepted_total",
			Help: "Total number of image files attached to interviews",
		},
	)

	ImagesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_images_rejected_total",
			Help: "Total number of image files not attached, by reason",
		},
		[]string{"reason"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interview_sessions_active",
			Help: "Number of interview sessions currently held in memory",
		},
	)
)
