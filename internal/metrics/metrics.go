// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "archia"

// Metrics groups HTTP and domain collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthAttempts    *prometheus.CounterVec
	StoriesCreated  prometheus.Counter
	LikesTotal      prometheus.Counter
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		AuthAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Registration and login attempts by outcome.",
		}, []string{"operation", "outcome"}),
		StoriesCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stories_created_total",
			Help:      "Stories created.",
		}),
		LikesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "story_likes_total",
			Help:      "Likes applied to stories.",
		}),
	}
}

// AuthAttempt records one auth operation outcome. A nil receiver is a no-op.
func (m *Metrics) AuthAttempt(operation, outcome string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(operation, outcome).Inc()
}

// StoryCreated records a created story. A nil receiver is a no-op.
func (m *Metrics) StoryCreated() {
	if m == nil {
		return
	}
	m.StoriesCreated.Inc()
}

// Liked records an applied like. A nil receiver is a no-op.
func (m *Metrics) Liked() {
	if m == nil {
		return
	}
	m.LikesTotal.Inc()
}
