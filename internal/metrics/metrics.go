// Package metrics provides Prometheus instrumentation for the matching
// engine: swipe throughput, matches made, and candidate query latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// SwipesTotal counts processed swipe decisions, labeled by action.
	SwipesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swolemates_swipes_total",
		Help: "Total number of swipe decisions processed",
	}, []string{"action"})

	// MatchesTotal counts mutual matches detected.
	MatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "swolemates_matches_total",
		Help: "Total number of mutual matches detected",
	})

	// CandidateQueryDuration records the end-to-end candidate ranking latency.
	CandidateQueryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "swolemates_candidate_query_seconds",
		Help:    "Candidate retrieval and ranking latency in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	// NotificationsTotal counts notification dispatch outcomes, labeled by
	// result: "delivered", "parked", or "dropped".
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swolemates_notifications_total",
		Help: "Total number of notification dispatch attempts by outcome",
	}, []string{"result"})
)

// Register installs all collectors on the default registry.
func Register() {
	prometheus.MustRegister(
		SwipesTotal,
		MatchesTotal,
		CandidateQueryDuration,
		NotificationsTotal,
	)
}

// Handler exposes the default registry as a fasthttp handler.
func Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
}
