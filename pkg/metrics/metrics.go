package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Activity metrics
	ActivityInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyio_activity_invocations_total",
			Help: "Total number of activity invocations by activity and outcome",
		},
		[]string{"activity", "outcome"},
	)

	ActivityDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flyio_activity_duration_seconds",
			Help:    "Activity invocation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"activity"},
	)

	// Provider API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyio_api_requests_total",
			Help: "Total number of Fly API requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flyio_api_request_duration_seconds",
			Help:    "Fly API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Reconciliation metrics
	MachineCreateConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flyio_machine_create_conflicts_total",
			Help: "Total number of machine creations resolved through a name conflict",
		},
	)

	IPReleasesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flyio_ip_releases_total",
			Help: "Total number of redundant IP assignments released during reconciliation",
		},
	)

	// Docker CLI metrics
	DockerCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyio_docker_commands_total",
			Help: "Total number of docker CLI invocations by subcommand and outcome",
		},
		[]string{"subcommand", "outcome"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(ActivityInvocationsTotal)
	prometheus.MustRegister(ActivityDuration)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(MachineCreateConflictsTotal)
	prometheus.MustRegister(IPReleasesTotal)
	prometheus.MustRegister(DockerCommandsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures elapsed time for histogram observations
type Timer struct {
	start time.Time
}

// NewTimer starts a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time in the given histogram
func (t *Timer) ObserveDuration(histogram prometheus.Observer) {
	histogram.Observe(time.Since(t.start).Seconds())
}
