package metrics

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects run metrics on a private registry
type Recorder struct {
	registry     *prometheus.Registry
	fetches      *prometheus.CounterVec
	repositories prometheus.Counter
	lastSuccess  prometheus.Gauge
}

// New creates a Recorder with all collectors registered
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "status_dashboard_fetch_total",
			Help: "Metadata fetches by fact and outcome",
		}, []string{"fact", "outcome"}),
		repositories: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "status_dashboard_repositories_total",
			Help: "Repositories processed",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "status_dashboard_last_success_timestamp_seconds",
			Help: "Unix time of the last successfully written snapshot",
		}),
	}

	r.registry.MustRegister(r.fetches, r.repositories, r.lastSuccess)
	return r
}

// RecordFetch counts one fetch outcome. Safe for concurrent use.
func (r *Recorder) RecordFetch(fact model.Fact, outcome model.Outcome) {
	r.fetches.WithLabelValues(string(fact), string(outcome)).Inc()
}

// RecordRepository counts one processed repository
func (r *Recorder) RecordRepository() {
	r.repositories.Inc()
}

// MarkSuccess records the completion time of a successful run
func (r *Recorder) MarkSuccess(t time.Time) {
	r.lastSuccess.Set(float64(t.Unix()))
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics in the node exporter textfile format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return goerr.Wrap(err, "failed to write metrics textfile", goerr.V("path", path))
	}
	return nil
}
