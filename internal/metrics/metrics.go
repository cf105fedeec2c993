// Package metrics exposes Prometheus instrumentation for the live sync layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SnapshotsDelivered counts full snapshots delivered by live collections.
	SnapshotsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aether_live_snapshots_total",
		Help: "Full snapshots delivered by live collections.",
	})

	// Mutations counts writes issued through the mutation facade, by entity
	// and outcome.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aether_mutations_total",
		Help: "Writes issued through the mutation facade.",
	}, []string{"entity", "outcome"})

	// WebsocketClients tracks currently connected live subscribers.
	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aether_websocket_clients",
		Help: "Currently connected websocket subscribers.",
	})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordMutation increments the mutation counter for entity with the outcome
// derived from err.
func RecordMutation(entity string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Mutations.WithLabelValues(entity, outcome).Inc()
}
