package service

import (
	"time"

	"proxyconfig/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Refresh cycle kinds used as the "kind" label.
const (
	KindRegistry   = "registry"
	KindSystemInfo = "system_info"
)

const metricsNamespace = "proxyconfig"

// Metrics holds the Prometheus collectors of the refresh loops and the classifier.
type Metrics struct {
	refreshTotal          *prometheus.CounterVec
	lastSuccess           *prometheus.GaugeVec
	enrichedNodes         prometheus.Gauge
	skippedNodes          prometheus.Counter
	classificationDropped *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Panics if they are already registered.
//
// Called once from cmd/main with prometheus.DefaultRegisterer and from tests with a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		refreshTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_total",
			Help:      "Refresh cycles by kind and result.",
		}, []string{"kind", "result"}),
		lastSuccess: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful refresh cycle by kind.",
		}, []string{"kind"}),
		enrichedNodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "enriched_nodes",
			Help:      "Resource nodes with system info in the latest collection.",
		}),
		skippedNodes: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "enrichment_skipped_total",
			Help:      "Resource nodes skipped during system info collection.",
		}),
		classificationDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "classification_dropped_total",
			Help:      "Records matching no tier by instance type.",
		}, []string{"instance_type"}),
	}
}

func (m *Metrics) refreshSucceeded(kind string, at time.Time) {
	m.refreshTotal.WithLabelValues(kind, "success").Inc()
	m.lastSuccess.WithLabelValues(kind).Set(float64(at.Unix()))
}

func (m *Metrics) refreshFailed(kind string) {
	m.refreshTotal.WithLabelValues(kind, "failure").Inc()
}

func (m *Metrics) refreshSkipped(kind string) {
	m.refreshTotal.WithLabelValues(kind, "skipped").Inc()
}

func (m *Metrics) nodesEnriched(n int) {
	m.enrichedNodes.Set(float64(n))
}

func (m *Metrics) nodeSkipped() {
	m.skippedNodes.Inc()
}

func (m *Metrics) recordsDropped(it domain.InstanceType, n int) {
	m.classificationDropped.WithLabelValues(string(it)).Add(float64(n))
}
