package observability

import (
	"net/http"

	"github.com/aretw0/functree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records generation activity in Prometheus collectors.
// Collectors are safe for concurrent use, so one Metrics can observe many generators.
type Metrics struct {
	registry  *prometheus.Registry
	nodes     *prometheus.CounterVec
	trees     *prometheus.CounterVec
	treeSize  *prometheus.HistogramVec
	treeDepth *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them in a dedicated registry,
// together with the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "functree_nodes_total",
				Help: "Total number of nodes built, by kind",
			},
			[]string{"preset", "kind"},
		),
		trees: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "functree_trees_total",
				Help: "Total number of tree builds, by result",
			},
			[]string{"preset", "result"},
		),
		treeSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "functree_tree_nodes",
				Help:    "Number of nodes per generated tree",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"preset"},
		),
		treeDepth: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "functree_tree_depth",
				Help:    "Depth of generated trees",
				Buckets: prometheus.LinearBuckets(0, 1, 8),
			},
			[]string{"preset"},
		),
	}

	m.registry.MustRegister(
		m.nodes, m.trees, m.treeSize, m.treeDepth,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns generation hooks that feed the collectors.
func (m *Metrics) Hooks() domain.GenerationHooks {
	return domain.GenerationHooks{
		OnNode: func(e *domain.NodeEvent) {
			m.nodes.WithLabelValues(e.Preset, e.Kind.String()).Inc()
		},
		OnTree: func(e *domain.TreeEvent) {
			if e.Err != nil {
				m.trees.WithLabelValues(e.Preset, "error").Inc()
				return
			}
			m.trees.WithLabelValues(e.Preset, "ok").Inc()
			m.treeSize.WithLabelValues(e.Preset).Observe(float64(e.Stats.Nodes))
			m.treeDepth.WithLabelValues(e.Preset).Observe(float64(e.Stats.Depth))
		},
	}
}

// Registry exposes the underlying registry, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
