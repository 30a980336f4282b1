package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all build pipeline metrics. Batch runners expose the
// underlying prometheus registry; single-shot builds can ignore it.
type Registry struct {
	registry *prometheus.Registry

	// Graph stage
	GraphVertices    prometheus.Gauge
	GraphEdges       prometheus.Gauge
	GraphDedupHits   prometheus.Counter
	GraphDegenerates prometheus.Counter

	// CellNetwork stage
	NetworkFaces    prometheus.Gauge
	NetworkCells    prometheus.Gauge
	NetworkLevels   prometheus.Gauge
	NetworkWarnings *prometheus.CounterVec
	FacesRejected   prometheus.Counter

	// Element stage
	ElementsBuilt   *prometheus.CounterVec
	ElementsSkipped *prometheus.CounterVec

	// Interaction stage
	InteractionsResolved *prometheus.CounterVec

	// Pipeline
	StageDuration *prometheus.HistogramVec
	BuildsTotal   *prometheus.CounterVec
}

// NewRegistry creates a registry with all pipeline metrics registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initGraphMetrics()
	r.initNetworkMetrics()
	r.initElementMetrics()
	r.initPipelineMetrics()
	return r
}

// Prometheus returns the underlying registry for exposition.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initGraphMetrics() {
	r.GraphVertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridframe_graph_vertices_total",
			Help: "Deduplicated vertices in the connectivity graph",
		},
	)
	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridframe_graph_edges_total",
			Help: "Edges in the connectivity graph",
		},
	)
	r.GraphDedupHits = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "gridframe_graph_dedup_hits_total",
			Help: "Endpoints matched to an existing vertex within tolerance",
		},
	)
	r.GraphDegenerates = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "gridframe_graph_degenerate_segments_total",
			Help: "Segments rejected because both endpoints collapsed to one vertex",
		},
	)
}

func (r *Registry) initNetworkMetrics() {
	r.NetworkFaces = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridframe_network_faces_total",
			Help: "Faces in the cell network",
		},
	)
	r.NetworkCells = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridframe_network_cells_total",
			Help: "Closed cells inferred from the face set",
		},
	)
	r.NetworkLevels = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridframe_network_levels_total",
			Help: "Storey levels inferred from vertex elevations",
		},
	)
	r.NetworkWarnings = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridframe_network_warnings_total",
			Help: "Non-fatal classification ambiguities by kind",
		},
		[]string{"kind"},
	)
	r.FacesRejected = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "gridframe_network_faces_rejected_total",
			Help: "Input faces rejected for planarity violations",
		},
	)
}

func (r *Registry) initElementMetrics() {
	r.ElementsBuilt = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridframe_elements_built_total",
			Help: "Elements generated by the factory",
		},
		[]string{"kind"},
	)
	r.ElementsSkipped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridframe_elements_skipped_total",
			Help: "Members skipped by the factory",
		},
		[]string{"reason"},
	)
	r.InteractionsResolved = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridframe_interactions_resolved_total",
			Help: "Interactions resolved between adjacent elements",
		},
		[]string{"kind"},
	)
}

func (r *Registry) initPipelineMetrics() {
	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridframe_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"stage"},
	)
	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridframe_builds_total",
			Help: "Model builds by outcome",
		},
		[]string{"status"},
	)
}
