package metrics

import (
	"testing"
)

func TestNewRegistryRegistersAllMetrics(t *testing.T) {
	r := NewRegistry()

	r.GraphVertices.Set(4)
	r.GraphEdges.Set(3)
	r.GraphDedupHits.Inc()
	r.NetworkFaces.Set(6)
	r.NetworkCells.Set(1)
	r.NetworkLevels.Set(2)
	r.NetworkWarnings.WithLabelValues("open_region").Inc()
	r.FacesRejected.Inc()
	r.ElementsBuilt.WithLabelValues("beam").Add(2)
	r.ElementsSkipped.WithLabelValues("unclassified").Inc()
	r.InteractionsResolved.WithLabelValues("pinned_joint").Add(2)
	r.StageDuration.WithLabelValues("graph").Observe(0.01)
	r.BuildsTotal.WithLabelValues("success").Inc()

	families, err := r.Prometheus().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	want := map[string]bool{
		"gridframe_graph_vertices_total":        false,
		"gridframe_graph_edges_total":           false,
		"gridframe_network_cells_total":         false,
		"gridframe_elements_built_total":        false,
		"gridframe_interactions_resolved_total": false,
		"gridframe_stage_duration_seconds":      false,
		"gridframe_builds_total":                false,
	}
	for _, mf := range families {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric %s not gathered", name)
		}
	}
}

// NewRegistry must be callable repeatedly: each registry is isolated, so
// parallel builds never collide on registration.
func TestRegistriesAreIsolated(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.GraphVertices.Set(10)
	b.GraphVertices.Set(20)

	families, err := a.Prometheus().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "gridframe_graph_vertices_total" {
			if v := mf.GetMetric()[0].GetGauge().GetValue(); v != 10 {
				t.Errorf("gauge = %v, want 10", v)
			}
		}
	}
}
