package chunker

import (
	"math"
	"testing"
)

func TestQuantileEdges(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	edges := quantileEdges(values, 5)

	want := []float64{1, 2.8, 4.6, 6.4, 8.2, 10}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
	for i := range want {
		if math.Abs(edges[i]-want[i]) > 1e-9 {
			t.Errorf("edge %d = %v, want %v", i, edges[i], want[i])
		}
	}

	cases := map[float64]int{1: 0, 2.8: 1, 3: 1, 6.4: 3, 8: 3, 9: 4, 10: 4}
	for v, bin := range cases {
		if got := binIndex(edges, v); got != bin {
			t.Errorf("binIndex(%v) = %d, want %d", v, got, bin)
		}
	}
}

func TestQuantileEdgesMergesDuplicates(t *testing.T) {
	edges := quantileEdges([]float64{1, 1, 1, 1, 2}, 5)
	if len(edges) != 3 {
		t.Fatalf("expected 3 edges after merging, got %v", edges)
	}
	if binIndex(edges, 1) != 0 || binIndex(edges, 2) != 1 {
		t.Errorf("unexpected bins for %v", edges)
	}
}

func TestQuantileEdgesConstant(t *testing.T) {
	edges := quantileEdges([]float64{7, 7, 7}, 5)
	if len(edges) != 2 || !math.IsInf(edges[0], -1) || !math.IsInf(edges[1], 1) {
		t.Fatalf("constant input should give one unbounded bin, got %v", edges)
	}
	if binIndex(edges, 7) != 0 {
		t.Error("constant values belong to the first bin")
	}
}

func TestQuantileEdgesEmpty(t *testing.T) {
	if edges := quantileEdges(nil, 5); edges != nil {
		t.Errorf("expected no edges, got %v", edges)
	}
}
