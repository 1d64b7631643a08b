package chunker

import (
	"math"
	"sort"
)

// minEdgeGap is the width under which neighbouring bin edges are merged.
const minEdgeGap = 1e-8

// quantileEdges returns the bin edges of values split into n quantile bins.
// Edges closer than minEdgeGap to their predecessor are dropped, so fewer
// than n bins may result. Constant input yields a single unbounded bin.
func quantileEdges(values []float64, n int) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if sorted[0] == sorted[len(sorted)-1] {
		return []float64{math.Inf(-1), math.Inf(1)}
	}

	edges := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		e := percentile(sorted, float64(i)*100/float64(n))
		if len(edges) > 0 && e-edges[len(edges)-1] <= minEdgeGap {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// binIndex is the number of inner edges at or below v, clipped to the
// valid bin range.
func binIndex(edges []float64, v float64) int {
	bins := len(edges) - 1
	if bins <= 1 {
		return 0
	}
	inner := edges[1 : len(edges)-1]
	idx := sort.Search(len(inner), func(i int) bool { return inner[i] > v })
	return min(max(idx, 0), bins-1)
}
