package model

import "sort"

// GenerationStats summarises the covered areas of one generation.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Sum        int     `json:"sum"`
	Average    float64 `json:"average"`
	Median     float64 `json:"median"`
	Max        int     `json:"max"`
	Min        int     `json:"min"`
}

// ComputeStats builds the statistics for one generation's covered areas.
// An empty slice yields zeroed statistics.
func ComputeStats(generation int, covered []int) GenerationStats {
	st := GenerationStats{Generation: generation}
	if len(covered) == 0 {
		return st
	}

	sorted := make([]int, len(covered))
	copy(sorted, covered)
	sort.Ints(sorted)

	for _, c := range sorted {
		st.Sum += c
	}
	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	st.Average = float64(st.Sum) / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		st.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	} else {
		st.Median = float64(sorted[mid])
	}
	return st
}

// CoveragePercent returns covered as a percentage of total, or 0 when total
// is not positive.
func CoveragePercent(covered, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}
