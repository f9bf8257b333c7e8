package insights

import (
	"math"
	"sort"
)

// ShannonDiversity calculates the Shannon index (natural log) of a distribution
// Returns 0 for an empty or single-valued distribution
func ShannonDiversity(counts map[string]int) float64 {
	// Sum in key order so the result does not depend on map iteration
	keys := make([]string, 0, len(counts))
	total := 0
	for k, n := range counts {
		if n > 0 {
			keys = append(keys, k)
			total += n
		}
	}
	if total == 0 {
		return 0
	}
	sort.Strings(keys)

	var diversity float64
	for _, k := range keys {
		p := float64(counts[k]) / float64(total)
		diversity -= p * math.Log(p)
	}

	return math.Round(diversity*10000) / 10000
}
