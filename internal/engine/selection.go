package engine

import (
	"math/rand"

	"github.com/piwi3910/BrickFill/internal/tiling"
)

// rouletteIndex picks an index with probability proportional to covered
// area, skipping skip. When every candidate has zero coverage the pick is
// uniform.
func rouletteIndex(pop Population, skip int, rng *rand.Rand) int {
	total := 0
	for i, l := range pop {
		if i != skip {
			total += l.CoveredArea()
		}
	}

	if total == 0 {
		n := len(pop)
		if skip >= 0 && skip < n {
			n--
		}
		k := rng.Intn(n)
		for i := range pop {
			if i == skip {
				continue
			}
			if k == 0 {
				return i
			}
			k--
		}
	}

	r := rng.Intn(total)
	for i, l := range pop {
		if i == skip {
			continue
		}
		if r < l.CoveredArea() {
			return i
		}
		r -= l.CoveredArea()
	}
	return len(pop) - 1
}

// selectParents draws two distinct members by roulette. The population must
// hold at least two layouts.
func selectParents(pop Population, rng *rand.Rand) (*tiling.Layout, *tiling.Layout) {
	i := rouletteIndex(pop, -1, rng)
	j := rouletteIndex(pop, i, rng)
	return pop[i], pop[j]
}
