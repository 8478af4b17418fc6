package ga

import (
	"math/rand"

	"shiftgen/internal/schedule"
)

// tournamentSelect implements binary/k-way tournament selection: draw
// candidates uniformly and return the index of the one with the lowest
// penalty. Ties are broken by whichever draw happened first, which is
// deterministic given the RNG stream.
func tournamentSelect(penalties []int, tournamentSize int, rng *rand.Rand) int {
	best := rng.Intn(len(penalties))
	bestPenalty := penalties[best]
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(penalties))
		if penalties[cand] < bestPenalty {
			best = cand
			bestPenalty = penalties[cand]
		}
	}
	return best
}

// crossoverRowWise implements uniform row-wise crossover: the child takes
// each staff's whole row from parent a with probability 0.5, otherwise
// from parent b. A staff member's week is the unit of meaning, so
// splitting within a row would shatter hard-won consecutive-day patterns.
func crossoverRowWise(a, b, child *schedule.Schedule, rng *rand.Rand) {
	for i := 0; i < child.Staff(); i++ {
		src := a
		if rng.Intn(2) == 1 {
			src = b
		}
		copy(child.Row(i), src.Row(i))
	}
}

// mutateCell implements per-cell, preference-aware mutation: visit every
// cell with probability p_mut; when chosen, redraw its value the same way
// RandomCell does, respecting any preference in that cell so mutation
// never regenerates trivially-invalid children.
func mutateCell(problem *schedule.Problem, s *schedule.Schedule, mutationRate float64, rng *rand.Rand) {
	for i := 0; i < s.Staff(); i++ {
		for d := 0; d < s.Days(); d++ {
			if rng.Float64() < mutationRate {
				s.Set(i, d, schedule.RandomCell(problem, i, d, rng))
			}
		}
	}
}
