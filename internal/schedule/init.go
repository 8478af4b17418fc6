package schedule

import "math/rand"

// RandomCell draws a shift code for (staff, day), conditioned on problem's
// preference at that cell: NG forces rest, NO_NIGHT samples {rest,
// morning}, NO_MORNING samples {rest, night}, and an unconstrained cell
// samples uniformly from all three.
func RandomCell(problem *Problem, staff, day int, rng *rand.Rand) ShiftCode {
	kind, ok := problem.Preference(staff, day)
	if !ok {
		return ShiftCode(rng.Intn(3))
	}
	switch kind {
	case PrefNG:
		return Rest
	case PrefNoNight:
		if rng.Intn(2) == 0 {
			return Rest
		}
		return Morning
	case PrefNoMorning:
		if rng.Intn(2) == 0 {
			return Rest
		}
		return Night
	default:
		return ShiftCode(rng.Intn(3))
	}
}

// AllowedCodes returns the shift codes a cell's preference permits, in
// ascending order. Used by solvers (aco, pso) that need the full feasible
// set rather than a single sampled draw.
func AllowedCodes(problem *Problem, staff, day int) []ShiftCode {
	kind, ok := problem.Preference(staff, day)
	if !ok {
		return []ShiftCode{Rest, Morning, Night}
	}
	switch kind {
	case PrefNG:
		return []ShiftCode{Rest}
	case PrefNoNight:
		return []ShiftCode{Rest, Morning}
	case PrefNoMorning:
		return []ShiftCode{Rest, Night}
	default:
		return []ShiftCode{Rest, Morning, Night}
	}
}

// RandomSchedule builds a fresh preference-aware random Schedule for problem.
func RandomSchedule(problem *Problem, rng *rand.Rand) *Schedule {
	s := NewSchedule(problem.Staff(), problem.Days())
	for i := 0; i < problem.Staff(); i++ {
		for d := 0; d < problem.Days(); d++ {
			s.Set(i, d, RandomCell(problem, i, d, rng))
		}
	}
	return s
}

// FillRandom overwrites every cell of s in place, the same way RandomSchedule
// does, without allocating — used by the GA driver to fill its
// pre-allocated initial population.
func FillRandom(problem *Problem, s *Schedule, rng *rand.Rand) {
	for i := 0; i < problem.Staff(); i++ {
		for d := 0; d < problem.Days(); d++ {
			s.Set(i, d, RandomCell(problem, i, d, rng))
		}
	}
}
