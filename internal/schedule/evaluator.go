package schedule

// Weight constants for the fitness evaluator. Exposed as named constants
// so weight tuning never requires hunting through the penalty loop.
const (
	WeightPreference  = 100 // per violated (staff, day) preference
	WeightCoverage    = 50  // per missing head, per day, per shift kind
	WeightConsecutive = 20  // per day beyond the 6-day run-length cap
	WeightPostNight   = 30  // per violated post-night rest check
	WeightImbalance   = 1   // per work-day absolute deviation from the mean
)

// maxConsecutiveRun is the longest run of non-rest days that accrues no
// penalty; the 7th and every day after it in an unbroken run does.
const maxConsecutiveRun = 6

// Breakdown carries the individual penalty components behind one
// Evaluate call, useful for tests and diagnostics without recomputing.
type Breakdown struct {
	Preference  int
	Coverage    int
	Consecutive int
	PostNight   int
	Imbalance   int
}

// Total sums the weighted components into the single penalty value
// Evaluate returns.
func (b Breakdown) Total() int {
	return b.Preference + b.Coverage + b.Consecutive + b.PostNight + b.Imbalance
}

// Evaluate computes the total penalty of schedule against problem. It is a
// pure function — safe to call concurrently on distinct (problem, schedule)
// pairs, and returns identical output for identical input. Lower is better;
// 0 is the unreachable ideal.
func Evaluate(problem *Problem, s *Schedule) int {
	return EvaluateBreakdown(problem, s).Total()
}

// EvaluateBreakdown is Evaluate with the penalty components broken out.
func EvaluateBreakdown(problem *Problem, s *Schedule) Breakdown {
	staff, days := problem.Staff(), problem.Days()

	var b Breakdown

	// 1. Preference violation.
	for i := 0; i < staff; i++ {
		for d := 0; d < days; d++ {
			kind, ok := problem.Preference(i, d)
			if !ok {
				continue
			}
			v := s.Get(i, d)
			violated := false
			switch kind {
			case PrefNG:
				violated = v != Rest
			case PrefNoNight:
				violated = v == Night
			case PrefNoMorning:
				violated = v == Morning
			}
			if violated {
				b.Preference += WeightPreference
			}
		}
	}

	// 2. Daily role-minimum shortfall, for each day and each of the two
	// staffed shift kinds.
	if problem.HasRoleMinima() {
		b.Coverage += roleCoverageShortfall(problem, s)
	} else {
		b.Coverage += globalCoverageShortfall(problem, s)
	}

	// 3. Consecutive-work overrun, per staff, over the whole horizon.
	for i := 0; i < staff; i++ {
		run := 0
		for d := 0; d < days; d++ {
			if s.Get(i, d).IsWorkDay() {
				run++
				if run > maxConsecutiveRun {
					b.Consecutive += WeightConsecutive
				}
			} else {
				run = 0
			}
		}
	}

	// 4. Insufficient rest after night: day d+1 and d+2 must not be morning.
	for i := 0; i < staff; i++ {
		for d := 0; d < days; d++ {
			if s.Get(i, d) != Night {
				continue
			}
			if d+1 < days && s.Get(i, d+1) == Morning {
				b.PostNight += WeightPostNight
			}
			if d+2 < days && s.Get(i, d+2) == Morning {
				b.PostNight += WeightPostNight
			}
		}
	}

	// 5. Workload imbalance: sum of |work_days_i - mean| across staff.
	workDays := make([]int, staff)
	total := 0
	for i := 0; i < staff; i++ {
		n := 0
		for d := 0; d < days; d++ {
			if s.Get(i, d).IsWorkDay() {
				n++
			}
		}
		workDays[i] = n
		total += n
	}
	mean := float64(total) / float64(staff)
	imbalance := 0.0
	for _, n := range workDays {
		diff := float64(n) - mean
		if diff < 0 {
			diff = -diff
		}
		imbalance += diff
	}
	b.Imbalance = int(imbalance) * WeightImbalance

	return b
}

func globalCoverageShortfall(problem *Problem, s *Schedule) int {
	staff, days := problem.Staff(), problem.Days()
	penalty := 0
	for d := 0; d < days; d++ {
		morning, night := 0, 0
		for i := 0; i < staff; i++ {
			switch s.Get(i, d) {
			case Morning:
				morning++
			case Night:
				night++
			}
		}
		penalty += shortfall(problem.CoverageMinimum("", Morning), morning) * WeightCoverage
		penalty += shortfall(problem.CoverageMinimum("", Night), night) * WeightCoverage
	}
	return penalty
}

func roleCoverageShortfall(problem *Problem, s *Schedule) int {
	days := problem.Days()
	penalty := 0
	for d := 0; d < days; d++ {
		counts := map[RoleTag]map[ShiftCode]int{}
		for i := 0; i < problem.Staff(); i++ {
			role := problem.Role(i)
			v := s.Get(i, d)
			if v == Rest {
				continue
			}
			if counts[role] == nil {
				counts[role] = map[ShiftCode]int{}
			}
			counts[role][v]++
		}
		for _, role := range KnownRoles {
			for _, k := range []ShiftCode{Morning, Night} {
				min := problem.CoverageMinimum(role, k)
				if min <= 0 {
					continue
				}
				penalty += shortfall(min, counts[role][k]) * WeightCoverage
			}
		}
	}
	return penalty
}

func shortfall(min, count int) int {
	if count >= min {
		return 0
	}
	return min - count
}
