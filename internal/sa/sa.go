// Package sa adapts simulated annealing to the schedule domain: the
// Metropolis criterion walks one cell-level perturbation at a time instead
// of flow-shop job permutations.
package sa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"shiftgen/internal/opt"
	"shiftgen/internal/schedule"
)

// Solver is the simulated-annealing implementation of opt.Optimizer.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New returns a validated SA solver bound to an already-seeded RNG.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("sa: rng must not be nil")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve anneals a single schedule towards lower penalty, accepting
// worsening moves with Metropolis probability exp(-delta/T) and cooling T
// by Alpha each iteration until FinalTemp or the iteration budget is hit.
func (s *Solver) Solve(ctx context.Context, problem *schedule.Problem) (opt.Result, error) {
	start := time.Now()

	if problem == nil {
		return opt.Result{}, fmt.Errorf("sa: problem must not be nil")
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("sa: rng must not be nil")
	}

	cells := problem.Staff() * problem.Days()
	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerCell * cells
	}

	curr := schedule.RandomSchedule(problem, s.Rng)
	cand := curr.Clone()

	currCost := schedule.Evaluate(problem, curr)
	bestCost := currCost
	best := curr.Clone()

	evals := 1
	T := s.Cfg.InitialTemp

	iter := 0
	for ; iter < maxIter && T > s.Cfg.FinalTemp; iter++ {
		if err := ctx.Err(); err != nil {
			return toOptResult(best, bestCost, evals, iter, time.Since(start),
				map[string]any{"stopped": "context", "T": T}), err
		}

		cand.CopyFrom(curr)
		switch s.Cfg.Neighborhood {
		case NeighborhoodSwap:
			neighborSwap(problem, cand, s.Rng)
		default:
			neighborCell(problem, cand, s.Rng)
		}

		candCost := schedule.Evaluate(problem, cand)
		evals++

		delta := candCost - currCost
		accept := delta <= 0
		if !accept {
			p := math.Exp(-float64(delta) / T)
			accept = s.Rng.Float64() < p
		}

		if accept {
			curr, cand = cand, curr
			currCost = candCost
			if currCost < bestCost {
				bestCost = currCost
				best.CopyFrom(curr)
			}
		}

		T *= s.Cfg.Alpha
	}

	return toOptResult(best, bestCost, evals, iter, time.Since(start), map[string]any{
		"initial_temp": s.Cfg.InitialTemp,
		"final_temp":   s.Cfg.FinalTemp,
		"alpha":        s.Cfg.Alpha,
		"neighborhood": string(s.Cfg.Neighborhood),
	}), nil
}

func toOptResult(best *schedule.Schedule, penalty, evals, iters int, dur time.Duration, meta map[string]any) opt.Result {
	return opt.Result{
		RunID:       uuid.New(),
		Schedule:    best.Clone(),
		Score:       -penalty,
		Penalty:     penalty,
		Evaluations: evals,
		Iterations:  iters,
		Duration:    dur,
		Meta:        meta,
	}
}

// neighborCell redraws one random cell's shift, respecting that cell's
// preference constraint.
func neighborCell(problem *schedule.Problem, s *schedule.Schedule, rng *rand.Rand) {
	i := rng.Intn(s.Staff())
	d := rng.Intn(s.Days())
	s.Set(i, d, schedule.RandomCell(problem, i, d, rng))
}

// neighborSwap exchanges the shifts of two cells on the same staff row.
func neighborSwap(problem *schedule.Problem, s *schedule.Schedule, rng *rand.Rand) {
	if s.Days() < 2 {
		neighborCell(problem, s, rng)
		return
	}
	i := rng.Intn(s.Staff())
	d1 := rng.Intn(s.Days())
	d2 := rng.Intn(s.Days() - 1)
	if d2 >= d1 {
		d2++
	}
	row := s.Row(i)
	row[d1], row[d2] = row[d2], row[d1]
}
