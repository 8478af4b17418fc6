// Package aco adapts ant colony optimisation to the schedule domain: one
// pheromone trail per (staff, day, shiftCode) triple replaces the
// permutation-edge trails of the flow-shop original. Each ant constructs a
// full schedule independently, one cell at a time, with no ordering
// dependency between cells.
package aco

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

const numCodes = 3

// Solver is the ant-colony-optimisation implementation of opt.Optimizer.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("aco: rng must not be nil")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

func (s *Solver) Solve(ctx context.Context, problem *schedule.Problem) (opt.Result, error) {
	startTime := time.Now()

	if problem == nil {
		return opt.Result{}, fmt.Errorf("aco: problem must not be nil")
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("aco: rng must not be nil")
	}

	staff, days := problem.Staff(), problem.Days()
	cells := staff * days

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerCell * cells
	}

	ants := s.Cfg.Ants
	if ants < 1 {
		ants = 1
	}

	// Feasible codes per cell, fixed for the whole run by the cell's
	// preference constraint.
	allowed := make([][]schedule.ShiftCode, cells)
	for c := 0; c < cells; c++ {
		allowed[c] = schedule.AllowedCodes(problem, c/days, c%days)
	}

	// Pheromone trail tau[cell*numCodes+code]; uniform heuristic
	// desirability since every candidate code is already preference-feasible.
	tau := make([]float64, cells*numCodes)
	for i := range tau {
		tau[i] = s.Cfg.Tau0
	}

	cand := schedule.NewSchedule(staff, days)
	best := schedule.NewSchedule(staff, days)
	bestCost := math.MaxInt
	evals := 0

	alpha := s.Cfg.Alpha
	beta := s.Cfg.Beta
	rho := s.Cfg.Rho
	Q := s.Cfg.Q

	weights := make([]float64, numCodes)

	iter := 0
	for ; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return toOptResult(best, bestCost, evals, iter, time.Since(startTime),
				map[string]any{"stopped": "context"}), err
		}

		iterBest := schedule.NewSchedule(staff, days)
		iterBestCost := math.MaxInt

		for a := 0; a < ants; a++ {
			constructSchedule(cand, allowed, tau, alpha, beta, weights, s.Rng, days)

			cost := schedule.Evaluate(problem, cand)
			evals++

			if cost < iterBestCost {
				iterBestCost = cost
				iterBest.CopyFrom(cand)
			}
			if cost < bestCost {
				bestCost = cost
				best.CopyFrom(cand)
			}
		}

		ev := 1.0 - rho
		for i := range tau {
			tau[i] *= ev
			if tau[i] < 1e-12 {
				tau[i] = 1e-12
			}
		}

		if iterBestCost < math.MaxInt {
			dep := Q / float64(iterBestCost+1)
			depositPath(tau, iterBest, days, dep)
		}
	}

	return toOptResult(best, bestCost, evals, iter, time.Since(startTime), map[string]any{
		"ants":  ants,
		"alpha": alpha,
		"beta":  beta,
		"rho":   rho,
		"Q":     Q,
		"tau0":  s.Cfg.Tau0,
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

// constructSchedule builds one ant's schedule, choosing each cell's shift
// code stochastically by the standard ACO weighting tau^alpha * eta^beta
// restricted to that cell's feasible codes.
func constructSchedule(out *schedule.Schedule, allowed [][]schedule.ShiftCode, tau []float64, alpha, beta float64, weights []float64, rng *rand.Rand, days int) {
	for cell, codes := range allowed {
		staffIdx, day := cell/days, cell%days

		sumW := 0.0
		for i, code := range codes {
			t := tau[cell*numCodes+int(code)]
			w := fastPow(t, alpha) * fastPow(1.0, beta)
			weights[i] = w
			sumW += w
		}

		var chosen schedule.ShiftCode
		if sumW <= 0 {
			chosen = codes[rng.Intn(len(codes))]
		} else {
			r := rng.Float64() * sumW
			acc := 0.0
			chosen = codes[len(codes)-1]
			for i, code := range codes {
				acc += weights[i]
				if r <= acc {
					chosen = code
					break
				}
			}
		}

		out.Set(staffIdx, day, chosen)
	}
}

// depositPath reinforces the trail for every cell of s by delta,
// proportional to how good s was.
func depositPath(tau []float64, s *schedule.Schedule, days int, delta float64) {
	for i := 0; i < s.Staff(); i++ {
		row := s.Row(i)
		for d := 0; d < days; d++ {
			cell := i*days + d
			tau[cell*numCodes+int(row[d])] += delta
		}
	}
}

func fastPow(x, p float64) float64 {
	if p == 0 {
		return 1.0
	}
	if p == 1 {
		return x
	}
	if p == 2 {
		return x * x
	}
	return math.Pow(x, p)
}
