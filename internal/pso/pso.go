// Package pso adapts particle swarm optimisation to the schedule domain.
// Each particle carries one continuous "preference score" per
// (staff, day, shiftCode) triple restricted to that cell's feasible codes;
// a schedule is decoded by taking the arg-max score per cell.
package pso

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

// Solver is the particle-swarm implementation of opt.Optimizer.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("pso: rng must not be nil")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

type particle struct {
	pos []float64
	vel []float64

	pBestPos  []float64
	pBestCost int

	decodeScratch *schedule.Schedule
}

func (s *Solver) Solve(ctx context.Context, problem *schedule.Problem) (opt.Result, error) {
	start := time.Now()

	if problem == nil {
		return opt.Result{}, fmt.Errorf("pso: problem must not be nil")
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("pso: rng must not be nil")
	}

	staff, days := problem.Staff(), problem.Days()
	cells := staff * days
	dims := cells * numCodes

	allowed := make([][]schedule.ShiftCode, cells)
	for c := 0; c < cells; c++ {
		allowed[c] = schedule.AllowedCodes(problem, c/days, c%days)
	}

	iters := s.Cfg.Iterations
	if iters <= 0 {
		iters = s.Cfg.IterationsPerCell * cells
	}

	ps := make([]particle, s.Cfg.Particles)
	for i := range ps {
		ps[i] = particle{
			pos:           make([]float64, dims),
			vel:           make([]float64, dims),
			pBestPos:      make([]float64, dims),
			pBestCost:     math.MaxInt,
			decodeScratch: schedule.NewSchedule(staff, days),
		}
	}

	posMin, posMax := s.Cfg.PosMin, s.Cfg.PosMax

	for i := range ps {
		for d := 0; d < dims; d++ {
			ps[i].pos[d] = posMin + s.Rng.Float64()*(posMax-posMin)
			if s.Cfg.VMax > 0 {
				ps[i].vel[d] = (s.Rng.Float64()*2 - 1) * s.Cfg.VMax
			} else {
				ps[i].vel[d] = (s.Rng.Float64()*2 - 1) * 0.1
			}
		}

		decodePosition(ps[i].pos, allowed, days, ps[i].decodeScratch)
		cost := schedule.Evaluate(problem, ps[i].decodeScratch)

		ps[i].pBestCost = cost
		copy(ps[i].pBestPos, ps[i].pos)
	}

	evals := s.Cfg.Particles

	gBestPos := make([]float64, dims)
	gBest := schedule.NewSchedule(staff, days)
	gBestCost := math.MaxInt

	for i := range ps {
		if ps[i].pBestCost < gBestCost {
			gBestCost = ps[i].pBestCost
			copy(gBestPos, ps[i].pBestPos)
			decodePosition(gBestPos, allowed, days, gBest)
		}
	}

	w, c1, c2 := s.Cfg.W, s.Cfg.C1, s.Cfg.C2
	vMax := s.Cfg.VMax

	iter := 0
	for ; iter < iters; iter++ {
		if err := ctx.Err(); err != nil {
			return toOptResult(gBest, gBestCost, evals, iter, time.Since(start),
				map[string]any{"stopped": "context"}), err
		}

		for i := range ps {
			p := &ps[i]

			for d := 0; d < dims; d++ {
				r1 := s.Rng.Float64()
				r2 := s.Rng.Float64()

				v := w*p.vel[d] +
					c1*r1*(p.pBestPos[d]-p.pos[d]) +
					c2*r2*(gBestPos[d]-p.pos[d])

				if vMax > 0 {
					if v > vMax {
						v = vMax
					} else if v < -vMax {
						v = -vMax
					}
				}
				p.vel[d] = v

				x := p.pos[d] + v
				if x < posMin {
					x = posMin
					p.vel[d] = 0
				} else if x > posMax {
					x = posMax
					p.vel[d] = 0
				}
				p.pos[d] = x
			}

			decodePosition(p.pos, allowed, days, p.decodeScratch)
			cost := schedule.Evaluate(problem, p.decodeScratch)
			evals++

			if cost < p.pBestCost {
				p.pBestCost = cost
				copy(p.pBestPos, p.pos)
			}

			if cost < gBestCost {
				gBestCost = cost
				copy(gBestPos, p.pos)
				gBest.CopyFrom(p.decodeScratch)
			}
		}
	}

	return toOptResult(gBest, gBestCost, evals, iter, time.Since(start), map[string]any{
		"particles": s.Cfg.Particles,
		"w":         w,
		"c1":        c1,
		"c2":        c2,
		"vmax":      vMax,
		"pos_min":   posMin,
		"pos_max":   posMax,
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

// decodePosition maps a particle's continuous position onto a schedule:
// each cell takes the feasible code with the highest score, ties broken
// towards the lowest code value.
func decodePosition(pos []float64, allowed [][]schedule.ShiftCode, days int, out *schedule.Schedule) {
	for cell, codes := range allowed {
		staffIdx, day := cell/days, cell%days

		best := codes[0]
		bestScore := pos[cell*numCodes+int(best)]
		for _, code := range codes[1:] {
			score := pos[cell*numCodes+int(code)]
			if score > bestScore {
				bestScore = score
				best = code
			}
		}
		out.Set(staffIdx, day, best)
	}
}
