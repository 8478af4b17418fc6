// Package ga implements the constraint-optimising schedule generator: a
// genetic algorithm searching the space of {rest, morning, night}
// assignments for each (staff, day) cell.
package ga

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"shiftgen/internal/opt"
	"shiftgen/internal/progress"
	"shiftgen/internal/rngstream"
	"shiftgen/internal/schedule"
)

// Solver is the GA implementation of opt.Optimizer for the shift-schedule
// domain.
type Solver struct {
	Cfg  Config
	Sink progress.Sink
}

// New validates cfg and returns a ready Solver. A nil sink means "use the
// default zerolog sink": the core always writes periodic progress lines
// somewhere, even when the caller supplies no sink of its own.
func New(cfg Config, sink progress.Sink) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = progress.NewZerologSink("ga")
	}
	return &Solver{Cfg: cfg, Sink: sink}, nil
}

// Solve runs the GA to completion and returns the best schedule found.
// All invalid-input cases are rejected here, before any generation runs;
// once inside the generational loop the only error Solve returns is ctx's,
// when ctx is cancelled.
func (s *Solver) Solve(ctx context.Context, problem *schedule.Problem) (opt.Result, error) {
	start := time.Now()

	if problem == nil {
		return opt.Result{}, fmt.Errorf("ga: problem must not be nil")
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}

	staff, days := problem.Staff(), problem.Days()
	popSize := s.Cfg.Population

	workers := s.Cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rngs := rngstream.Streams(s.Cfg.Seed, workers)

	makePopulation := func() []*schedule.Schedule {
		pop := make([]*schedule.Schedule, popSize)
		for i := range pop {
			pop[i] = schedule.NewSchedule(staff, days)
		}
		return pop
	}

	popA := makePopulation()
	popB := makePopulation()
	penA := make([]int, popSize)
	penB := make([]int, popSize)

	// Initial population: preference-aware random individuals, generated
	// and evaluated in parallel across workers, using the same
	// partition-and-join shape the generational loop below uses.
	if err := runPartitioned(ctx, 0, popSize, workers, func(w int, lo, hi int) error {
		rng := rngs[w]
		for i := lo; i < hi; i++ {
			schedule.FillRandom(problem, popA[i], rng)
			penA[i] = schedule.Evaluate(problem, popA[i])
		}
		return nil
	}); err != nil {
		return opt.Result{}, err
	}
	evaluations := popSize

	// Incumbent elite: the best individual of the initial population.
	// The elite only changes on a strictly lower penalty while scanning in
	// increasing index order, so equal-penalty ties favour the
	// lower-indexed (and, across generations, the longer-standing) one.
	eliteIdx := 0
	for i := 1; i < popSize; i++ {
		if penA[i] < penA[eliteIdx] {
			eliteIdx = i
		}
	}

	interval := s.Cfg.Generations / 10
	if interval < 1 {
		interval = 1
	}

	for gen := 1; gen <= s.Cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			res := toOptResult(popA[eliteIdx], penA[eliteIdx], evaluations, gen-1,
				time.Since(start), map[string]any{"stopped": "context"})
			return res, err
		}

		if gen%interval == 0 || gen == s.Cfg.Generations {
			s.Sink.Report(progress.Update{
				Generation:  gen,
				TotalSteps:  s.Cfg.Generations,
				BestPenalty: penA[eliteIdx],
				Evaluations: evaluations,
			})
		}

		// Elitism: the single best individual is carried unchanged into
		// slot 0 of the next generation.
		popB[0].CopyFrom(popA[eliteIdx])
		penB[0] = penA[eliteIdx]

		// Children fill the remaining P-1 slots, produced and evaluated
		// in parallel across a fixed partition of slot indices.
		evalCounts := make([]int, workers)
		err := runPartitioned(ctx, 1, popSize, workers, func(w int, lo, hi int) error {
			rng := rngs[w]
			local := 0
			for idx := lo; idx < hi; idx++ {
				p1 := tournamentSelect(penA, s.Cfg.TournamentSize, rng)
				p2 := tournamentSelect(penA, s.Cfg.TournamentSize, rng)
				if popSize > 1 {
					for p2 == p1 {
						p2 = tournamentSelect(penA, s.Cfg.TournamentSize, rng)
					}
				}

				child := popB[idx]
				crossoverRowWise(popA[p1], popA[p2], child, rng)
				mutateCell(problem, child, s.Cfg.MutationRate, rng)

				penB[idx] = schedule.Evaluate(problem, child)
				local++
			}
			evalCounts[w] = local
			return nil
		})
		if err != nil {
			return opt.Result{}, err
		}
		for _, c := range evalCounts {
			evaluations += c
		}

		// Next generation's elite: scan strictly-less-than so ties keep
		// the carried-over incumbent at slot 0.
		eliteIdx = 0
		for i := 1; i < popSize; i++ {
			if penB[i] < penB[eliteIdx] {
				eliteIdx = i
			}
		}

		popA, popB = popB, popA
		penA, penB = penB, penA
	}

	res := toOptResult(popA[eliteIdx], penA[eliteIdx], evaluations, s.Cfg.Generations, time.Since(start),
		map[string]any{
			"population":      s.Cfg.Population,
			"generations":     s.Cfg.Generations,
			"mutation_rate":   s.Cfg.MutationRate,
			"tournament_size": s.Cfg.TournamentSize,
			"workers":         workers,
		})
	return res, nil
}

// runPartitioned splits [lo,hi) into contiguous ranges across workers and
// runs fn on each range concurrently, propagating the first error and
// honouring ctx cancellation. No worker observes a half-written
// population: the driver only swaps generation buffers once every worker
// in the partition has returned.
func runPartitioned(ctx context.Context, lo, hi, workers int, fn func(worker, lo, hi int) error) error {
	if hi <= lo {
		return nil
	}
	ranges := partition(lo, hi, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w, r := range ranges {
		w, r := w, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(w, r.lo, r.hi)
		})
	}
	return g.Wait()
}
