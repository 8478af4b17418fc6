// Package ts adapts tabu search to the schedule domain: moves are single
// cell reassignments (staff, day) -> shiftCode instead of flow-shop
// permutation swaps/inserts.
package ts

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"shiftgen/internal/opt"
	"shiftgen/internal/schedule"
)

const maxInt = int(^uint(0) >> 1)

// Solver is the tabu-search implementation of opt.Optimizer.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("ts: rng must not be nil")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

func (s *Solver) Solve(ctx context.Context, problem *schedule.Problem) (opt.Result, error) {
	start := time.Now()

	if problem == nil {
		return opt.Result{}, fmt.Errorf("ts: problem must not be nil")
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("ts: rng must not be nil")
	}

	cells := problem.Staff() * problem.Days()
	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerCell * cells
	}

	curr := schedule.RandomSchedule(problem, s.Rng)
	cand := curr.Clone()

	currCost := schedule.Evaluate(problem, curr)
	evals := 1

	best := curr.Clone()
	bestCost := currCost

	tabu := newTabuList(max(32, (s.Cfg.TabuTenure+s.Cfg.TabuTenureRand)*4))

	neighbors := s.Cfg.NeighborsPerIter

	iter := 0
	for ; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return toOptResult(best, bestCost, evals, iter, time.Since(start),
				map[string]any{"stopped": "context"}), err
		}

		bestMoveCell, bestMoveCode := -1, schedule.ShiftCode(-1)
		bestMoveCost := maxInt
		bestMoveOld := schedule.ShiftCode(-1)

		fallbackCell, fallbackCode := -1, schedule.ShiftCode(-1)
		fallbackCost := maxInt
		fallbackOld := schedule.ShiftCode(-1)

		for k := 0; k < neighbors; k++ {
			cell := s.Rng.Intn(cells)
			staff, day := cell/problem.Days(), cell%problem.Days()
			oldCode := curr.Get(staff, day)
			newCode := schedule.RandomCell(problem, staff, day, s.Rng)
			if newCode == oldCode {
				continue
			}
			key := moveKey(cell, newCode)

			cand.CopyFrom(curr)
			cand.Set(staff, day, newCode)

			cost := schedule.Evaluate(problem, cand)
			evals++

			if cost < fallbackCost {
				fallbackCost = cost
				fallbackCell, fallbackCode = cell, newCode
				fallbackOld = oldCode
			}

			isTabu := tabu.IsTabu(key, iter)
			aspiration := cost < bestCost

			if isTabu && !aspiration {
				continue
			}

			if cost < bestMoveCost {
				bestMoveCost = cost
				bestMoveCell, bestMoveCode = cell, newCode
				bestMoveOld = oldCode
			}
		}

		chosenCell, chosenCode := bestMoveCell, bestMoveCode
		chosenCost := bestMoveCost
		chosenOld := bestMoveOld

		if chosenCell < 0 {
			chosenCell, chosenCode = fallbackCell, fallbackCode
			chosenCost = fallbackCost
			chosenOld = fallbackOld
		}

		if chosenCell < 0 {
			break
		}

		staff, day := chosenCell/problem.Days(), chosenCell%problem.Days()
		curr.Set(staff, day, chosenCode)
		currCost = chosenCost

		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		reverseKey := moveKey(chosenCell, chosenOld)
		tabu.Add(reverseKey, iter+tenure)

		if currCost < bestCost {
			bestCost = currCost
			best.CopyFrom(curr)
		}
	}

	return toOptResult(best, bestCost, evals, iter, time.Since(start), map[string]any{
		"tabu_tenure":        s.Cfg.TabuTenure,
		"tabu_tenure_rand":   s.Cfg.TabuTenureRand,
		"neighbors_per_iter": s.Cfg.NeighborsPerIter,
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

// tabuList is a fixed-capacity ring buffer backed by a map, recording the
// iteration each forbidden move expires at.
type tabuList struct {
	m   map[uint64]int
	key []uint64
	exp []int
	i   int
}

func newTabuList(capacity int) *tabuList {
	if capacity < 8 {
		capacity = 8
	}
	return &tabuList{
		m:   make(map[uint64]int, capacity*2),
		key: make([]uint64, capacity),
		exp: make([]int, capacity),
	}
}

func (t *tabuList) IsTabu(k uint64, iter int) bool {
	exp, ok := t.m[k]
	return ok && exp > iter
}

func (t *tabuList) Add(k uint64, expiry int) {
	oldK := t.key[t.i]
	oldExp := t.exp[t.i]
	if oldK != 0 {
		if curExp, ok := t.m[oldK]; ok && curExp == oldExp {
			delete(t.m, oldK)
		}
	}

	t.key[t.i] = k
	t.exp[t.i] = expiry
	t.m[k] = expiry

	t.i++
	if t.i >= len(t.key) {
		t.i = 0
	}
}

// moveKey packs a cell index and target shift code into one tabu key.
func moveKey(cell int, code schedule.ShiftCode) uint64 {
	return uint64(uint32(cell))<<2 | uint64(uint32(code))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
