package ga

import (
	"time"

	"github.com/google/uuid"

	"shiftgen/internal/opt"
	"shiftgen/internal/schedule"
)

// toOptResult bundles the GA's best schedule and bookkeeping into the
// common opt.Result shape. The schedule is cloned so the caller owns an
// independent copy once the population buffers are discarded.
func toOptResult(best *schedule.Schedule, bestPenalty, evals, gens int, dur time.Duration, meta map[string]any) opt.Result {
	return opt.Result{
		RunID:       uuid.New(),
		Schedule:    best.Clone(),
		Score:       -bestPenalty,
		Penalty:     bestPenalty,
		Evaluations: evals,
		Iterations:  gens,
		Duration:    dur,
		Meta:        meta,
	}
}
