// Package opt defines the common result and interface shared by every
// schedule solver (ga, sa, ts, aco, pso) so internal/bench can run them
// uniformly.
package opt

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shiftgen/internal/schedule"
)

// Optimizer solves one scheduling Problem and returns its best Schedule.
type Optimizer interface {
	Solve(ctx context.Context, problem *schedule.Problem) (Result, error)
}

// Result is a solver's outcome: the best schedule found, its score
// (higher is better, the negation of the penalty), and run bookkeeping.
type Result struct {
	RunID       uuid.UUID
	Schedule    *schedule.Schedule
	Score       int
	Penalty     int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}
