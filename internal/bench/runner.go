package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"shiftgen/internal/opt"
	"shiftgen/internal/schedule"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	StaffCount   int
	Days         int
	InstanceSeed int64
}

type Record struct {
	Algo  string
	Staff int
	Days  int
	Runs  int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	PenaltyBest int
	PenaltyMean float64
	PenaltyStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	instRng := randForSeed(c.InstanceSeed)
	problem, err := schedule.RandomProblem(c.StaffCount, c.Days, instRng)
	if err != nil {
		return Record{}, fmt.Errorf("generating case instance: %w", err)
	}

	penalties := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, problem)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if res.Schedule == nil || res.Schedule.Staff() != problem.Staff() || res.Schedule.Days() != problem.Days() {
			return Record{}, fmt.Errorf("run %d: invalid schedule shape", i)
		}

		penalties = append(penalties, res.Penalty)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	pStats := CalcIntStats(penalties)
	tStats := CalcFloatStats(timesMs)

	return Record{
		Algo:  algo.Name,
		Staff: c.StaffCount,
		Days:  c.Days,
		Runs:  r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		PenaltyBest: pStats.Best,
		PenaltyMean: pStats.Mean,
		PenaltyStd:  pStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "staff", "days", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"penalty_best", "penalty_mean", "penalty_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Staff),
			itoa(r.Days),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.PenaltyBest),
			ftoa(r.PenaltyMean),
			ftoa(r.PenaltyStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
