package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"shiftgen/internal/aco"
	"shiftgen/internal/bench"
	"shiftgen/internal/config"
	"shiftgen/internal/ga"
	"shiftgen/internal/opt"
	"shiftgen/internal/progress"
	"shiftgen/internal/pso"
	"shiftgen/internal/rngstream"
	"shiftgen/internal/sa"
	"shiftgen/internal/ts"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	root := &cobra.Command{
		Use:   "schedgen",
		Short: "Generate and compare monthly shift schedules",
	}
	root.AddCommand(newRunCmd(), newBenchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "schedgen:", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath  string
		population  int
		generations int
		mutRate     float64
		tourSize    int
		workers     int
		seed        int64
		timeout     time.Duration
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:          "run [config.toml]",
		Short:        "Run the genetic algorithm against a problem config and print the best schedule found",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				configPath = args[0]
			}
			if configPath == "" {
				return fmt.Errorf("no config path given; pass it as an argument")
			}
			if lvl, err := zerolog.ParseLevel(logLevel); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}

			problem, err := config.LoadProblem(configPath)
			if err != nil {
				return err
			}

			cfg := ga.Config{
				Population:     population,
				Generations:    generations,
				MutationRate:   mutRate,
				TournamentSize: tourSize,
				Workers:        workers,
				Seed:           seed,
			}
			solver, err := ga.New(cfg, progress.NewZerologSink("run"))
			if err != nil {
				return err
			}

			ctx := context.Background()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			res, err := solver.Solve(ctx, problem)
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("solving: %w", err)
			}

			printResult(res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the problem TOML file")
	cmd.Flags().IntVar(&population, "population", ga.DefaultConfig().Population, "GA population size")
	cmd.Flags().IntVar(&generations, "generations", ga.DefaultConfig().Generations, "GA generation count")
	cmd.Flags().Float64Var(&mutRate, "mutation-rate", ga.DefaultConfig().MutationRate, "per-cell mutation probability")
	cmd.Flags().IntVar(&tourSize, "tournament-size", ga.DefaultConfig().TournamentSize, "tournament selection size")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().Int64Var(&seed, "seed", ga.DefaultConfig().Seed, "master RNG seed")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall time budget (0 = unlimited)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "zerolog level: debug, info, warn, error")

	return cmd
}

func printResult(res opt.Result) {
	fmt.Printf("run %s: penalty=%d evaluations=%d generations=%d duration=%s\n",
		res.RunID, res.Penalty, res.Evaluations, res.Iterations, res.Duration)

	m := res.Schedule.ToMatrix()
	for i, row := range m {
		cells := make([]string, len(row))
		for d, v := range row {
			cells[d] = strconv.Itoa(v)
		}
		fmt.Printf("staff %3d: %s\n", i, strings.Join(cells, " "))
	}
}

func newBenchCmd() *cobra.Command {
	var (
		out          string
		pairs        string
		algos        string
		runs         int
		baseSeed     int64
		instanceSeed int64
		perRunTO     time.Duration
	)

	cmd := &cobra.Command{
		Use:          "bench",
		Short:        "Compare GA against SA/TS/ACO/PSO across problem sizes, writing a results CSV",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cases, err := parsePairs(pairs, instanceSeed)
			if err != nil {
				return err
			}

			available := map[string]bench.Algorithm{
				"GA":  {Name: "GA", Factory: newGAFactory(ga.DefaultConfig())},
				"SA":  {Name: "SA", Factory: newSAFactory(sa.DefaultConfig())},
				"TS":  {Name: "TS", Factory: newTSFactory(ts.DefaultConfig())},
				"ACO": {Name: "ACO", Factory: newACOFactory(aco.DefaultConfig())},
				"PSO": {Name: "PSO", Factory: newPSOFactory(pso.DefaultConfig())},
			}

			var selected []bench.Algorithm
			for _, a := range splitCSV(algos) {
				al, ok := available[a]
				if !ok {
					return fmt.Errorf("unknown algorithm %q; available: GA, SA, TS, ACO, PSO", a)
				}
				selected = append(selected, al)
			}

			runner := bench.Runner{Runs: runs, BaseSeed: baseSeed, PerRunTimeout: perRunTO}

			var records []bench.Record
			for _, c := range cases {
				for _, a := range selected {
					fmt.Printf("running %s: staff=%d days=%d runs=%d...\n", a.Name, c.StaffCount, c.Days, runner.Runs)
					rec, err := runner.RunCase(ctx, c, a)
					if err != nil {
						return fmt.Errorf("case staff=%d days=%d algo=%s: %w", c.StaffCount, c.Days, a.Name, err)
					}
					records = append(records, rec)
					fmt.Printf("  penalty: best=%d mean=%.2f std=%.2f | time: mean=%.2fms std=%.2fms\n",
						rec.PenaltyBest, rec.PenaltyMean, rec.PenaltyStd, rec.TimeMeanMs, rec.TimeStdMs)
				}
			}

			if err := bench.WriteCSV(out, records); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}
			fmt.Println("saved:", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "artifacts/results.csv", "output CSV path")
	cmd.Flags().StringVar(&pairs, "cases", "20x14,50x28,100x28", "staff x days pairs, comma separated")
	cmd.Flags().StringVar(&algos, "algos", "GA,SA,TS,ACO,PSO", "algorithms to compare, comma separated")
	cmd.Flags().IntVar(&runs, "runs", 20, "runs per algorithm per case")
	cmd.Flags().Int64Var(&baseSeed, "seed", 1000, "base RNG seed for solver runs")
	cmd.Flags().Int64Var(&instanceSeed, "instance-seed", 777, "base seed for generating problem instances")
	cmd.Flags().DurationVar(&perRunTO, "per-run-timeout", 0, "per-run time budget (0 = unlimited)")

	return cmd
}

func newGAFactory(cfg ga.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		cfg.Seed = seed
		solver, _ := ga.New(cfg, progress.Noop)
		return solver
	}
}

func newSAFactory(cfg sa.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := sa.New(cfg, rngstream.New(seed, 0))
		return solver
	}
}

func newTSFactory(cfg ts.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ts.New(cfg, rngstream.New(seed, 0))
		return solver
	}
}

func newACOFactory(cfg aco.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := aco.New(cfg, rngstream.New(seed, 0))
		return solver
	}
}

func newPSOFactory(cfg pso.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := pso.New(cfg, rngstream.New(seed, 0))
		return solver
	}
}

func parsePairs(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		sd := strings.Split(p, "x")
		if len(sd) != 2 {
			return nil, fmt.Errorf("case %q has the wrong shape, expected e.g. 50x28", p)
		}
		staffCount, err := strconv.Atoi(strings.TrimSpace(sd[0]))
		if err != nil {
			return nil, fmt.Errorf("case %q: parsing staff count: %w", p, err)
		}
		days, err := strconv.Atoi(strings.TrimSpace(sd[1]))
		if err != nil {
			return nil, fmt.Errorf("case %q: parsing days: %w", p, err)
		}
		if staffCount <= 0 || days <= 0 {
			return nil, fmt.Errorf("case %q: staff and days must be > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(staffCount)*100 + int64(days)
		cases = append(cases, bench.Case{StaffCount: staffCount, Days: days, InstanceSeed: seed})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
