package ga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftgen/internal/progress"
	"shiftgen/internal/schedule"
)

// progressRecorder returns a Sink that appends each reported best penalty
// to dst, so tests can assert on the trail across generations.
func progressRecorder(dst *[]int) progress.Sink {
	return progress.SinkFunc(func(u progress.Update) {
		*dst = append(*dst, u.BestPenalty)
	})
}

func smallRoles() []schedule.RoleTag {
	return []schedule.RoleTag{
		schedule.RoleChief, schedule.RoleChief,
		schedule.RoleLeader, schedule.RoleLeader,
		schedule.RoleStaff, schedule.RoleStaff, schedule.RoleStaff,
		schedule.RoleAssist, schedule.RoleAssist, schedule.RoleAssist,
	}
}

// TestSolveShape checks that the returned matrix is exactly S x D and
// every cell is one of {0,1,2}.
func TestSolveShape(t *testing.T) {
	p, err := schedule.NewProblem(10, 3, smallRoles(), nil)
	require.NoError(t, err)

	solver, err := New(Config{Population: 20, Generations: 5, MutationRate: 0.01, TournamentSize: 2, Workers: 2, Seed: 1}, nil)
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)

	m := res.Schedule.ToMatrix()
	require.Len(t, m, 10)
	for _, row := range m {
		require.Len(t, row, 3)
		for _, v := range row {
			assert.True(t, v == 0 || v == 1 || v == 2)
		}
	}
}

// TestSolveDeterministicGivenSeed checks that identical inputs and worker
// count reproduce the same matrix and score.
func TestSolveDeterministicGivenSeed(t *testing.T) {
	p, err := schedule.NewProblem(10, 3, smallRoles(), nil)
	require.NoError(t, err)

	cfg := Config{Population: 30, Generations: 10, MutationRate: 0.02, TournamentSize: 2, Workers: 3, Seed: 99}

	s1, err := New(cfg, nil)
	require.NoError(t, err)
	r1, err := s1.Solve(context.Background(), p)
	require.NoError(t, err)

	s2, err := New(cfg, nil)
	require.NoError(t, err)
	r2, err := s2.Solve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, r1.Penalty, r2.Penalty)
	assert.Equal(t, r1.Schedule.ToMatrix(), r2.Schedule.ToMatrix())
}

// TestSolveElitismIsMonotone checks that across a longer run, the reported
// best penalty never increases and the final penalty is no worse than the
// last reported best.
func TestSolveElitismIsMonotone(t *testing.T) {
	p, err := schedule.NewProblem(4, 7, []schedule.RoleTag{
		schedule.RoleChief, schedule.RoleChief, schedule.RoleStaff, schedule.RoleAssist,
	}, nil)
	require.NoError(t, err)

	var reports []int
	sink := progressRecorder(&reports)

	solver, err := New(Config{Population: 40, Generations: 20, MutationRate: 0.02, TournamentSize: 2, Workers: 2, Seed: 5}, sink)
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)

	for i := 1; i < len(reports); i++ {
		assert.LessOrEqual(t, reports[i], reports[i-1], "reported best penalty must never increase")
	}
	require.NotEmpty(t, reports)
	assert.LessOrEqual(t, res.Penalty, reports[len(reports)-1], "elitism only ever improves on the last reported best")
}

// TestSolveRejectsInvalidConfig checks that invalid hyperparameters fail
// before any GA work begins.
func TestSolveRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{Population: 1, Generations: 5, TournamentSize: 2}, nil)
	assert.Error(t, err)

	_, err = New(Config{Population: 10, Generations: 0, TournamentSize: 2}, nil)
	assert.Error(t, err)
}

func TestSolveRejectsNilProblem(t *testing.T) {
	solver, err := New(DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = solver.Solve(context.Background(), nil)
	assert.Error(t, err)
}

// TestSolveMeetsCoverageWithAmpleStaff checks that with ample staff and no
// preferences, coverage minima are fully met.
func TestSolveMeetsCoverageWithAmpleStaff(t *testing.T) {
	roles := []schedule.RoleTag{}
	roles = append(roles, repeat(schedule.RoleChief, 2)...)
	roles = append(roles, repeat(schedule.RoleLeader, 2)...)
	roles = append(roles, repeat(schedule.RoleStaff, 3)...)
	roles = append(roles, repeat(schedule.RoleAssist, 3)...)

	p, err := schedule.NewProblem(10, 3, roles, nil)
	require.NoError(t, err)

	solver, err := New(Config{Population: 80, Generations: 60, MutationRate: 0.02, TournamentSize: 2, Workers: 2, Seed: 1}, nil)
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)

	m := res.Schedule.ToMatrix()
	for d := 0; d < 3; d++ {
		morning, night := 0, 0
		for i := 0; i < 10; i++ {
			switch m[i][d] {
			case 1:
				morning++
			case 2:
				night++
			}
		}
		assert.GreaterOrEqual(t, morning, 5)
		assert.GreaterOrEqual(t, night, 5)
	}
}

// TestSolveHonorsHardNGPreference checks that a NG preference always wins.
func TestSolveHonorsHardNGPreference(t *testing.T) {
	p, err := schedule.NewProblem(10, 3, smallRoles(), map[schedule.Cell]schedule.PreferenceKind{
		{Staff: 0, Day: 0}: schedule.PrefNG,
	})
	require.NoError(t, err)

	solver, err := New(Config{Population: 60, Generations: 40, MutationRate: 0.02, TournamentSize: 2, Workers: 2, Seed: 2}, nil)
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Schedule.ToMatrix()[0][0])
}

// TestSolveHonorsNoNightAndNoMorningPreferences checks that NO_NIGHT and
// NO_MORNING preferences restrict a cell to its allowed codes.
func TestSolveHonorsNoNightAndNoMorningPreferences(t *testing.T) {
	p, err := schedule.NewProblem(10, 3, smallRoles(), map[schedule.Cell]schedule.PreferenceKind{
		{Staff: 1, Day: 1}: schedule.PrefNoNight,
		{Staff: 2, Day: 2}: schedule.PrefNoMorning,
	})
	require.NoError(t, err)

	solver, err := New(Config{Population: 60, Generations: 40, MutationRate: 0.02, TournamentSize: 2, Workers: 2, Seed: 3}, nil)
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)

	m := res.Schedule.ToMatrix()
	assert.Contains(t, []int{0, 1}, m[1][1])
	assert.Contains(t, []int{0, 2}, m[2][2])
}

// TestSolveHandlesInfeasibleCoverageGracefully checks that with too few
// staff to ever meet coverage, the solver still returns, with a
// non-increasing best penalty trail.
func TestSolveHandlesInfeasibleCoverageGracefully(t *testing.T) {
	roles := []schedule.RoleTag{schedule.RoleChief, schedule.RoleStaff, schedule.RoleAssist, schedule.RoleAssist}
	p, err := schedule.NewProblem(4, 7, roles, nil)
	require.NoError(t, err)

	var reports []int
	sink := progressRecorder(&reports)

	solver, err := New(Config{Population: 50, Generations: 50, MutationRate: 0.02, TournamentSize: 2, Workers: 2, Seed: 4}, sink)
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Greater(t, res.Penalty, 0, "4 staff can never meet the 5/5 coverage minima")

	for i := 1; i < len(reports); i++ {
		assert.LessOrEqual(t, reports[i], reports[i-1])
	}
}

// TestSolveLimitsConsecutiveWorkRuns checks that no staff member is ever
// pushed into an 8-day consecutive work run.
func TestSolveLimitsConsecutiveWorkRuns(t *testing.T) {
	roles := repeat(schedule.RoleAssist, 14)
	p, err := schedule.NewProblem(14, 14, roles, nil)
	require.NoError(t, err)

	solver, err := New(Config{Population: 120, Generations: 150, MutationRate: 0.02, TournamentSize: 3, Workers: 4, Seed: 6}, nil)
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)

	m := res.Schedule.ToMatrix()
	for i := range m {
		run := 0
		for _, v := range m[i] {
			if v != 0 {
				run++
			} else {
				run = 0
			}
			assert.Less(t, run, 8, "staff %d must not reach an 8-day consecutive run", i)
		}
	}
}

// TestSolveAvoidsMorningAfterNight checks that a night shift is never
// immediately followed by a morning shift for the same staff member.
func TestSolveAvoidsMorningAfterNight(t *testing.T) {
	roles := repeat(schedule.RoleAssist, 20)
	p, err := schedule.NewProblem(20, 10, roles, nil)
	require.NoError(t, err)

	solver, err := New(Config{Population: 150, Generations: 150, MutationRate: 0.02, TournamentSize: 3, Workers: 4, Seed: 7}, nil)
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)

	m := res.Schedule.ToMatrix()
	for i := range m {
		for d := 0; d+1 < len(m[i]); d++ {
			if m[i][d] == 2 {
				assert.NotEqual(t, 1, m[i][d+1], "staff %d day %d: morning must not follow a night", i, d)
			}
		}
	}
}

func repeat(r schedule.RoleTag, n int) []schedule.RoleTag {
	out := make([]schedule.RoleTag, n)
	for i := range out {
		out[i] = r
	}
	return out
}
