package sa

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftgen/internal/schedule"
)

func testProblem(t *testing.T) *schedule.Problem {
	t.Helper()
	roles := []schedule.RoleTag{
		schedule.RoleChief, schedule.RoleChief,
		schedule.RoleStaff, schedule.RoleStaff,
		schedule.RoleAssist, schedule.RoleAssist,
	}
	p, err := schedule.NewProblem(6, 7, roles, map[schedule.Cell]schedule.PreferenceKind{
		{Staff: 0, Day: 0}: schedule.PrefNG,
	})
	require.NoError(t, err)
	return p
}

func TestSolveReturnsFullyShapedFeasibleSchedule(t *testing.T) {
	p := testProblem(t)

	solver, err := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)

	m := res.Schedule.ToMatrix()
	require.Len(t, m, 6)
	for _, row := range m {
		require.Len(t, row, 7)
	}
	assert.Equal(t, 0, m[0][0], "NG preference must be honoured")
}

func TestSolveSwapNeighborhoodPreservesWorkloadCounts(t *testing.T) {
	p := testProblem(t)

	cfg := DefaultConfig()
	cfg.Neighborhood = NeighborhoodSwap

	solver, err := New(cfg, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Penalty, 0)

	// Solve draws its starting schedule first from the same seed, and every
	// later move only swaps cells within a row.
	start := schedule.RandomSchedule(p, rand.New(rand.NewSource(2)))
	for i := 0; i < p.Staff(); i++ {
		assert.ElementsMatch(t, start.Row(i), res.Schedule.Row(i), "staff %d: swaps must keep the row's shift counts", i)
	}
}

func TestSolveRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Alpha = 1.5
	_, err := New(cfg, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestSolveRejectsNilRng(t *testing.T) {
	_, err := New(DefaultConfig(), nil)
	assert.Error(t, err)
}
