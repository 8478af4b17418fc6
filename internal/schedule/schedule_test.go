package schedule

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftCodeString(t *testing.T) {
	assert.Equal(t, "rest", Rest.String())
	assert.Equal(t, "morning", Morning.String())
	assert.Equal(t, "night", Night.String())
	assert.Contains(t, ShiftCode(9).String(), "invalid")
}

func TestShiftCodeValidAndWorkDay(t *testing.T) {
	assert.True(t, Rest.Valid())
	assert.True(t, Morning.Valid())
	assert.True(t, Night.Valid())
	assert.False(t, ShiftCode(3).Valid())

	assert.False(t, Rest.IsWorkDay())
	assert.True(t, Morning.IsWorkDay())
	assert.True(t, Night.IsWorkDay())
}

func TestNewScheduleStartsAllRest(t *testing.T) {
	s := NewSchedule(3, 4)
	assert.Equal(t, 3, s.Staff())
	assert.Equal(t, 4, s.Days())

	for i := 0; i < 3; i++ {
		for d := 0; d < 4; d++ {
			assert.Equal(t, Rest, s.Get(i, d))
		}
	}
}

func TestScheduleGetSet(t *testing.T) {
	s := NewSchedule(2, 2)
	s.Set(0, 1, Night)
	assert.Equal(t, Night, s.Get(0, 1))
	assert.Equal(t, Rest, s.Get(1, 0))
}

func TestScheduleRowIsMutableView(t *testing.T) {
	s := NewSchedule(2, 3)
	row := s.Row(0)
	row[2] = Morning
	assert.Equal(t, Morning, s.Get(0, 2))
}

func TestScheduleCloneIsIndependent(t *testing.T) {
	s := NewSchedule(2, 2)
	s.Set(0, 0, Night)

	c := s.Clone()
	require.Equal(t, Night, c.Get(0, 0))

	c.Set(0, 0, Morning)
	assert.Equal(t, Night, s.Get(0, 0), "mutating the clone must not affect the original")
}

func TestScheduleCopyFrom(t *testing.T) {
	src := NewSchedule(2, 2)
	src.Set(1, 1, Night)

	dst := NewSchedule(2, 2)
	dst.CopyFrom(src)

	assert.Equal(t, Night, dst.Get(1, 1))

	dst.Set(1, 1, Rest)
	assert.Equal(t, Night, src.Get(1, 1), "CopyFrom must deep-copy, not alias, the backing array")
}

func TestScheduleToMatrix(t *testing.T) {
	s := NewSchedule(2, 2)
	s.Set(0, 0, Morning)
	s.Set(1, 1, Night)

	m := s.ToMatrix()
	require.Len(t, m, 2)
	assert.Equal(t, []int{1, 0}, m[0])
	assert.Equal(t, []int{0, 2}, m[1])
}

func TestAllowedCodesRespectsPreference(t *testing.T) {
	roles := []RoleTag{RoleChief, RoleChief, RoleChief}
	p, err := NewProblem(3, 1, roles, map[Cell]PreferenceKind{
		{Staff: 0, Day: 0}: PrefNG,
		{Staff: 1, Day: 0}: PrefNoNight,
	})
	require.NoError(t, err)

	assert.Equal(t, []ShiftCode{Rest}, AllowedCodes(p, 0, 0))
	assert.Equal(t, []ShiftCode{Rest, Morning}, AllowedCodes(p, 1, 0))
	assert.Equal(t, []ShiftCode{Rest, Morning, Night}, AllowedCodes(p, 2, 0))
}

func TestRandomCellRespectsPreference(t *testing.T) {
	roles := []RoleTag{RoleChief, RoleChief}
	p, err := NewProblem(2, 1, roles, map[Cell]PreferenceKind{
		{Staff: 0, Day: 0}: PrefNoMorning,
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		code := RandomCell(p, 0, 0, rng)
		assert.NotEqual(t, Morning, code)
	}
}

func TestRandomScheduleIsFullyPopulatedAndFeasible(t *testing.T) {
	roles := ExpandRoles(DefaultRoleConfig())
	p, err := NewProblem(len(roles), 7, roles, map[Cell]PreferenceKind{
		{Staff: 0, Day: 0}: PrefNG,
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	s := RandomSchedule(p, rng)

	assert.Equal(t, Rest, s.Get(0, 0))
	for i := 0; i < s.Staff(); i++ {
		for d := 0; d < s.Days(); d++ {
			assert.True(t, s.Get(i, d).Valid())
		}
	}
}

func TestFillRandomOverwritesInPlace(t *testing.T) {
	roles := []RoleTag{RoleChief, RoleChief}
	p, err := NewProblem(2, 5, roles, nil)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	s := NewSchedule(2, 5)
	s.Set(0, 0, Night)

	FillRandom(p, s, rng)
	for i := 0; i < 2; i++ {
		for d := 0; d < 5; d++ {
			assert.True(t, s.Get(i, d).Valid())
		}
	}

	want := RandomSchedule(p, rand.New(rand.NewSource(7)))
	assert.Equal(t, want.ToMatrix(), s.ToMatrix(), "every cell must be overwritten with the same draws RandomSchedule makes")
}
