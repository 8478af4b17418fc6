package schedule

import "math/rand"

// RandomProblem builds a synthetic Problem instance of the given size,
// cycling through DefaultRoleConfig's role mix and scattering a handful of
// preference constraints. Used by bench to generate comparable instances
// across solvers without hand-authoring TOML fixtures for every size.
func RandomProblem(staffCount, days int, rng *rand.Rand) (*Problem, error) {
	roles := make([]RoleTag, staffCount)
	pool := ExpandRoles(DefaultRoleConfig())
	for i := range roles {
		roles[i] = pool[i%len(pool)]
	}

	constraints := map[Cell]PreferenceKind{}
	kinds := []PreferenceKind{PrefNG, PrefNoNight, PrefNoMorning}
	constraintCount := staffCount * days / 10
	for i := 0; i < constraintCount; i++ {
		cell := Cell{Staff: rng.Intn(staffCount), Day: rng.Intn(days)}
		constraints[cell] = kinds[rng.Intn(len(kinds))]
	}

	return NewProblem(staffCount, days, roles, constraints)
}
