// Package schedule implements the problem model, schedule encoding and
// fitness evaluator for the shift-scheduling core: an immutable description
// of staff, days and constraints, and the dense S×D matrix of shift codes
// a solver searches over.
package schedule

import "fmt"

// RoleTag is a coarse staff role. The core treats roles only as keys for
// headcount minima; it accepts any string, but only the four
// tags below participate in role-specific rules.
type RoleTag string

const (
	RoleChief  RoleTag = "Chief"
	RoleLeader RoleTag = "Leader"
	RoleStaff  RoleTag = "Staff"
	RoleAssist RoleTag = "Assist"
)

// KnownRoles lists the roles the default template (make_template.py's
// ROLE_CONFIG) enumerates. Unknown roles are accepted at the boundary and
// simply don't participate in any role-specific minimum.
var KnownRoles = []RoleTag{RoleChief, RoleLeader, RoleStaff, RoleAssist}

// PreferenceKind is a per-cell restriction on a single (staff, day) pair.
type PreferenceKind string

const (
	// PrefNG forces rest that day.
	PrefNG PreferenceKind = "NG"
	// PrefNoNight forbids night; rest or morning acceptable.
	PrefNoNight PreferenceKind = "NO_NIGHT"
	// PrefNoMorning forbids morning; rest or night acceptable.
	PrefNoMorning PreferenceKind = "NO_MORNING"
)

func (k PreferenceKind) valid() bool {
	switch k {
	case PrefNG, PrefNoNight, PrefNoMorning:
		return true
	default:
		return false
	}
}

// Cell identifies a single (staff, day) position in a schedule.
type Cell struct {
	Staff int
	Day   int
}

// Problem is the immutable description of one scheduling instance. It is
// shared read-only by all GA workers once constructed; nothing in this
// package mutates a Problem after NewProblem returns it.
type Problem struct {
	staff int
	days  int
	role  []RoleTag
	pref  map[Cell]PreferenceKind

	// minCoverage is the global per-shift-kind headcount minimum.
	// Defaults to {Morning: 5, Night: 5}.
	minCoverage map[ShiftCode]int
	// roleMinima, if non-nil, overrides minCoverage with a per-role
	// per-shift minimum. Nil means "use the global rule for everyone".
	roleMinima map[RoleTag]map[ShiftCode]int
}

// Option configures optional Problem behaviour beyond the required
// staff/days/roles/constraints.
type Option func(*Problem)

// WithCoverageMinima overrides the default global ≥5 morning/night minimum.
func WithCoverageMinima(m map[ShiftCode]int) Option {
	return func(p *Problem) {
		p.minCoverage = m
	}
}

// WithRoleMinima configures per-role, per-shift-kind headcount minima. When
// set, the fitness evaluator checks each role's minimum independently
// instead of the pooled global minimum.
func WithRoleMinima(m map[RoleTag]map[ShiftCode]int) Option {
	return func(p *Problem) {
		p.roleMinima = m
	}
}

// NewProblem validates and constructs a Problem. roles must have exactly
// staff entries; every key in constraints must address a cell within
// [0,staff)×[0,days) and carry one of the three known preference kinds.
func NewProblem(staff, days int, roles []RoleTag, constraints map[Cell]PreferenceKind, opts ...Option) (*Problem, error) {
	if staff <= 0 {
		return nil, fmt.Errorf("schedule: staff must be > 0 (got %d)", staff)
	}
	if days <= 0 {
		return nil, fmt.Errorf("schedule: days must be > 0 (got %d)", days)
	}
	if len(roles) != staff {
		return nil, fmt.Errorf("schedule: len(roles)=%d must equal staff=%d", len(roles), staff)
	}
	for cell, kind := range constraints {
		if cell.Staff < 0 || cell.Staff >= staff {
			return nil, fmt.Errorf("schedule: constraint staff index %d out of range [0,%d)", cell.Staff, staff)
		}
		if cell.Day < 0 || cell.Day >= days {
			return nil, fmt.Errorf("schedule: constraint day index %d out of range [0,%d)", cell.Day, days)
		}
		if !kind.valid() {
			return nil, fmt.Errorf("schedule: unknown preference kind %q at (%d,%d)", kind, cell.Staff, cell.Day)
		}
	}

	roleCopy := make([]RoleTag, staff)
	copy(roleCopy, roles)

	prefCopy := make(map[Cell]PreferenceKind, len(constraints))
	for k, v := range constraints {
		prefCopy[k] = v
	}

	p := &Problem{
		staff:       staff,
		days:        days,
		role:        roleCopy,
		pref:        prefCopy,
		minCoverage: map[ShiftCode]int{Morning: 5, Night: 5},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Staff returns the staff count S.
func (p *Problem) Staff() int { return p.staff }

// Days returns the horizon length D.
func (p *Problem) Days() int { return p.days }

// Role returns the role tag of staff i.
func (p *Problem) Role(i int) RoleTag { return p.role[i] }

// Preference returns the preference kind for (staff, day), if any.
func (p *Problem) Preference(staff, day int) (PreferenceKind, bool) {
	k, ok := p.pref[Cell{Staff: staff, Day: day}]
	return k, ok
}

// RoleConfig is a (role, headcount) pair used to build a staff roster, the
// same shape as make_template.py's ROLE_CONFIG list.
type RoleConfig struct {
	Role  RoleTag
	Count int
}

// DefaultRoleConfig mirrors the original template's fixed staff breakdown:
// 5 Chief, 2 Leader, 3 Staff, 10 Assist.
func DefaultRoleConfig() []RoleConfig {
	return []RoleConfig{
		{Role: RoleChief, Count: 5},
		{Role: RoleLeader, Count: 2},
		{Role: RoleStaff, Count: 3},
		{Role: RoleAssist, Count: 10},
	}
}

// CoverageMinimum returns the required headcount for shift kind k, for a
// given role when role-specific minima are configured, or the pooled global
// minimum otherwise.
func (p *Problem) CoverageMinimum(role RoleTag, k ShiftCode) int {
	if p.roleMinima != nil {
		return p.roleMinima[role][k]
	}
	return p.minCoverage[k]
}

// HasRoleMinima reports whether per-role coverage minima are configured.
func (p *Problem) HasRoleMinima() bool { return p.roleMinima != nil }

// ExpandRoles turns a RoleConfig breakdown into a flat per-staff role slice.
func ExpandRoles(cfg []RoleConfig) []RoleTag {
	var out []RoleTag
	for _, rc := range cfg {
		for i := 0; i < rc.Count; i++ {
			out = append(out, rc.Role)
		}
	}
	return out
}
