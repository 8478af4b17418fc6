// Package config loads a schedule.Problem from a TOML file: staff count,
// days, per-staff roles, and preference constraints.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"shiftgen/internal/schedule"
)

// ConstraintEntry is one row of the [[constraint]] array in the TOML file.
type ConstraintEntry struct {
	Staff int    `toml:"staff"`
	Day   int    `toml:"day"`
	Kind  string `toml:"kind"`
}

// RoleMinimumEntry is one row of the [[role_minimum]] array, giving an
// optional per-role, per-shift coverage floor.
type RoleMinimumEntry struct {
	Role    string `toml:"role"`
	Shift   string `toml:"shift"`
	Minimum int    `toml:"minimum"`
}

// ProblemFile is the on-disk shape of a problem definition.
type ProblemFile struct {
	StaffCount int      `toml:"staff_count"`
	Days       int      `toml:"days"`
	Roles      []string `toml:"roles"`

	Constraints []ConstraintEntry `toml:"constraint"`

	MinMorning int `toml:"min_morning"`
	MinNight   int `toml:"min_night"`

	RoleMinima []RoleMinimumEntry `toml:"role_minimum"`
}

// LoadProblem reads path as TOML and builds a schedule.Problem from it.
func LoadProblem(path string) (*schedule.Problem, error) {
	var pf ProblemFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return pf.Build()
}

// Build validates and converts the decoded file into a schedule.Problem.
func (pf ProblemFile) Build() (*schedule.Problem, error) {
	if len(pf.Roles) != pf.StaffCount && len(pf.Roles) != 0 {
		return nil, fmt.Errorf("config: roles has %d entries, want staff_count %d", len(pf.Roles), pf.StaffCount)
	}

	roles := make([]schedule.RoleTag, pf.StaffCount)
	if len(pf.Roles) == 0 {
		pool := schedule.ExpandRoles(schedule.DefaultRoleConfig())
		for i := range roles {
			roles[i] = pool[i%len(pool)]
		}
	} else {
		for i, r := range pf.Roles {
			roles[i] = schedule.RoleTag(r)
		}
	}

	constraints := make(map[schedule.Cell]schedule.PreferenceKind, len(pf.Constraints))
	for _, c := range pf.Constraints {
		kind, err := parseKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("config: constraint (staff=%d, day=%d): %w", c.Staff, c.Day, err)
		}
		constraints[schedule.Cell{Staff: c.Staff, Day: c.Day}] = kind
	}

	var opts []schedule.Option
	if pf.MinMorning > 0 || pf.MinNight > 0 {
		minima := map[schedule.ShiftCode]int{}
		if pf.MinMorning > 0 {
			minima[schedule.Morning] = pf.MinMorning
		}
		if pf.MinNight > 0 {
			minima[schedule.Night] = pf.MinNight
		}
		opts = append(opts, schedule.WithCoverageMinima(minima))
	}

	if len(pf.RoleMinima) > 0 {
		roleMinima := map[schedule.RoleTag]map[schedule.ShiftCode]int{}
		for _, rm := range pf.RoleMinima {
			shift, err := parseShift(rm.Shift)
			if err != nil {
				return nil, fmt.Errorf("config: role_minimum (role=%s): %w", rm.Role, err)
			}
			role := schedule.RoleTag(rm.Role)
			if roleMinima[role] == nil {
				roleMinima[role] = map[schedule.ShiftCode]int{}
			}
			roleMinima[role][shift] = rm.Minimum
		}
		opts = append(opts, schedule.WithRoleMinima(roleMinima))
	}

	return schedule.NewProblem(pf.StaffCount, pf.Days, roles, constraints, opts...)
}

func parseKind(s string) (schedule.PreferenceKind, error) {
	switch schedule.PreferenceKind(s) {
	case schedule.PrefNG, schedule.PrefNoNight, schedule.PrefNoMorning:
		return schedule.PreferenceKind(s), nil
	default:
		return "", fmt.Errorf("unknown preference kind %q", s)
	}
}

func parseShift(s string) (schedule.ShiftCode, error) {
	switch s {
	case "morning":
		return schedule.Morning, nil
	case "night":
		return schedule.Night, nil
	case "rest":
		return schedule.Rest, nil
	default:
		return 0, fmt.Errorf("unknown shift %q", s)
	}
}
