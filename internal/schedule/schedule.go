package schedule

import "fmt"

// ShiftCode is the integer cell value: rest, morning or night.
type ShiftCode int

const (
	Rest    ShiftCode = 0
	Morning ShiftCode = 1
	Night   ShiftCode = 2
)

func (c ShiftCode) String() string {
	switch c {
	case Rest:
		return "rest"
	case Morning:
		return "morning"
	case Night:
		return "night"
	default:
		return fmt.Sprintf("invalid(%d)", int(c))
	}
}

// Valid reports whether c is one of {Rest, Morning, Night}.
func (c ShiftCode) Valid() bool {
	return c == Rest || c == Morning || c == Night
}

// IsWorkDay reports whether c is a non-rest shift.
func (c ShiftCode) IsWorkDay() bool { return c != Rest }

// Schedule is a dense S×D matrix of shift codes, stored as a single
// backing slice sliced into per-staff rows so each schedule is allocated
// in one shot rather than row by row.
type Schedule struct {
	staff   int
	days    int
	backing []ShiftCode
	rows    [][]ShiftCode
}

// NewSchedule allocates a zero-valued (all rest) S×D schedule.
func NewSchedule(staff, days int) *Schedule {
	s := &Schedule{
		staff:   staff,
		days:    days,
		backing: make([]ShiftCode, staff*days),
	}
	s.rows = make([][]ShiftCode, staff)
	for i := 0; i < staff; i++ {
		s.rows[i] = s.backing[i*days : (i+1)*days]
	}
	return s
}

// Staff returns the staff dimension S.
func (s *Schedule) Staff() int { return s.staff }

// Days returns the day dimension D.
func (s *Schedule) Days() int { return s.days }

// Row returns the mutable row slice for staff i — the unit of meaning the
// crossover operator splits on.
func (s *Schedule) Row(i int) []ShiftCode { return s.rows[i] }

// Get returns the shift code at (staff, day).
func (s *Schedule) Get(staff, day int) ShiftCode { return s.rows[staff][day] }

// Set assigns the shift code at (staff, day).
func (s *Schedule) Set(staff, day int, c ShiftCode) { s.rows[staff][day] = c }

// Clone returns a deep, independently-owned copy.
func (s *Schedule) Clone() *Schedule {
	c := &Schedule{staff: s.staff, days: s.days, backing: make([]ShiftCode, len(s.backing))}
	copy(c.backing, s.backing)
	c.rows = make([][]ShiftCode, s.staff)
	for i := 0; i < s.staff; i++ {
		c.rows[i] = c.backing[i*s.days : (i+1)*s.days]
	}
	return c
}

// CopyFrom overwrites s in place with src's contents. src and s must share
// dimensions; used by the GA driver to avoid allocating a fresh Schedule
// per elite copy or per child.
func (s *Schedule) CopyFrom(src *Schedule) {
	copy(s.backing, src.backing)
}

// ToMatrix renders the schedule as a plain [][]int, the shape external
// callers receive: 0→rest, 1→morning, 2→night.
func (s *Schedule) ToMatrix() [][]int {
	out := make([][]int, s.staff)
	for i := 0; i < s.staff; i++ {
		row := make([]int, s.days)
		for d, c := range s.rows[i] {
			row[d] = int(c)
		}
		out[i] = row
	}
	return out
}
