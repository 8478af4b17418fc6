package sa

import "fmt"

// Neighborhood selects how a candidate schedule is perturbed.
type Neighborhood string

const (
	// NeighborhoodCell redraws one random (staff, day) cell.
	NeighborhoodCell Neighborhood = "cell"
	// NeighborhoodSwap exchanges the shift codes of two cells on the same
	// staff row, preserving that staff member's total shift counts.
	NeighborhoodSwap Neighborhood = "swap"
)

type Config struct {
	Iterations        int
	IterationsPerCell int

	InitialTemp float64
	FinalTemp   float64
	Alpha       float64

	Neighborhood Neighborhood
	Seed         int64
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerCell: 50,

		InitialTemp: 50.0,
		FinalTemp:   0.05,
		Alpha:       0.995,

		Neighborhood: NeighborhoodCell,
		Seed:         1,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerCell <= 0 {
		return fmt.Errorf("sa: must set Iterations > 0 or IterationsPerCell > 0")
	}
	if c.InitialTemp <= 0 {
		return fmt.Errorf("sa: InitialTemp must be > 0 (got %f)", c.InitialTemp)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf("sa: FinalTemp must be > 0 (got %f)", c.FinalTemp)
	}
	if c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf("sa: FinalTemp must be < InitialTemp (got %f >= %f)", c.FinalTemp, c.InitialTemp)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("sa: alpha must be in (0,1) (got %f)", c.Alpha)
	}
	switch c.Neighborhood {
	case NeighborhoodCell, NeighborhoodSwap:
		// ok
	default:
		return fmt.Errorf("sa: unknown neighborhood %q", c.Neighborhood)
	}
	return nil
}
