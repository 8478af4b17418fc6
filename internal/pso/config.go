package pso

import "fmt"

type Config struct {
	Iterations        int
	IterationsPerCell int

	Particles int

	W  float64
	C1 float64
	C2 float64

	VMax float64

	PosMin float64
	PosMax float64

	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerCell: 4,

		Particles: 30,

		W:  0.729,
		C1: 1.49445,
		C2: 1.49445,

		VMax:   0.25,
		PosMin: 0.0,
		PosMax: 1.0,

		Seed: 1,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerCell <= 0 {
		return fmt.Errorf("pso: must set Iterations > 0 or IterationsPerCell > 0")
	}
	if c.Particles <= 0 {
		return fmt.Errorf("pso: Particles must be > 0 (got %d)", c.Particles)
	}
	if c.W < 0 {
		return fmt.Errorf("pso: W must be >= 0 (got %f)", c.W)
	}
	if c.C1 < 0 || c.C2 < 0 {
		return fmt.Errorf("pso: C1 and C2 must be >= 0 (got %f, %f)", c.C1, c.C2)
	}
	if c.PosMin >= c.PosMax {
		return fmt.Errorf("pso: PosMin must be < PosMax (got %f >= %f)", c.PosMin, c.PosMax)
	}
	return nil
}
