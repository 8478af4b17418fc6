package aco

import "fmt"

type Config struct {
	Iterations        int
	IterationsPerCell int

	Ants int

	Alpha float64
	Beta  float64

	Rho float64
	Q   float64

	Tau0 float64
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerCell: 4,

		Ants: 20,

		Alpha: 1.0,
		Beta:  2.0,

		Rho: 0.20,
		Q:   50.0,

		Tau0: 1.0,
		Seed: 1,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerCell <= 0 {
		return fmt.Errorf("aco: must set Iterations > 0 or IterationsPerCell > 0")
	}
	if c.Ants <= 0 {
		return fmt.Errorf("aco: ants must be > 0 (got %d)", c.Ants)
	}
	if c.Alpha < 0 {
		return fmt.Errorf("aco: alpha must be >= 0 (got %f)", c.Alpha)
	}
	if c.Beta < 0 {
		return fmt.Errorf("aco: beta must be >= 0 (got %f)", c.Beta)
	}
	if c.Rho <= 0 || c.Rho >= 1 {
		return fmt.Errorf("aco: rho must be in (0,1) (got %f)", c.Rho)
	}
	if c.Q <= 0 {
		return fmt.Errorf("aco: Q must be > 0 (got %f)", c.Q)
	}
	if c.Tau0 <= 0 {
		return fmt.Errorf("aco: tau0 must be > 0 (got %f)", c.Tau0)
	}
	return nil
}
