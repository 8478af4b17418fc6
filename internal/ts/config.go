package ts

import "fmt"

type Config struct {
	Iterations        int
	IterationsPerCell int

	TabuTenure     int
	TabuTenureRand int

	NeighborsPerIter int
	Seed             int64
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerCell: 30,

		TabuTenure:     7,
		TabuTenureRand: 3,

		NeighborsPerIter: 40,
		Seed:             1,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerCell <= 0 {
		return fmt.Errorf("ts: must set Iterations > 0 or IterationsPerCell > 0")
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf("ts: TabuTenure must be > 0 (got %d)", c.TabuTenure)
	}
	if c.TabuTenureRand < 0 {
		return fmt.Errorf("ts: TabuTenureRand must be >= 0 (got %d)", c.TabuTenureRand)
	}
	if c.NeighborsPerIter <= 0 {
		return fmt.Errorf("ts: NeighborsPerIter must be > 0 (got %d)", c.NeighborsPerIter)
	}
	return nil
}
