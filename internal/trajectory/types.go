package trajectory

import (
	"ortholab/internal/mat3"
)

// Config describes one run. It is supplied wholesale and never mutated.
type Config struct {
	Initial      mat3.Matrix
	Degree       int
	Coefficients []float64
	Steps        int
	Normalize    bool
}

// DefaultConfig returns the conventional cubic Newton-Schulz setup.
func DefaultConfig() Config {
	return Config{
		Initial:      mat3.Identity(),
		Degree:       3,
		Coefficients: []float64{1.5, -0.5},
		Steps:        6,
		Normalize:    true,
	}
}

// Snapshot is the state recorded after each step. Step 0 is the initial
// (possibly normalized) matrix. Sigma is ordered descending and holds
// NaN placeholders when the matrix is not finite or extraction failed.
type Snapshot struct {
	Step     int
	Matrix   mat3.Matrix
	Sigma    [3]float64
	Unstable bool
}

// Result is the ordered snapshot sequence of a run. FirstUnstable is the
// step index of the first unstable snapshot, or -1 if the whole run
// stayed finite.
type Result struct {
	Snapshots     []Snapshot
	FirstUnstable int
}

// Steps returns the number of polynomial applications actually taken
// (excluding the step-0 record).
func (r *Result) Steps() int {
	return len(r.Snapshots) - 1
}

// Observer is notified after each snapshot is recorded. Used by live
// views; the core never blocks on it.
type Observer interface {
	OnSnapshot(s Snapshot)
}
