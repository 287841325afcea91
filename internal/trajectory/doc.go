// Package trajectory drives Newton-Schulz style matrix iterations.
//
// A run starts from a 3x3 matrix, optionally normalizes it by its
// Frobenius norm, then repeatedly applies an odd matrix polynomial,
// recording a [Snapshot] after every step:
//
//	cfg := trajectory.Config{
//		Initial:      mat3.Identity(),
//		Degree:       3,
//		Coefficients: []float64{1.5, -0.5},
//		Steps:        6,
//		Normalize:    true,
//	}
//	result, err := trajectory.Run(cfg)
//
// Each snapshot carries the matrix, its singular values (descending) and
// an instability flag. Once a step produces a non-finite entry the run
// stops early: further applications of the polynomial only multiply and
// sum the broken entries, so continuing wastes work and can produce
// finite-looking artifacts. Numeric blow-up is data, not an error -
// callers read it off the snapshots and [Result.FirstUnstable].
//
// Runs are synchronous, deterministic and share no state: the same
// Config always yields a bit-identical snapshot sequence.
package trajectory
