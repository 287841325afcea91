package trajectory

import (
	"math"

	"ortholab/internal/mat3"
	"ortholab/internal/poly"
	"ortholab/internal/svd3"
)

// Driver runs iterations and reports snapshots to its observers.
// A zero Driver is usable; observers are optional.
type Driver struct {
	observers []Observer
}

func New() *Driver {
	return &Driver{observers: make([]Observer, 0)}
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Run executes cfg to completion or early stop and returns the ordered
// snapshot sequence. Construction misuse (bad degree, mismatched
// coefficients, negative step count) is a hard error; numeric blow-up
// mid-run is absorbed into the snapshots.
func (d *Driver) Run(cfg Config) (*Result, error) {
	p, err := poly.New(cfg.Degree, cfg.Coefficients)
	if err != nil {
		return nil, &ConfigError{Field: "polynomial", Wrapped: err}
	}
	if cfg.Steps < 0 {
		return nil, &ConfigError{Field: "steps", Wrapped: ErrNegativeSteps}
	}

	current := cfg.Initial.Clone()
	if cfg.Normalize {
		current = normalize(current)
	}

	result := &Result{
		Snapshots:     make([]Snapshot, 0, cfg.Steps+1),
		FirstUnstable: -1,
	}
	d.record(result, 0, current)

	for step := 1; step <= cfg.Steps; step++ {
		if result.Snapshots[len(result.Snapshots)-1].Unstable {
			break
		}
		current = p.Apply(current)
		d.record(result, step, current)
	}

	return result, nil
}

// Run is the observer-less convenience entry point.
func Run(cfg Config) (*Result, error) {
	return New().Run(cfg)
}

// normalize scales m to unit Frobenius norm. A zero or non-finite norm
// leaves m untouched: dividing there would turn a well-defined zero
// matrix into NaN.
func normalize(m mat3.Matrix) mat3.Matrix {
	n := m.FrobeniusNorm()
	if n > 0 && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return m.Scale(1 / n)
	}
	return m
}

func (d *Driver) record(result *Result, step int, m mat3.Matrix) {
	s := makeSnapshot(step, m)
	if s.Unstable && result.FirstUnstable < 0 {
		result.FirstUnstable = step
	}
	result.Snapshots = append(result.Snapshots, s)
	for _, o := range d.observers {
		o.OnSnapshot(s)
	}
}

// makeSnapshot computes singular values for finite matrices; a
// non-finite matrix or a failed extraction yields NaN placeholders and
// the unstable flag. The sigma slot stays fixed at length 3: the shape
// is fixed by design, so the placeholder policy is too.
func makeSnapshot(step int, m mat3.Matrix) Snapshot {
	s := Snapshot{Step: step, Matrix: m}

	if !m.IsFinite() {
		s.Unstable = true
		s.Sigma = nanSigma()
		return s
	}

	sigma, err := svd3.Values(m)
	if err != nil {
		s.Unstable = true
		s.Sigma = nanSigma()
		return s
	}

	s.Sigma = sigma
	return s
}

func nanSigma() [3]float64 {
	nan := math.NaN()
	return [3]float64{nan, nan, nan}
}
