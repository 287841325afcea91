// Package svd3 extracts singular values of 3x3 matrices.
//
// It diagonalizes A^T*A with cyclic Jacobi rotations instead of calling a
// general decomposition library: the shape is fixed, the iteration is a
// handful of rotations, and the tolerance stays under our control.
package svd3

import (
	"errors"
	"math"

	"ortholab/internal/mat3"
)

// Extraction failures. Callers treat both as a per-matrix instability
// condition, not a fatal failure.
var (
	// ErrNoConvergence indicates the Jacobi sweep limit was hit before
	// the off-diagonal mass vanished.
	ErrNoConvergence = errors.New("svd3: jacobi iteration did not converge")

	// ErrOverflow indicates A^T*A overflowed even though A itself is
	// finite; the squared singular values are not representable.
	ErrOverflow = errors.New("svd3: gram product overflowed")
)

const (
	maxSweeps = 50
	tol       = 1e-14
)

// Values returns the singular values of a, ordered descending. The
// caller is expected to pass a finite matrix; singular values of a
// non-finite matrix carry no meaning.
func Values(a mat3.Matrix) ([3]float64, error) {
	// B = A^T*A is symmetric PSD; its eigenvalues are the squared
	// singular values of A.
	b := a.Transpose().Mul(a)
	if !b.IsFinite() {
		return [3]float64{}, ErrOverflow
	}

	scale := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if v := math.Abs(b[r][c]); v > scale {
				scale = v
			}
		}
	}
	if scale == 0 {
		return [3]float64{}, nil
	}

	pairs := [3][2]int{{0, 1}, {0, 2}, {1, 2}}

	converged := false
	for sweep := 0; sweep <= maxSweeps; sweep++ {
		if offDiagonal(b, pairs) <= tol*scale {
			converged = true
			break
		}
		if sweep == maxSweeps {
			break
		}
		for _, pq := range pairs {
			p, q := pq[0], pq[1]
			if math.Abs(b[p][q]) <= tol*scale {
				continue
			}
			rotate(&b, p, q)
		}
	}
	if !converged {
		return [3]float64{}, ErrNoConvergence
	}

	sigma := [3]float64{}
	for i := 0; i < 3; i++ {
		// Rounding can push a tiny eigenvalue below zero.
		ev := b[i][i]
		if ev < 0 {
			ev = 0
		}
		sigma[i] = math.Sqrt(ev)
	}

	sortDescending(&sigma)
	return sigma, nil
}

// rotate applies a two-sided Jacobi rotation zeroing b[p][q].
func rotate(b *mat3.Matrix, p, q int) {
	theta := (b[q][q] - b[p][p]) / (2 * b[p][q])

	var t float64
	if math.Abs(theta) > 1e12 {
		t = 1 / (2 * theta)
	} else {
		t = math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
	}

	c := 1 / math.Sqrt(t*t+1)
	s := t * c

	bpp := b[p][p]
	bqq := b[q][q]
	bpq := b[p][q]

	b[p][p] = c*c*bpp - 2*s*c*bpq + s*s*bqq
	b[q][q] = s*s*bpp + 2*s*c*bpq + c*c*bqq
	b[p][q] = 0
	b[q][p] = 0

	for k := 0; k < 3; k++ {
		if k == p || k == q {
			continue
		}
		bkp := b[k][p]
		bkq := b[k][q]
		b[k][p] = c*bkp - s*bkq
		b[p][k] = b[k][p]
		b[k][q] = s*bkp + c*bkq
		b[q][k] = b[k][q]
	}
}

func offDiagonal(b mat3.Matrix, pairs [3][2]int) float64 {
	off := 0.0
	for _, pq := range pairs {
		off += b[pq[0]][pq[1]] * b[pq[0]][pq[1]]
	}
	return math.Sqrt(off)
}

func sortDescending(v *[3]float64) {
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if v[j] > v[i] {
				v[i], v[j] = v[j], v[i]
			}
		}
	}
}
