package mat3

import (
	"fmt"
	"math"
)

// Matrix is a 3x3 real matrix, row-major. It is a value type: every
// operation returns a new Matrix and no operation mutates its receiver.
type Matrix [3][3]float64

func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

func Zero() Matrix {
	return Matrix{}
}

// FromSlice builds a Matrix from 9 row-major values.
func FromSlice(vals []float64) (Matrix, error) {
	if len(vals) != 9 {
		return Matrix{}, fmt.Errorf("mat3: need 9 values, got %d", len(vals))
	}
	var m Matrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r][c] = vals[r*3+c]
		}
	}
	return m, nil
}

func (m Matrix) Clone() Matrix {
	return m
}

// Flat returns the entries row-major.
func (m Matrix) Flat() []float64 {
	out := make([]float64, 0, 9)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out = append(out, m[r][c])
		}
	}
	return out
}

func (m Matrix) Transpose() Matrix {
	return Matrix{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

func (m Matrix) Add(other Matrix) Matrix {
	var out Matrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][c] + other[r][c]
		}
	}
	return out
}

func (m Matrix) Sub(other Matrix) Matrix {
	var out Matrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][c] - other[r][c]
		}
	}
	return out
}

func (m Matrix) Scale(factor float64) Matrix {
	var out Matrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][c] * factor
		}
	}
	return out
}

// Mul returns m x other. The dot products are unrolled since the shape
// is fixed.
func (m Matrix) Mul(other Matrix) Matrix {
	var out Matrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][0]*other[0][c] + m[r][1]*other[1][c] + m[r][2]*other[2][c]
		}
	}
	return out
}

// Gram returns m x m^T.
func (m Matrix) Gram() Matrix {
	return m.Mul(m.Transpose())
}

// FrobeniusNorm returns sqrt of the sum of squared entries. A non-finite
// entry propagates into the norm rather than being masked.
func (m Matrix) FrobeniusNorm() float64 {
	sum := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum += m[r][c] * m[r][c]
		}
	}
	return math.Sqrt(sum)
}

// IsFinite reports whether all 9 entries are finite real numbers.
func (m Matrix) IsFinite() bool {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if math.IsNaN(m[r][c]) || math.IsInf(m[r][c], 0) {
				return false
			}
		}
	}
	return true
}
