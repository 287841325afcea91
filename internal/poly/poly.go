package poly

import (
	"errors"
	"fmt"

	"ortholab/internal/mat3"
)

var (
	// ErrUnsupportedDegree indicates a degree other than 3 or 5.
	ErrUnsupportedDegree = errors.New("poly: unsupported degree (want 3 or 5)")

	// ErrInvalidCoefficients indicates a coefficient vector whose length
	// does not match the degree.
	ErrInvalidCoefficients = errors.New("poly: coefficient count does not match degree")
)

// Polynomial is an odd matrix polynomial in X built from X and its Gram
// product G = X*X^T:
//
//	degree 3: p(X) = a0*X + a1*(G*X)
//	degree 5: p(X) = a0*X + a1*(G*X) + a2*(G*G*X)
//
// These are the Newton-Schulz style maps used for orthogonalization.
// A Polynomial is immutable after construction.
type Polynomial struct {
	Degree       int
	Coefficients []float64
}

// CoefficientCount returns the number of coefficients required for a
// degree, (degree+1)/2. Only meaningful for odd degrees.
func CoefficientCount(degree int) int {
	return (degree + 1) / 2
}

// New validates degree and coefficient length and returns the polynomial.
// The coefficient slice is copied so later caller mutation cannot leak in.
func New(degree int, coefficients []float64) (Polynomial, error) {
	if degree != 3 && degree != 5 {
		return Polynomial{}, fmt.Errorf("%w: got %d", ErrUnsupportedDegree, degree)
	}
	if want := CoefficientCount(degree); len(coefficients) != want {
		return Polynomial{}, fmt.Errorf("%w: degree %d wants %d coefficients, got %d",
			ErrInvalidCoefficients, degree, want, len(coefficients))
	}

	coeffs := make([]float64, len(coefficients))
	copy(coeffs, coefficients)

	return Polynomial{Degree: degree, Coefficients: coeffs}, nil
}

// Apply evaluates the polynomial at x. The Gram product is computed once
// and reused for every term.
func (p Polynomial) Apply(x mat3.Matrix) mat3.Matrix {
	g := x.Gram()
	gx := g.Mul(x)

	out := x.Scale(p.Coefficients[0]).Add(gx.Scale(p.Coefficients[1]))
	if p.Degree == 5 {
		out = out.Add(g.Mul(gx).Scale(p.Coefficients[2]))
	}
	return out
}
