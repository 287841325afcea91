package poly

import (
	"errors"
	"math"
	"testing"

	"ortholab/internal/mat3"
)

func TestNewRejectsBadDegree(t *testing.T) {
	for _, degree := range []int{0, 1, 2, 4, 6, 7, -3} {
		if _, err := New(degree, []float64{1, 0}); !errors.Is(err, ErrUnsupportedDegree) {
			t.Errorf("degree %d: expected ErrUnsupportedDegree, got %v", degree, err)
		}
	}
}

func TestNewRejectsMismatchedCoefficients(t *testing.T) {
	tests := []struct {
		name   string
		degree int
		coeffs []float64
	}{
		{"degree 3 too many", 3, []float64{1, 0, 0}},
		{"degree 3 too few", 3, []float64{1}},
		{"degree 3 empty", 3, nil},
		{"degree 5 too few", 5, []float64{1, 0}},
		{"degree 5 too many", 5, []float64{1, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.degree, tt.coeffs); !errors.Is(err, ErrInvalidCoefficients) {
				t.Errorf("expected ErrInvalidCoefficients, got %v", err)
			}
		})
	}
}

func TestIdentityPolynomial(t *testing.T) {
	x := mat3.Matrix{
		{0.3, -1.2, 2},
		{4, 0.5, -0.1},
		{1, 1, 1},
	}

	p3, err := New(3, []float64{1, 0})
	if err != nil {
		t.Fatalf("New(3) failed: %v", err)
	}
	if got := p3.Apply(x); got != x {
		t.Errorf("degree 3 [1,0] should be identity map, got %v", got)
	}

	p5, err := New(5, []float64{1, 0, 0})
	if err != nil {
		t.Fatalf("New(5) failed: %v", err)
	}
	if got := p5.Apply(x); got != x {
		t.Errorf("degree 5 [1,0,0] should be identity map, got %v", got)
	}
}

func TestApplyDegree3(t *testing.T) {
	// For X = 2*I, G = 4*I, so p(X) = a0*2*I + a1*8*I.
	x := mat3.Identity().Scale(2)

	p, err := New(3, []float64{1.5, -0.5})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := mat3.Identity().Scale(1.5*2 - 0.5*8)
	got := p.Apply(x)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if math.Abs(got[r][c]-want[r][c]) > 1e-12 {
				t.Fatalf("p(2I) = %v, want %v", got, want)
			}
		}
	}
}

func TestApplyDegree5(t *testing.T) {
	// For X = s*I the map reduces to the scalar odd polynomial
	// a0*s + a1*s^3 + a2*s^5 on the diagonal.
	s := 0.7
	x := mat3.Identity().Scale(s)

	coeffs := []float64{3.4445, -4.775, 2.0315}
	p, err := New(5, coeffs)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	scalar := coeffs[0]*s + coeffs[1]*math.Pow(s, 3) + coeffs[2]*math.Pow(s, 5)
	got := p.Apply(x)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := 0.0
			if r == c {
				want = scalar
			}
			if math.Abs(got[r][c]-want) > 1e-12 {
				t.Fatalf("p(sI)[%d][%d] = %f, want %f", r, c, got[r][c], want)
			}
		}
	}
}

func TestNewCopiesCoefficients(t *testing.T) {
	coeffs := []float64{1.5, -0.5}
	p, err := New(3, coeffs)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	coeffs[0] = 99
	if p.Coefficients[0] != 1.5 {
		t.Error("polynomial shares caller's coefficient slice")
	}
}

func TestApplyPropagatesNonFinite(t *testing.T) {
	x := mat3.Identity()
	x[0][0] = math.NaN()

	p, err := New(3, []float64{1.5, -0.5})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := p.Apply(x)
	if got.IsFinite() {
		t.Error("expected non-finite result from non-finite input")
	}
}
