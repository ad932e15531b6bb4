// Package membership provides the triangular and trapezoidal membership
// functions used to fuzzify crisp readings.
//
// A Function is a plain value built from its control points. Evaluation never
// extrapolates: outside the support the degree is 0, so every result lies in
// [0,1] regardless of the input.
package membership

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"netdiag/internal/errors"
)

// Kind identifies the shape of a membership function
type Kind string

const (
	// KindTriangular is defined by three points a <= b <= c
	KindTriangular Kind = "triangular"

	// KindTrapezoidal is defined by four points a <= b <= c <= d
	KindTrapezoidal Kind = "trapezoidal"
)

// Function is an immutable membership function
type Function struct {
	// Kind is the shape of the function
	Kind Kind `json:"kind" yaml:"kind"`

	// Points are the control points in ascending order
	Points []float64 `json:"points" yaml:"points"`
}

// Triangular returns a triangle rising from a to a peak at b and falling to c.
// a == b and b == c are valid and produce shoulders.
func Triangular(a, b, c float64) Function {
	return Function{Kind: KindTriangular, Points: []float64{a, b, c}}
}

// Trapezoidal returns a trapezoid rising on (a,b), flat at 1 on [b,c] and
// falling on (c,d).
func Trapezoidal(a, b, c, d float64) Function {
	return Function{Kind: KindTrapezoidal, Points: []float64{a, b, c, d}}
}

// Validate checks the point count, finiteness and ordering of the control points
func (f Function) Validate() error {
	want := 0
	switch f.Kind {
	case KindTriangular:
		want = 3
	case KindTrapezoidal:
		want = 4
	default:
		return errors.Membership(fmt.Sprintf("unknown membership function kind %q", f.Kind))
	}

	if len(f.Points) != want {
		return errors.Membership(fmt.Sprintf("%s function needs %d points, got %d", f.Kind, want, len(f.Points)))
	}

	for i, p := range f.Points {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return errors.Membership(fmt.Sprintf("%s point %d is not finite", f.Kind, i))
		}
		if i > 0 && p < f.Points[i-1] {
			return errors.Membership(fmt.Sprintf("%s points must be non-decreasing: %v", f.Kind, f.Points))
		}
	}
	return nil
}

// Degree evaluates the function at x. Invalid functions and NaN inputs yield 0.
func (f Function) Degree(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	switch {
	case f.Kind == KindTriangular && len(f.Points) == 3:
		return triangle(x, f.Points[0], f.Points[1], f.Points[2])
	case f.Kind == KindTrapezoidal && len(f.Points) == 4:
		return trapezoid(x, f.Points[0], f.Points[1], f.Points[2], f.Points[3])
	}
	return 0
}

// Support returns the outer bounds of the function
func (f Function) Support() (lo, hi float64) {
	if len(f.Points) == 0 {
		return 0, 0
	}
	return f.Points[0], f.Points[len(f.Points)-1]
}

// String renders the function as kind(points)
func (f Function) String() string {
	return fmt.Sprintf("%s%v", f.Kind, f.Points)
}

// The peak is tested first so that shoulders (a == b or b == c) never reach a
// ramp branch with a zero-width denominator.
func triangle(x, a, b, c float64) float64 {
	if x == b {
		return 1
	}
	if x <= a || x >= c {
		return 0
	}
	if x < b {
		return (x - a) / (b - a)
	}
	return (c - x) / (c - b)
}

// The plateau [b,c] is closed and tested first: x == b and x == c are 1, and a
// shoulder at the domain edge (a == b or c == d) stays at 1 there.
func trapezoid(x, a, b, c, d float64) float64 {
	if x >= b && x <= c {
		return 1
	}
	if x <= a || x >= d {
		return 0
	}
	if x < b {
		return (x - a) / (b - a)
	}
	return (d - x) / (d - c)
}

// Point is one sample of a membership curve
type Point struct {
	X      float64 `json:"x"`
	Degree float64 `json:"degree"`
}

// Curve samples f at n+1 evenly spaced points across [lo, hi].
func Curve(f Function, lo, hi float64, n int) []Point {
	if n < 1 {
		n = 1
	}
	xs := floats.Span(make([]float64, n+1), lo, hi)
	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = Point{X: x, Degree: f.Degree(x)}
	}
	return points
}
