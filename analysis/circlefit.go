// Package analysis provides geometric fitting on calibration point sets.
package analysis

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Point is a planar sample.
type Point struct {
	X float64
	Y float64
}

// Circle is a fitted circle.
type Circle struct {
	CenterX float64
	CenterY float64
	Radius  float64
}

// FitCircle computes the algebraic least-squares circle through the given
// points. At least three non-collinear points are required.
//
// The fit solves the linear system obtained from expanding
// (x-a)^2 + (y-b)^2 = r^2 into 2ax + 2by + c = x^2 + y^2.
func FitCircle(points []Point) (Circle, error) {
	if len(points) < 3 {
		return Circle{}, errors.Errorf("circle fit needs at least 3 points, got %d", len(points))
	}

	n := len(points)
	a := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range points {
		a.Set(i, 0, 2*p.X)
		a.Set(i, 1, 2*p.Y)
		a.Set(i, 2, 1)
		b.SetVec(i, p.X*p.X+p.Y*p.Y)
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return Circle{}, errors.Wrap(err, "degenerate point set")
	}

	cx := sol.AtVec(0)
	cy := sol.AtVec(1)
	r := math.Sqrt(sol.AtVec(2) + cx*cx + cy*cy)

	return Circle{CenterX: cx, CenterY: cy, Radius: r}, nil
}
