package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circlePoints(cx, cy, r float64, n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)}
	}
	return pts
}

func TestFitCircleExact(t *testing.T) {
	c, err := FitCircle(circlePoints(1.5, -2.0, 4.0, 8))
	require.NoError(t, err)

	assert.InDelta(t, 1.5, c.CenterX, 1e-9)
	assert.InDelta(t, -2.0, c.CenterY, 1e-9)
	assert.InDelta(t, 4.0, c.Radius, 1e-9)
}

func TestFitCircleFourProbePoints(t *testing.T) {
	// Axis-aligned contact points like a centering run produces.
	pts := []Point{
		{X: 1, Y: 4},
		{X: 1, Y: -2},
		{X: 6, Y: 1},
		{X: -4, Y: 1},
	}

	c, err := FitCircle(pts)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, c.CenterX, 0.3)
	assert.InDelta(t, 1.0, c.CenterY, 0.3)
}

func TestFitCircleTooFewPoints(t *testing.T) {
	_, err := FitCircle([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	assert.Error(t, err)
}

func TestFitCircleCollinear(t *testing.T) {
	_, err := FitCircle([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}})
	assert.Error(t, err)
}
