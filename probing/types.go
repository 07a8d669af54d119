package probing

// Axis identifies one machine axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis name used in configuration files.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// Position is a point in machine coordinates (mm). Z grows toward the
// probing surface.
type Position struct {
	X float64
	Y float64
	Z float64
}

// Direction is a unit vector in the XY plane selecting the scan direction
// of one edge search.
type Direction struct {
	X float64
	Y float64
}

// ContactResult is the outcome of a single probe-down operation.
type ContactResult struct {
	// Triggered reports whether the sensor tripped before the Z limit
	// was reached.
	Triggered bool

	// ContactZ is the realized Z position sampled from the stepper
	// counters at the moment the sensor tripped. Only meaningful when
	// ZLatched is set: a sensor that is already closed when the probe
	// starts never enters the poll loop, so no sample is taken and the
	// caller keeps its previous contact Z.
	ContactZ float64
	ZLatched bool

	// Pos is the logical position after the retract move.
	Pos Position
}

// BoundaryPoint is the resolved contact location for one search direction.
type BoundaryPoint struct {
	X float64
	Y float64
	Z float64

	// Converged is false when the edge search exhausted its iteration
	// budget; the point is then a best-effort sample, not a bracketed
	// edge.
	Converged bool
}

// CenterResult holds the output of one full centering run: the four
// calibration points (+Y, -Y and the second +X/-X pass) and the refined
// center they were probed from.
type CenterResult struct {
	Points [4]BoundaryPoint
	Center Position
}

// Retract selects how the head leaves the surface after a probe: either to
// an absolute Z, or by a relative clearance above the contact point.
type Retract struct {
	absolute bool
	value    float64
}

// RetractTo retracts to an absolute Z position.
func RetractTo(z float64) Retract {
	return Retract{absolute: true, value: z}
}

// RetractBy retracts by a relative clearance above the stop position.
func RetractBy(clearance float64) Retract {
	return Retract{value: clearance}
}

// Config holds the tuning constants of the probing cycle.
type Config struct {
	// MinStep is the lateral resolution an edge search refines down to (mm).
	MinStep float64

	// SearchStep is the initial lateral hunt step of an edge search (mm).
	SearchStep float64

	// MaxProbeZ is the furthest Z the head may travel hunting for the
	// first contact (mm).
	MaxProbeZ float64

	// ZClearance is how far the head retracts above the contact point (mm).
	ZClearance float64

	// OvershootMargin is added to the probe depth of every edge-search
	// sample: after a lateral step the head may need to reach slightly
	// deeper than the first contact to reacquire the surface (mm).
	OvershootMargin float64

	// FeedRate is the probing feed (mm/s).
	FeedRate float64

	// MaxIterations bounds the number of consecutive no-progress steps
	// in one edge search.
	MaxIterations int
}

// DefaultConfig returns the stock probing constants.
func DefaultConfig() Config {
	return Config{
		MinStep:         0.01,
		SearchStep:      2.0,
		MaxProbeZ:       120.0,
		ZClearance:      1.0,
		OvershootMargin: 0.75,
		FeedRate:        5.0,
		MaxIterations:   20,
	}
}
