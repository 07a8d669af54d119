package probing

import "math"

// simPad is the contact region of the simulated machine: a rectangular
// conductive pad at a fixed surface height.
type simPad struct {
	minX, maxX float64
	minY, maxY float64
	surfaceZ   float64
}

func (p simPad) contains(x, y float64) bool {
	return x >= p.minX && x <= p.maxX && y >= p.minY && y <= p.maxY
}

// simMachine is a cooperative motion model for tests. It mirrors the real
// controller's split between the logical tracker (updated at plan time)
// and the realized position (advanced a fixed distance per Idle tick), so
// a quick stop leaves the two diverged until ResyncPosition is called.
// It also implements ContactSensor against the pad model.
type simMachine struct {
	pad simPad

	logical  Position
	realized Position
	queue    []Position
	cleanup  int
	tick     float64

	moves     []Position // every MoveTo target, in order
	resyncedZ []float64  // realized Z at each resync
}

func newSimMachine(pad simPad, start Position) *simMachine {
	return &simMachine{
		pad:      pad,
		logical:  start,
		realized: start,
		tick:     0.02,
	}
}

func (m *simMachine) MoveTo(pos Position, feed float64) error {
	m.logical = pos
	m.queue = append(m.queue, pos)
	m.moves = append(m.moves, pos)
	return nil
}

func (m *simMachine) HasQueuedMotion() bool {
	return len(m.queue) > 0 || m.cleanup > 0
}

func (m *simMachine) Idle() {
	if m.cleanup > 0 {
		m.cleanup--
	}
	if len(m.queue) == 0 {
		return
	}
	target := m.queue[0]
	done := true
	step := func(cur *float64, tgt float64) {
		d := tgt - *cur
		if math.Abs(d) <= m.tick {
			*cur = tgt
			return
		}
		done = false
		if d > 0 {
			*cur += m.tick
		} else {
			*cur -= m.tick
		}
	}
	step(&m.realized.X, target.X)
	step(&m.realized.Y, target.Y)
	step(&m.realized.Z, target.Z)
	if done {
		m.queue = m.queue[1:]
	}
}

func (m *simMachine) QuickStop() {
	m.queue = nil
	m.cleanup = 2
}

func (m *simMachine) WaitIdle() {
	for m.HasQueuedMotion() {
		m.Idle()
	}
}

func (m *simMachine) RealizedPosition(axis Axis) (float64, error) {
	switch axis {
	case AxisX:
		return m.realized.X, nil
	case AxisY:
		return m.realized.Y, nil
	default:
		return m.realized.Z, nil
	}
}

func (m *simMachine) ResyncPosition(axis Axis) error {
	switch axis {
	case AxisX:
		m.logical.X = m.realized.X
	case AxisY:
		m.logical.Y = m.realized.Y
	default:
		m.logical.Z = m.realized.Z
		m.resyncedZ = append(m.resyncedZ, m.realized.Z)
	}
	return nil
}

func (m *simMachine) LogicalPosition() Position {
	return m.logical
}

func (m *simMachine) Triggered() bool {
	return m.realized.Z >= m.pad.surfaceZ && m.pad.contains(m.realized.X, m.realized.Y)
}

// simConfig returns probing constants sized for the simulated pad tests.
func simConfig() Config {
	cfg := DefaultConfig()
	cfg.SearchStep = 8.0
	cfg.MaxProbeZ = 40.0
	return cfg
}
