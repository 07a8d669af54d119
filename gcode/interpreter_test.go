package gcode

import (
	"strings"
	"testing"

	"proboter/board"
	"proboter/probing"
)

// fakeMover records planned moves.
type fakeMover struct {
	pos   probing.Position
	moves []probing.Position
	feeds []float64
}

func (m *fakeMover) MoveTo(pos probing.Position, feed float64) error {
	m.pos = pos
	m.moves = append(m.moves, pos)
	m.feeds = append(m.feeds, feed)
	return nil
}

func (m *fakeMover) SetPosition(pos probing.Position) { m.pos = pos }
func (m *fakeMover) LogicalPosition() probing.Position { return m.pos }
func (m *fakeMover) WaitIdle() {}

// fakeCenterer returns a canned centering result.
type fakeCenterer struct {
	res  probing.CenterResult
	err  error
	runs int
}

func (c *fakeCenterer) CenterCircle() (probing.CenterResult, error) {
	c.runs++
	return c.res, c.err
}

// fakeLight records intensity writes.
type fakeLight struct {
	intensity uint8
}

func (l *fakeLight) SetIntensity(intensity uint8) error { l.intensity = intensity; return nil }
func (l *fakeLight) Status() int {
	if l.intensity > 0 {
		return 1
	}
	return 0
}

// fakePCB returns a canned status.
type fakePCB struct{}

func (fakePCB) ReadStatus() board.Status {
	return board.Status{BorderPads: true, Pads: []bool{true, false, true}}
}

func newTestInterpreter(prober Centerer, extras Peripherals) (*Interpreter, *fakeMover, *[]string) {
	mover := &fakeMover{}
	var responses []string
	interp := NewInterpreter(mover, prober, 50, func(line string) {
		responses = append(responses, line)
	}, extras)
	return interp, mover, &responses
}

func execLine(t *testing.T, interp *Interpreter, line string) {
	t.Helper()
	cmd, err := NewParser().ParseLine(line)
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", line, err)
	}
	if err := interp.Execute(cmd); err != nil {
		t.Fatalf("Failed to execute %q: %v", line, err)
	}
}

func TestAbsoluteAndRelativeMoves(t *testing.T) {
	interp, mover, _ := newTestInterpreter(&fakeCenterer{}, Peripherals{})

	execLine(t, interp, "G1 X10 Y20 F600")
	if mover.pos.X != 10 || mover.pos.Y != 20 {
		t.Errorf("Expected (10,20), got (%f,%f)", mover.pos.X, mover.pos.Y)
	}
	// F is mm/min on the wire.
	if mover.feeds[0] != 10 {
		t.Errorf("Expected feed 10 mm/s, got %f", mover.feeds[0])
	}

	execLine(t, interp, "G91")
	execLine(t, interp, "G1 X-3")
	if mover.pos.X != 7 {
		t.Errorf("Expected X=7 after relative move, got %f", mover.pos.X)
	}

	execLine(t, interp, "G90")
	execLine(t, interp, "G92 X0 Y0 Z0")
	if mover.pos != (probing.Position{}) {
		t.Errorf("Expected origin after G92, got %+v", mover.pos)
	}
}

func TestM370EmitsCalibrationPoints(t *testing.T) {
	prober := &fakeCenterer{
		res: probing.CenterResult{
			Points: [4]probing.BoundaryPoint{
				{X: 1.0005, Y: 4, Z: 30.12, Converged: true},
				{X: 1, Y: -2, Z: 30.11, Converged: true},
				{X: 6, Y: 1, Z: 30.12, Converged: true},
				{X: -4, Y: 1, Z: 30.13, Converged: false},
			},
		},
	}
	interp, _, responses := newTestInterpreter(prober, Peripherals{})

	execLine(t, interp, "M370")

	if prober.runs != 1 {
		t.Fatalf("Expected one centering run, got %d", prober.runs)
	}
	if len(*responses) != 1 {
		t.Fatalf("Expected one response line, got %d", len(*responses))
	}
	line := (*responses)[0]
	if !strings.HasPrefix(line, "calibration_points: [") {
		t.Errorf("Unexpected report prefix: %q", line)
	}
	// Coordinates are rounded to 3 decimals for the wire.
	if !strings.Contains(line, `"x":1.001`) {
		t.Errorf("Expected rounded x in %q", line)
	}
	if !strings.Contains(line, `"converged":false`) {
		t.Errorf("Expected unconverged flag in %q", line)
	}
}

func TestM370ReportsMissingContact(t *testing.T) {
	prober := &fakeCenterer{err: probing.ErrNoInitialContact}
	interp, _, responses := newTestInterpreter(prober, Peripherals{})

	execLine(t, interp, "M370")

	if len(*responses) != 1 || !strings.Contains((*responses)[0], "ERROR: First probe not touched pin") {
		t.Errorf("Expected error response, got %v", *responses)
	}
}

func TestM371TestPCBStatus(t *testing.T) {
	interp, _, responses := newTestInterpreter(&fakeCenterer{}, Peripherals{TestPCB: fakePCB{}})

	execLine(t, interp, "M371")

	if len(*responses) != 1 {
		t.Fatalf("Expected one response, got %d", len(*responses))
	}
	line := (*responses)[0]
	if !strings.Contains(line, `"border-pads":1`) {
		t.Errorf("Expected border pad status in %q", line)
	}
	if !strings.Contains(line, `"test-pads":[1,0,1]`) {
		t.Errorf("Expected test pad list in %q", line)
	}
}

func TestLightCommands(t *testing.T) {
	light := &fakeLight{}
	interp, _, responses := newTestInterpreter(&fakeCenterer{}, Peripherals{Light: light})

	execLine(t, interp, "M375")
	if (*responses)[0] != "0" {
		t.Errorf("Expected light status 0, got %q", (*responses)[0])
	}

	execLine(t, interp, "M376 I200")
	if light.intensity != 200 {
		t.Errorf("Expected intensity 200, got %d", light.intensity)
	}

	execLine(t, interp, "M375")
	if (*responses)[1] != "1" {
		t.Errorf("Expected light status 1, got %q", (*responses)[1])
	}

	// Missing I parameter is ignored.
	execLine(t, interp, "M376")
	if light.intensity != 200 {
		t.Errorf("Intensity should be unchanged, got %d", light.intensity)
	}
}

func TestM375WithoutLightController(t *testing.T) {
	interp, _, responses := newTestInterpreter(&fakeCenterer{}, Peripherals{})

	execLine(t, interp, "M375")
	if (*responses)[0] != "-1" {
		t.Errorf("Expected -1 without light controller, got %q", (*responses)[0])
	}
}
