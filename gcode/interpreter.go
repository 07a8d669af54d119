package gcode

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"proboter/board"
	"proboter/probing"
)

// Mover is the interface to the motion controller.
type Mover interface {
	MoveTo(pos probing.Position, feed float64) error
	SetPosition(pos probing.Position)
	LogicalPosition() probing.Position
	WaitIdle()
}

// Centerer runs the probing cycle.
type Centerer interface {
	CenterCircle() (probing.CenterResult, error)
}

// LightControl drives the head light.
type LightControl interface {
	SetIntensity(intensity uint8) error
	Status() int
}

// PadStatusReader reads the evaluation test PCB.
type PadStatusReader interface {
	ReadStatus() board.Status
}

// Responder emits one line of telemetry back to the host.
type Responder func(line string)

// Peripherals are the optional board attachments; nil entries are treated
// as not fitted.
type Peripherals struct {
	Light   LightControl
	TestPCB PadStatusReader
}

// Interpreter executes parsed G-code commands.
type Interpreter struct {
	mover   Mover
	prober  Centerer
	light   LightControl
	testPCB PadStatusReader
	respond Responder

	absoluteMode bool
	feedRate     float64 // mm/s
}

// NewInterpreter creates a G-code interpreter.
func NewInterpreter(mover Mover, prober Centerer, defaultFeed float64, respond Responder, extras Peripherals) *Interpreter {
	return &Interpreter{
		mover:        mover,
		prober:       prober,
		light:        extras.Light,
		testPCB:      extras.TestPCB,
		respond:      respond,
		absoluteMode: true,
		feedRate:     defaultFeed,
	}
}

// Execute executes a parsed command.
func (interp *Interpreter) Execute(cmd *Command) error {
	if cmd == nil {
		return nil
	}

	switch cmd.Type {
	case 'G':
		return interp.executeG(cmd)
	case 'M':
		return interp.executeM(cmd)
	}

	return nil
}

func (interp *Interpreter) executeG(cmd *Command) error {
	switch cmd.Number {
	case 0, 1: // G0/G1 - Linear move
		return interp.doMove(cmd)
	case 90: // G90 - Absolute positioning
		interp.absoluteMode = true
	case 91: // G91 - Relative positioning
		interp.absoluteMode = false
	case 92: // G92 - Set position
		return interp.doSetPosition(cmd)
	}

	return nil
}

func (interp *Interpreter) executeM(cmd *Command) error {
	switch cmd.Number {
	case 114: // M114 - Report current position
		pos := interp.mover.LogicalPosition()
		interp.respond(fmt.Sprintf("X:%.3f Y:%.3f Z:%.3f", pos.X, pos.Y, pos.Z))
	case 370: // M370 - 4 point circle centering
		return interp.doCenterCircle()
	case 371: // M371 - Get test PCB status
		return interp.doTestPCBStatus()
	case 375: // M375 - Get light status
		if interp.light == nil {
			// No light control support
			interp.respond("-1")
			return nil
		}
		interp.respond(fmt.Sprintf("%d", interp.light.Status()))
	case 376: // M376 - Set light intensity
		if interp.light == nil || !cmd.HasParameter('I') {
			return nil
		}
		intensity := cmd.GetParameter('I', 0)
		if intensity < 0 {
			intensity = 0
		}
		if intensity > 255 {
			intensity = 255
		}
		return interp.light.SetIntensity(uint8(intensity))
	}

	return nil
}

// pointReport is the wire form of one calibration point.
type pointReport struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Converged bool    `json:"converged"`
}

func (interp *Interpreter) doCenterCircle() error {
	res, err := interp.prober.CenterCircle()
	if errors.Is(err, probing.ErrNoInitialContact) {
		interp.respond(" ERROR: First probe not touched pin")
		return nil
	}
	if err != nil {
		return err
	}

	points := make([]pointReport, len(res.Points))
	for i, pt := range res.Points {
		points[i] = pointReport{
			X:         round3(pt.X),
			Y:         round3(pt.Y),
			Z:         round3(pt.Z),
			Converged: pt.Converged,
		}
	}

	payload, err := json.Marshal(points)
	if err != nil {
		return err
	}
	interp.respond("calibration_points: " + string(payload))
	return nil
}

// pcbReport is the wire form of the evaluation board status.
type pcbReport struct {
	BorderPads int   `json:"border-pads"`
	TestPads   []int `json:"test-pads"`
}

func (interp *Interpreter) doTestPCBStatus() error {
	if interp.testPCB == nil {
		interp.respond(" ERROR: No test PCB support")
		return nil
	}

	status := interp.testPCB.ReadStatus()
	report := pcbReport{TestPads: make([]int, len(status.Pads))}
	if status.BorderPads {
		report.BorderPads = 1
	}
	for i, pad := range status.Pads {
		if pad {
			report.TestPads[i] = 1
		}
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	interp.respond(string(payload))
	return nil
}

func (interp *Interpreter) doMove(cmd *Command) error {
	current := interp.mover.LogicalPosition()
	target := current

	// Feed rates arrive in mm/min.
	if cmd.HasParameter('F') {
		interp.feedRate = cmd.GetParameter('F', 0) / 60.0
	}

	if interp.absoluteMode {
		if cmd.HasParameter('X') {
			target.X = cmd.GetParameter('X', current.X)
		}
		if cmd.HasParameter('Y') {
			target.Y = cmd.GetParameter('Y', current.Y)
		}
		if cmd.HasParameter('Z') {
			target.Z = cmd.GetParameter('Z', current.Z)
		}
	} else {
		if cmd.HasParameter('X') {
			target.X = current.X + cmd.GetParameter('X', 0)
		}
		if cmd.HasParameter('Y') {
			target.Y = current.Y + cmd.GetParameter('Y', 0)
		}
		if cmd.HasParameter('Z') {
			target.Z = current.Z + cmd.GetParameter('Z', 0)
		}
	}

	if target == current {
		return nil
	}

	return interp.mover.MoveTo(target, interp.feedRate)
}

func (interp *Interpreter) doSetPosition(cmd *Command) error {
	current := interp.mover.LogicalPosition()

	if cmd.HasParameter('X') {
		current.X = cmd.GetParameter('X', 0)
	}
	if cmd.HasParameter('Y') {
		current.Y = cmd.GetParameter('Y', 0)
	}
	if cmd.HasParameter('Z') {
		current.Z = cmd.GetParameter('Z', 0)
	}

	interp.mover.SetPosition(current)
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
