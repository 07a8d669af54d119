// Package machine wires the probing firmware together: configuration,
// GPIO drivers, the motion controller, the probing cycle and the G-code
// front end.
package machine

import (
	"github.com/pkg/errors"

	"proboter/board"
	"proboter/config"
	"proboter/gcode"
	"proboter/hal"
	"proboter/motion"
	"proboter/probing"
)

// Machine coordinates all firmware components.
type Machine struct {
	cfg         *config.MachineConfig
	parser      *gcode.Parser
	interpreter *gcode.Interpreter
	controller  *motion.Controller
	prober      *probing.Prober

	inputBuffer  []byte
	outputBuffer []byte
}

// New builds a machine from its configuration and hardware drivers. pwm
// may be nil when the head carries no light controller.
func New(cfg *config.MachineConfig, gpio hal.GPIODriver, pwm hal.PWMDriver) (*Machine, error) {
	controller, err := motion.NewController(cfg, gpio)
	if err != nil {
		return nil, err
	}

	sensor, err := board.NewContactPin(gpio, cfg.Pins.Sensor, cfg.Pins.SensorActiveHigh)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:          cfg,
		parser:       gcode.NewParser(),
		controller:   controller,
		prober:       probing.New(controller, sensor, cfg.Probing),
		inputBuffer:  make([]byte, 0, 256),
		outputBuffer: make([]byte, 0, 256),
	}

	extras := gcode.Peripherals{}
	if cfg.Pins.HasLight {
		if pwm == nil {
			return nil, errors.New("light controller configured but no PWM driver")
		}
		light, err := board.NewLight(pwm, cfg.Pins.Light)
		if err != nil {
			return nil, err
		}
		extras.Light = light
	}

	pcbPins := cfg.Pins.TestPCB
	testPCB, err := board.NewTestPCB(gpio, pcbPins.TestPads, pcbPins.DO,
		pcbPins.SCLK, pcbPins.LC, pcbPins.OE, pcbPins.PL, pcbPins.NumPads)
	if err != nil {
		return nil, err
	}
	extras.TestPCB = testPCB

	m.interpreter = gcode.NewInterpreter(controller, m.prober, cfg.DefaultVelocity, m.SendResponse, extras)
	return m, nil
}

// Controller exposes the motion controller, mainly for simulation rigs.
func (m *Machine) Controller() *motion.Controller {
	return m.controller
}

// ProcessLine parses and executes one line of G-code.
func (m *Machine) ProcessLine(line string) error {
	cmd, err := m.parser.ParseLine(line)
	if err != nil {
		return err
	}

	if cmd != nil {
		if err := m.interpreter.Execute(cmd); err != nil {
			return err
		}
	}

	return nil
}

// ProcessByte processes a single byte of input (for serial streaming).
// Complete lines are executed and acknowledged with "ok".
func (m *Machine) ProcessByte(b byte) error {
	m.inputBuffer = append(m.inputBuffer, b)

	if b != '\n' && b != '\r' {
		return nil
	}

	line := string(m.inputBuffer)
	m.inputBuffer = m.inputBuffer[:0]

	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r' || line[len(line)-1] == ' ') {
		line = line[:len(line)-1]
	}

	if len(line) == 0 {
		return nil
	}

	if err := m.ProcessLine(line); err != nil {
		return err
	}

	m.SendResponse("ok")
	return nil
}

// SendResponse queues one response line for the host.
func (m *Machine) SendResponse(line string) {
	m.outputBuffer = append(m.outputBuffer, []byte(line)...)
	m.outputBuffer = append(m.outputBuffer, '\n')
}

// GetOutput returns any pending output and clears the buffer.
func (m *Machine) GetOutput() []byte {
	if len(m.outputBuffer) == 0 {
		return nil
	}

	output := make([]byte, len(m.outputBuffer))
	copy(output, m.outputBuffer)
	m.outputBuffer = m.outputBuffer[:0]
	return output
}
