package motion

import (
	"math"

	"github.com/pkg/errors"

	"proboter/config"
	"proboter/hal"
)

// Stepper drives one axis motor. The int64 step counter is the realized
// position of the axis: it only changes when a step pulse is actually
// issued, so it stays truthful through a quick stop.
type Stepper struct {
	name string
	cfg  config.AxisConfig
	drv  hal.GPIODriver

	position int64 // realized position in steps
	target   int64 // commanded position in steps
}

// NewStepper creates a stepper and claims its step/dir pins.
func NewStepper(name string, cfg config.AxisConfig, drv hal.GPIODriver) (*Stepper, error) {
	if cfg.StepsPerMM <= 0 {
		return nil, errors.Errorf("%s axis: StepsPerMM must be positive", name)
	}
	if err := drv.ConfigureOutput(cfg.StepPin); err != nil {
		return nil, errors.Wrapf(err, "%s axis step pin", name)
	}
	if err := drv.ConfigureOutput(cfg.DirPin); err != nil {
		return nil, errors.Wrapf(err, "%s axis dir pin", name)
	}
	return &Stepper{name: name, cfg: cfg, drv: drv}, nil
}

// SetTarget sets the commanded position (mm).
func (s *Stepper) SetTarget(mm float64) {
	s.target = s.toSteps(mm)
}

// AdvanceTo pulses the motor until the realized position reaches the given
// step count, bounded by the commanded target.
func (s *Stepper) AdvanceTo(steps int64) {
	if s.target > s.position && steps > s.target {
		steps = s.target
	}
	if s.target < s.position && steps < s.target {
		steps = s.target
	}

	dir := int64(1)
	if steps < s.position {
		dir = -1
	}
	s.setDir(dir)

	for s.position != steps {
		s.drv.SetPin(s.cfg.StepPin, true)
		s.position += dir
		s.drv.SetPin(s.cfg.StepPin, false)
	}
}

func (s *Stepper) setDir(dir int64) {
	high := dir > 0
	if s.cfg.InvertDir {
		high = !high
	}
	s.drv.SetPin(s.cfg.DirPin, high)
}

// AtTarget reports whether the realized position matches the commanded one.
func (s *Stepper) AtTarget() bool {
	return s.position == s.target
}

// Stop abandons the commanded target wherever the motor currently is.
func (s *Stepper) Stop() {
	s.target = s.position
}

// Position returns the realized position in millimeters.
func (s *Stepper) Position() float64 {
	return float64(s.position) / s.cfg.StepsPerMM
}

// TargetPosition returns the commanded position in millimeters.
func (s *Stepper) TargetPosition() float64 {
	return float64(s.target) / s.cfg.StepsPerMM
}

// SetPosition overwrites the realized position (homing, G92).
func (s *Stepper) SetPosition(mm float64) {
	s.position = s.toSteps(mm)
	s.target = s.position
}

func (s *Stepper) toSteps(mm float64) int64 {
	return int64(math.Round(mm * s.cfg.StepsPerMM))
}
