package board

import (
	"github.com/pkg/errors"

	"proboter/hal"
)

// Light drives the ring light of the probing head over a PWM output.
type Light struct {
	drv       hal.PWMDriver
	pin       hal.Pin
	intensity uint8
}

// NewLight claims the light-control pin.
func NewLight(drv hal.PWMDriver, pin hal.Pin) (*Light, error) {
	if err := drv.ConfigurePWM(pin); err != nil {
		return nil, errors.Wrap(err, "light pin")
	}
	return &Light{drv: drv, pin: pin}, nil
}

// SetIntensity sets the light output, 0 (off) to 255 (full).
func (l *Light) SetIntensity(intensity uint8) error {
	duty := uint32(intensity) * l.drv.MaxValue() / 255
	if err := l.drv.SetDutyCycle(l.pin, duty); err != nil {
		return err
	}
	l.intensity = intensity
	return nil
}

// Status reports the current drive state: 1 when the light is on, 0 when
// off.
func (l *Light) Status() int {
	if l.intensity > 0 {
		return 1
	}
	return 0
}
