// Package board holds the board-level peripherals of the probing head:
// the contact input, the evaluation test PCB and the light controller.
package board

import (
	"github.com/pkg/errors"

	"proboter/hal"
)

// ContactPin is the probe centering input. The line is pulled up and the
// probe circuit shorts it to ground on contact, so the stock wiring is
// active-low; boards with an inverting buffer set activeHigh.
type ContactPin struct {
	drv        hal.GPIODriver
	pin        hal.Pin
	activeHigh bool
}

// NewContactPin claims and configures the contact input.
func NewContactPin(drv hal.GPIODriver, pin hal.Pin, activeHigh bool) (*ContactPin, error) {
	if err := drv.ConfigureInputPullUp(pin); err != nil {
		return nil, errors.Wrap(err, "contact pin")
	}
	return &ContactPin{drv: drv, pin: pin, activeHigh: activeHigh}, nil
}

// Triggered implements probing.ContactSensor.
func (c *ContactPin) Triggered() bool {
	v := c.drv.ReadPin(c.pin)
	if c.activeHigh {
		return v
	}
	return !v
}
