package hal

// Pin identifies a hardware GPIO pin number.
type Pin uint32

// GPIODriver is the abstract GPIO interface the firmware code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin Pin) error

	// ConfigureInputPullUp configures a pin as a digital input with pull-up resistor
	ConfigureInputPullUp(pin Pin) error

	// ConfigureInputPullDown configures a pin as a digital input with pull-down resistor
	ConfigureInputPullDown(pin Pin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin Pin, value bool) error

	// GetPin reads the current pin state
	GetPin(pin Pin) (bool, error)

	// ReadPin reads the current pin state (alias for GetPin for convenience)
	ReadPin(pin Pin) bool
}

// PWMDriver is the abstract PWM interface for intensity-controlled outputs.
type PWMDriver interface {
	// ConfigurePWM configures a pin for PWM output
	ConfigurePWM(pin Pin) error

	// SetDutyCycle sets the duty cycle for a pin, 0 (off) to MaxValue (on)
	SetDutyCycle(pin Pin, value uint32) error

	// MaxValue returns the maximum duty cycle value (255 for 8-bit)
	MaxValue() uint32
}
