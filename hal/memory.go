package hal

import "github.com/pkg/errors"

// Memory is a map-backed GPIO and PWM driver for tests and host-side
// simulation. Input pins can be backed by a hook function so a test rig
// can compute the pin state on every read.
type Memory struct {
	pins  map[Pin]bool
	duty  map[Pin]uint32
	hooks map[Pin]func() bool
}

// NewMemory creates an empty memory driver.
func NewMemory() *Memory {
	return &Memory{
		pins:  make(map[Pin]bool),
		duty:  make(map[Pin]uint32),
		hooks: make(map[Pin]func() bool),
	}
}

// Hook backs an input pin with a function evaluated on every read.
func (m *Memory) Hook(pin Pin, fn func() bool) {
	m.hooks[pin] = fn
}

func (m *Memory) ConfigureOutput(pin Pin) error {
	m.pins[pin] = false
	return nil
}

func (m *Memory) ConfigureInputPullUp(pin Pin) error {
	if _, ok := m.pins[pin]; !ok {
		m.pins[pin] = true // pulled up
	}
	return nil
}

func (m *Memory) ConfigureInputPullDown(pin Pin) error {
	if _, ok := m.pins[pin]; !ok {
		m.pins[pin] = false
	}
	return nil
}

func (m *Memory) SetPin(pin Pin, value bool) error {
	m.pins[pin] = value
	return nil
}

func (m *Memory) GetPin(pin Pin) (bool, error) {
	if fn, ok := m.hooks[pin]; ok {
		return fn(), nil
	}
	v, ok := m.pins[pin]
	if !ok {
		return false, errors.Errorf("pin %d not configured", pin)
	}
	return v, nil
}

func (m *Memory) ReadPin(pin Pin) bool {
	v, _ := m.GetPin(pin)
	return v
}

func (m *Memory) ConfigurePWM(pin Pin) error {
	m.duty[pin] = 0
	return nil
}

func (m *Memory) SetDutyCycle(pin Pin, value uint32) error {
	if value > m.MaxValue() {
		return errors.Errorf("duty cycle %d out of range", value)
	}
	m.duty[pin] = value
	return nil
}

func (m *Memory) MaxValue() uint32 {
	return 255
}

// DutyCycle reports the last duty cycle written to a pin.
func (m *Memory) DutyCycle(pin Pin) uint32 {
	return m.duty[pin]
}
