package config

import (
	"encoding/json"

	"proboter/hal"
	"proboter/probing"
)

// AxisConfig holds the per-axis motion parameters.
type AxisConfig struct {
	StepPin     hal.Pin // GPIO pin for step pulses
	DirPin      hal.Pin // GPIO pin for direction
	StepsPerMM  float64 // Steps per millimeter
	MaxVelocity float64 // Maximum velocity (mm/s)
	MinPosition float64 // Minimum position (mm)
	MaxPosition float64 // Maximum position (mm)
	InvertDir   bool    // Invert direction signal
}

// TestPCBPins is the wiring of the evaluation-board shift registers.
type TestPCBPins struct {
	TestPads hal.Pin // border pad status input
	DO       hal.Pin // shift register data out
	SCLK     hal.Pin // shift clock
	LC       hal.Pin // latch clock
	OE       hal.Pin // output enable
	PL       hal.Pin // parallel load
	NumPads  int     // number of single test pads
}

// PinConfig maps the probing peripherals onto GPIO pins.
type PinConfig struct {
	// Sensor is the probe centering contact input. The line is pulled
	// up and shorted to ground on contact unless SensorActiveHigh is set.
	Sensor           hal.Pin
	SensorActiveHigh bool

	// Light is the light-control output. HasLight gates the whole light
	// feature; not every head carries the controller.
	Light    hal.Pin
	HasLight bool

	TestPCB TestPCBPins
}

// MachineConfig is the complete machine configuration.
type MachineConfig struct {
	Axes    map[string]AxisConfig
	Pins    PinConfig
	Probing probing.Config

	// DefaultVelocity is the feed used for non-probing moves (mm/s).
	DefaultVelocity float64
}

// LoadConfig parses a JSON configuration and fills in defaults.
func LoadConfig(jsonData []byte) (*MachineConfig, error) {
	var cfg MachineConfig

	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(cfg *MachineConfig) {
	if cfg.DefaultVelocity == 0 {
		cfg.DefaultVelocity = 50.0 // 50 mm/s
	}

	if cfg.Probing.MinStep == 0 {
		cfg.Probing.MinStep = 0.01
	}
	if cfg.Probing.SearchStep == 0 {
		cfg.Probing.SearchStep = 2.0
	}
	if cfg.Probing.MaxProbeZ == 0 {
		cfg.Probing.MaxProbeZ = 120.0
	}
	if cfg.Probing.ZClearance == 0 {
		cfg.Probing.ZClearance = 1.0
	}
	if cfg.Probing.OvershootMargin == 0 {
		cfg.Probing.OvershootMargin = 0.75
	}
	if cfg.Probing.FeedRate == 0 {
		cfg.Probing.FeedRate = 5.0
	}
	if cfg.Probing.MaxIterations == 0 {
		cfg.Probing.MaxIterations = 20
	}

	if cfg.Pins.TestPCB.NumPads == 0 {
		cfg.Pins.TestPCB.NumPads = 16
	}

	for name, axis := range cfg.Axes {
		if axis.StepsPerMM == 0 {
			axis.StepsPerMM = 80.0
		}
		if axis.MaxVelocity == 0 {
			axis.MaxVelocity = 300.0
		}
		cfg.Axes[name] = axis
	}
}

// DefaultMachineConfig returns the stock configuration of the probing head.
func DefaultMachineConfig() *MachineConfig {
	return &MachineConfig{
		Axes: map[string]AxisConfig{
			"x": {
				StepPin:     0,
				DirPin:      1,
				StepsPerMM:  80.0,
				MaxVelocity: 300.0,
				MinPosition: -110.0,
				MaxPosition: 110.0,
			},
			"y": {
				StepPin:     2,
				DirPin:      3,
				StepsPerMM:  80.0,
				MaxVelocity: 300.0,
				MinPosition: -110.0,
				MaxPosition: 110.0,
			},
			"z": {
				StepPin:     4,
				DirPin:      5,
				StepsPerMM:  400.0,
				MaxVelocity: 10.0,
				MinPosition: 0.0,
				MaxPosition: 150.0,
			},
		},
		Pins: PinConfig{
			Sensor: 20,
			Light:  14,
			TestPCB: TestPCBPins{
				TestPads: 21,
				DO:       22,
				SCLK:     23,
				LC:       24,
				OE:       25,
				PL:       26,
				NumPads:  16,
			},
		},
		Probing:         probing.DefaultConfig(),
		DefaultVelocity: 50.0,
	}
}
