// Package report parses the telemetry lines the probing head emits over
// its serial link.
package report

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Point is one calibration point from a centering report.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Converged bool    `json:"converged"`
}

// PCBStatus is the evaluation test PCB report.
type PCBStatus struct {
	BorderPads int   `json:"border-pads"`
	TestPads   []int `json:"test-pads"`
}

const calibrationPrefix = "calibration_points: "

// ParseCalibration extracts the calibration point list from one telemetry
// line. found is false when the line is something else (an "ok", an echo,
// a status report).
func ParseCalibration(line string) (points []Point, found bool, err error) {
	if !strings.HasPrefix(line, calibrationPrefix) {
		return nil, false, nil
	}

	payload := strings.TrimPrefix(line, calibrationPrefix)
	if err := json.Unmarshal([]byte(payload), &points); err != nil {
		return nil, true, errors.Wrap(err, "malformed calibration report")
	}
	return points, true, nil
}

// ParsePCBStatus extracts a test PCB status report from one telemetry line.
func ParsePCBStatus(line string) (status PCBStatus, found bool, err error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") || !strings.Contains(trimmed, "border-pads") {
		return PCBStatus{}, false, nil
	}

	if err := json.Unmarshal([]byte(trimmed), &status); err != nil {
		return PCBStatus{}, true, errors.Wrap(err, "malformed test PCB report")
	}
	return status, true, nil
}

// IsError reports whether a telemetry line is a firmware error message.
func IsError(line string) bool {
	return strings.Contains(line, "ERROR:")
}
