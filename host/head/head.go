// Package head is the host-side client for a probing head speaking the
// line-oriented G-code dialect over a serial link.
package head

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"proboter/host/report"
	"proboter/host/serial"
)

// Head represents a connection to a probing head controller.
type Head struct {
	port    serial.Port
	pending []byte
	log     *logrus.Entry

	connected bool
}

// New creates a head client (not yet connected).
func New() *Head {
	return &Head{
		log: logrus.WithField("component", "head"),
	}
}

// Connect opens the serial link with default settings.
func (h *Head) Connect(device string) error {
	return h.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig opens the serial link with a custom configuration.
func (h *Head) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to open serial port")
	}

	h.attach(port)

	// Give the controller time to settle after a port-triggered reset.
	time.Sleep(100 * time.Millisecond)

	return nil
}

// ConnectOn attaches the client to an already open port.
func (h *Head) ConnectOn(port serial.Port) {
	h.attach(port)
}

func (h *Head) attach(port serial.Port) {
	h.port = port
	h.pending = nil
	h.connected = true
}

// Close closes the serial link.
func (h *Head) Close() error {
	h.connected = false
	if h.port != nil {
		return h.port.Close()
	}
	return nil
}

// IsConnected returns whether the client holds an open link.
func (h *Head) IsConnected() bool {
	return h.connected
}

// Send writes one command line to the controller.
func (h *Head) Send(cmd string) error {
	if !h.connected {
		return errors.New("not connected")
	}

	h.log.WithField("cmd", cmd).Debug("sending command")
	_, err := h.port.Write([]byte(cmd + "\n"))
	return errors.Wrapf(err, "failed to send %q", cmd)
}

// Transact sends a command and consumes response lines until accept
// signals completion, an "ok" acknowledgment arrives, or the timeout
// expires. A firmware error line aborts the transaction. Pass a nil
// accept to wait for the acknowledgment only.
func (h *Head) Transact(cmd string, timeout time.Duration, accept func(line string) (bool, error)) error {
	if err := h.Send(cmd); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	for {
		line, err := h.readLine(deadline)
		if err != nil {
			return errors.Wrapf(err, "no response to %q", cmd)
		}
		if line == "" {
			continue
		}

		h.log.WithField("line", line).Debug("received")

		if report.IsError(line) {
			return errors.Errorf("controller reported: %s", strings.TrimSpace(line))
		}
		if line == "ok" {
			if accept == nil {
				return nil
			}
			continue
		}
		if accept != nil {
			done, err := accept(line)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// readLine returns the next newline-terminated response line, polling
// the port until the deadline.
func (h *Head) readLine(deadline time.Time) (string, error) {
	buf := make([]byte, 256)
	for {
		if i := bytes.IndexByte(h.pending, '\n'); i >= 0 {
			line := strings.TrimRight(string(h.pending[:i]), "\r")
			h.pending = h.pending[i+1:]
			return line, nil
		}
		if time.Now().After(deadline) {
			return "", errors.New("timed out waiting for response")
		}

		n, err := h.port.Read(buf)
		if n > 0 {
			h.pending = append(h.pending, buf[:n]...)
			continue
		}
		if err != nil && err != io.EOF {
			return "", errors.Wrap(err, "serial read")
		}
	}
}

// CenterCircle runs a centering cycle and returns the reported
// calibration points.
func (h *Head) CenterCircle(timeout time.Duration) ([]report.Point, error) {
	var points []report.Point
	err := h.Transact("M370", timeout, func(line string) (bool, error) {
		pts, found, err := report.ParseCalibration(line)
		if err != nil {
			return true, err
		}
		if !found {
			return false, nil
		}
		points = pts
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// PCBStatus queries the evaluation test PCB.
func (h *Head) PCBStatus(timeout time.Duration) (report.PCBStatus, error) {
	var status report.PCBStatus
	err := h.Transact("M371", timeout, func(line string) (bool, error) {
		st, found, err := report.ParsePCBStatus(line)
		if err != nil {
			return true, err
		}
		if !found {
			return false, nil
		}
		status = st
		return true, nil
	})
	return status, err
}

// LightStatus queries the light state: 0 off, 1 on, -1 no light fitted.
func (h *Head) LightStatus(timeout time.Duration) (int, error) {
	status := 0
	err := h.Transact("M375", timeout, func(line string) (bool, error) {
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return false, nil
		}
		status = v
		return true, nil
	})
	return status, err
}

// SetLight sets the light intensity.
func (h *Head) SetLight(intensity uint8, timeout time.Duration) error {
	return h.Transact("M376 I"+strconv.Itoa(int(intensity)), timeout, nil)
}
