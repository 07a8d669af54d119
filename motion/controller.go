// Cooperative motion control for the probing head.
//
// The controller keeps two views of the machine: the logical position
// tracker, updated the moment a move is planned, and the per-axis stepper
// counters, which advance only as step pulses are issued during Idle
// ticks. The two views diverge whenever a move is quick-stopped; callers
// resynchronize with ResyncPosition before planning further moves.
package motion

import (
	"math"

	"github.com/pkg/errors"

	"proboter/config"
	"proboter/hal"
	"proboter/probing"
)

// controlTick is the seconds of motion interpolated per Idle call.
const controlTick = 0.001

// stopCleanupTicks models the planner's cleanup phase after a quick stop:
// HasQueuedMotion stays true for this many ticks after the queue is
// discarded.
const stopCleanupTicks = 2

var axisNames = [3]string{"x", "y", "z"}

type move struct {
	target probing.Position
	feed   float64
}

// Controller implements probing.Motion on top of per-axis steppers.
type Controller struct {
	cfg      *config.MachineConfig
	steppers [3]*Stepper

	logical probing.Position
	queue   []move
	cleanup int
}

// NewController builds the controller and its steppers from the machine
// configuration. All three of x, y and z must be configured.
func NewController(cfg *config.MachineConfig, drv hal.GPIODriver) (*Controller, error) {
	c := &Controller{cfg: cfg}
	for i, name := range axisNames {
		axisCfg, ok := cfg.Axes[name]
		if !ok {
			return nil, errors.Errorf("missing %s axis configuration", name)
		}
		s, err := NewStepper(name, axisCfg, drv)
		if err != nil {
			return nil, err
		}
		c.steppers[i] = s
	}
	return c, nil
}

// MoveTo plans a straight move to an absolute position. The logical
// tracker is updated immediately; the steppers catch up in Idle ticks.
func (c *Controller) MoveTo(pos probing.Position, feed float64) error {
	if feed <= 0 {
		return errors.New("feed rate must be positive")
	}
	if err := c.checkLimits(pos); err != nil {
		return err
	}

	feed = c.clampFeed(c.logical, pos, feed)
	c.logical = pos
	c.queue = append(c.queue, move{target: pos, feed: feed})
	return nil
}

// checkLimits rejects targets outside the configured axis travel.
func (c *Controller) checkLimits(pos probing.Position) error {
	coords := [3]float64{pos.X, pos.Y, pos.Z}
	for i, name := range axisNames {
		axisCfg := c.cfg.Axes[name]
		if coords[i] < axisCfg.MinPosition || coords[i] > axisCfg.MaxPosition {
			return errors.Errorf("%s axis target %.3f outside limits [%.1f, %.1f]",
				name, coords[i], axisCfg.MinPosition, axisCfg.MaxPosition)
		}
	}
	return nil
}

// clampFeed limits the move feed so no axis exceeds its maximum velocity.
func (c *Controller) clampFeed(from, to probing.Position, feed float64) float64 {
	deltas := [3]float64{to.X - from.X, to.Y - from.Y, to.Z - from.Z}
	dist := math.Sqrt(deltas[0]*deltas[0] + deltas[1]*deltas[1] + deltas[2]*deltas[2])
	if dist == 0 {
		return feed
	}
	for i, name := range axisNames {
		d := math.Abs(deltas[i])
		if d == 0 {
			continue
		}
		axisVel := feed * d / dist
		if maxVel := c.cfg.Axes[name].MaxVelocity; axisVel > maxVel {
			feed = maxVel * dist / d
		}
	}
	return feed
}

// HasQueuedMotion reports whether moves are still draining, including the
// cleanup phase after a quick stop.
func (c *Controller) HasQueuedMotion() bool {
	return len(c.queue) > 0 || c.cleanup > 0
}

// Idle interpolates one control tick of the current move, issuing step
// pulses through the steppers.
func (c *Controller) Idle() {
	if c.cleanup > 0 {
		c.cleanup--
	}
	if len(c.queue) == 0 {
		return
	}
	mv := c.queue[0]

	for i := range c.steppers {
		c.steppers[i].SetTarget(coord(mv.target, i))
	}

	remaining := [3]float64{}
	dist := 0.0
	for i, s := range c.steppers {
		remaining[i] = coord(mv.target, i) - s.Position()
		dist += remaining[i] * remaining[i]
	}
	dist = math.Sqrt(dist)

	tickDist := mv.feed * controlTick
	if dist <= tickDist || dist == 0 {
		// Move finishes this tick.
		for _, s := range c.steppers {
			s.AdvanceTo(s.target)
		}
		c.queue = c.queue[1:]
		return
	}

	frac := tickDist / dist
	for i, s := range c.steppers {
		want := s.Position() + remaining[i]*frac
		s.AdvanceTo(s.toSteps(want))
	}
}

// QuickStop discards all queued motion and freezes the steppers wherever
// they are. The logical tracker keeps its pre-stop value; the caller must
// resync before the next move.
func (c *Controller) QuickStop() {
	c.queue = nil
	for _, s := range c.steppers {
		s.Stop()
	}
	c.cleanup = stopCleanupTicks
}

// WaitIdle drains all queued motion and stop cleanup.
func (c *Controller) WaitIdle() {
	for c.HasQueuedMotion() {
		c.Idle()
	}
}

// RealizedPosition reads the live stepper counter of one axis.
func (c *Controller) RealizedPosition(axis probing.Axis) (float64, error) {
	if axis < probing.AxisX || axis > probing.AxisZ {
		return 0, errors.Errorf("unknown axis %d", axis)
	}
	return c.steppers[axis].Position(), nil
}

// ResyncPosition rebuilds the logical tracker of one axis from its
// stepper counter.
func (c *Controller) ResyncPosition(axis probing.Axis) error {
	real, err := c.RealizedPosition(axis)
	if err != nil {
		return err
	}
	switch axis {
	case probing.AxisX:
		c.logical.X = real
	case probing.AxisY:
		c.logical.Y = real
	case probing.AxisZ:
		c.logical.Z = real
	}
	return nil
}

// LogicalPosition returns the commanded position tracker.
func (c *Controller) LogicalPosition() probing.Position {
	return c.logical
}

// SetPosition overwrites both the logical tracker and the stepper
// counters (G92 and homing).
func (c *Controller) SetPosition(pos probing.Position) {
	c.logical = pos
	coords := [3]float64{pos.X, pos.Y, pos.Z}
	for i, s := range c.steppers {
		s.SetPosition(coords[i])
	}
}

func coord(p probing.Position, i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	return p.Z
}
