// Contact probing against a conductive pad or reference pin.
//
// The prober drives the head toward the surface, latches the stepper
// position the instant the contact input trips, quick-stops, resyncs the
// logical position tracker from the stepper counters and retracts. Edge
// searches and the centering cycle are built on top of that single
// operation.
package probing

import "github.com/pkg/errors"

// Prober owns one probing head: the motion subsystem and the binary
// contact sensor.
type Prober struct {
	motion Motion
	sensor ContactSensor
	cfg    Config
}

// New creates a Prober on top of a motion subsystem and contact sensor.
func New(motion Motion, sensor ContactSensor, cfg Config) *Prober {
	return &Prober{
		motion: motion,
		sensor: sensor,
		cfg:    cfg,
	}
}

// Config returns the probing constants the Prober runs with.
func (p *Prober) Config() Config {
	return p.cfg
}

// ProbeZ lowers the head toward zLimit at the given feed until the contact
// sensor trips or the limit is reached, then retracts. The head is always
// left retracted off the surface on return, whether or not contact
// occurred; a false Triggered result is not an error here, the caller
// decides whether it is fatal.
func (p *Prober) ProbeZ(zLimit float64, retract Retract, feed float64) (ContactResult, error) {
	target := p.motion.LogicalPosition()
	target.Z = zLimit
	if err := p.motion.MoveTo(target, feed); err != nil {
		return ContactResult{}, err
	}

	// Lower until triggered or the limit move drains. The contact Z must
	// come from the live stepper counters, not the commanded target: the
	// head is still decelerating when the sensor trips.
	var res ContactResult
	triggered := p.sensor.Triggered()
	for p.motion.HasQueuedMotion() && !triggered {
		triggered = p.sensor.Triggered()
		if triggered {
			z, err := p.motion.RealizedPosition(AxisZ)
			if err != nil {
				return ContactResult{}, errors.Wrap(err, "sampling contact position")
			}
			res.ContactZ = z
			res.ZLatched = true
		}
		p.motion.Idle()
	}

	p.motion.QuickStop()
	p.motion.WaitIdle()

	// The quick stop never lands on a commanded waypoint, so the logical
	// tracker and the stepper counters have diverged. Every subsequent
	// move is silently offset unless the tracker is rebuilt first. This
	// holds on the not-triggered path too: the stop cleanup can shift
	// the realized position.
	if err := p.motion.ResyncPosition(AxisZ); err != nil {
		return ContactResult{}, errors.Wrap(err, "resync after quick stop")
	}

	pos := p.motion.LogicalPosition()
	if retract.absolute {
		pos.Z = retract.value
	} else {
		pos.Z -= retract.value
	}
	if err := p.motion.MoveTo(pos, feed); err != nil {
		return ContactResult{}, err
	}
	p.motion.WaitIdle()

	res.Triggered = triggered
	res.Pos = pos
	return res, nil
}
