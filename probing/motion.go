package probing

// Motion is the slice of the motion subsystem the probing cycle needs.
// All calls are strictly sequential: the probing loop is the only owner of
// the machine while a cycle runs.
type Motion interface {
	// MoveTo queues a move to an absolute position at the given feed
	// rate (mm/s). The logical position tracker is updated at plan time;
	// the steppers catch up during Idle ticks.
	MoveTo(pos Position, feed float64) error

	// HasQueuedMotion reports whether motion is still in progress. This
	// covers queued move blocks and any in-flight stop cleanup after a
	// quick stop.
	HasQueuedMotion() bool

	// QuickStop immediately discards all queued motion and halts the
	// steppers wherever they are. The logical tracker is NOT updated;
	// callers must resync before issuing further moves.
	QuickStop()

	// WaitIdle blocks until all queued motion (and stop cleanup) has
	// drained, servicing Idle internally.
	WaitIdle()

	// RealizedPosition reads the live stepper-counter position of one
	// axis (mm). This is the physical truth, valid mid-move and after a
	// quick stop.
	RealizedPosition(axis Axis) (float64, error)

	// ResyncPosition rebuilds the logical tracker of one axis from the
	// stepper counters.
	ResyncPosition(axis Axis) error

	// LogicalPosition returns the commanded position tracker.
	LogicalPosition() Position

	// Idle services one tick of background step generation. The probing
	// poll loops must call this between sensor samples or motion never
	// progresses.
	Idle()
}

// ContactSensor is the binary contact input, polled every control cycle.
// Polarity is handled by the implementation, not the probing loop.
type ContactSensor interface {
	Triggered() bool
}
