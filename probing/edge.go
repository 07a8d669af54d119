package probing

import "math"

// LocateEdge finds the boundary along dir where the contact status changes,
// by a sign-flipping, halving step search. The transition point is not
// known in advance, so the search first hunts outward at the configured
// step and then brackets the transition ever more tightly: every time the
// probe result differs from the previous sample the step flips sign and
// halves.
//
// contactZ is the Z of the initial contact; every sample probes down to
// contactZ plus the overshoot margin. retractZ is the absolute height the
// head retracts to between samples. The search starts from the current
// logical XY position.
//
// The returned point carries Converged=false when the no-progress budget
// ran out before the step fell below minStep; such a point is a
// best-effort sample, not a bracketed edge, and callers must not treat it
// as equal quality.
func (p *Prober) LocateEdge(contactZ, minStep, retractZ float64, dir Direction) (BoundaryPoint, error) {
	pos := p.motion.LogicalPosition()
	x, y := pos.X, pos.Y

	f := p.cfg.SearchStep
	lastTriggered := true // the search starts over the pad, in contact
	lastContactZ := contactZ
	steps := 0

	var point BoundaryPoint
	for steps < p.cfg.MaxIterations && math.Abs(f) >= minStep {
		x += dir.X * f
		y += dir.Y * f

		target := p.motion.LogicalPosition()
		target.X = x
		target.Y = y
		if err := p.motion.MoveTo(target, p.cfg.FeedRate); err != nil {
			return point, err
		}

		res, err := p.ProbeZ(contactZ+p.cfg.OvershootMargin, RetractTo(retractZ), p.cfg.FeedRate)
		if err != nil {
			return point, err
		}
		if res.ZLatched {
			lastContactZ = res.ContactZ
		}
		point = BoundaryPoint{X: x, Y: y, Z: lastContactZ}

		if res.Triggered != lastTriggered {
			// The edge lies between this sample and the previous
			// one: step back half as far.
			f = -0.5 * f
			steps = 0
		} else {
			steps++
		}
		lastTriggered = res.Triggered
	}

	point.Converged = steps < p.cfg.MaxIterations
	return point, nil
}
