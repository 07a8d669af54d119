package probing

// centering direction schedule. The +X/-X pair runs twice: the first pass
// only refines the center estimate and is discarded from the output, the
// second runs from the refined center and is reported. This mirrors the
// behavior of the deployed probing heads; see DESIGN.md before changing it.
var centerDirections = [6]Direction{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
}

// CenterCircle locates the center of a circular contact pad under the
// head. It probes straight down for the first contact, then runs an edge
// search in each of six directions, refining the center estimate after
// each axis pair: center X from the first +X/-X pair, center Y from the
// +Y/-Y pair. The reported calibration points are the +Y/-Y pair and a
// second +X/-X pass probed from the refined center.
//
// Returns ErrNoInitialContact if the first probe reaches the Z limit
// without the sensor tripping; no points are produced in that case.
func (p *Prober) CenterCircle() (CenterResult, error) {
	first, err := p.ProbeZ(p.cfg.MaxProbeZ, RetractBy(p.cfg.ZClearance), p.cfg.FeedRate)
	if err != nil {
		return CenterResult{}, err
	}
	if !first.Triggered {
		return CenterResult{}, ErrNoInitialContact
	}

	contactZ := first.ContactZ
	clearedZ := contactZ - p.cfg.ZClearance

	// The probing center is refined while the scan runs. Z stays at the
	// retracted height for the whole cycle.
	center := p.motion.LogicalPosition()

	var points [6]BoundaryPoint
	for i, dir := range centerDirections {
		// Each search starts from the current center estimate, not
		// from wherever the previous search ended.
		if err := p.motion.MoveTo(center, p.cfg.FeedRate); err != nil {
			return CenterResult{}, err
		}

		pt, err := p.LocateEdge(contactZ, p.cfg.MinStep, clearedZ, dir)
		if err != nil {
			return CenterResult{}, err
		}
		points[i] = pt

		switch i {
		case 1:
			center.X = (points[0].X + points[1].X) * 0.5
		case 3:
			center.Y = (points[2].Y + points[3].Y) * 0.5
		}
	}

	res := CenterResult{Center: center}
	copy(res.Points[:], points[2:])
	return res, nil
}
