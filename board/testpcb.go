package board

import (
	"time"

	"github.com/pkg/errors"

	"proboter/hal"
)

// TestPCB reads the evaluation board used to verify probe placement: one
// border-pad contact line plus a chain of shift registers carrying the
// state of the single test pads.
type TestPCB struct {
	drv  hal.GPIODriver
	pins struct {
		testPads hal.Pin
		do       hal.Pin
		sclk     hal.Pin
		lc       hal.Pin
		oe       hal.Pin
		pl       hal.Pin
	}
	numPads int
}

// Status is one snapshot of the evaluation board.
type Status struct {
	// BorderPads is set when any border test pad is in contact.
	BorderPads bool

	// Pads holds the state of each single test pad, index 0 first out
	// of the register chain.
	Pads []bool
}

// NewTestPCB claims and initializes the shift-register pins. The register
// chain is left in its idle state: clocks low, parallel load inhibited,
// outputs enabled.
func NewTestPCB(drv hal.GPIODriver, testPads, do, sclk, lc, oe, pl hal.Pin, numPads int) (*TestPCB, error) {
	if numPads <= 0 {
		return nil, errors.New("test PCB: pad count must be positive")
	}

	p := &TestPCB{drv: drv, numPads: numPads}
	p.pins.testPads = testPads
	p.pins.do = do
	p.pins.sclk = sclk
	p.pins.lc = lc
	p.pins.oe = oe
	p.pins.pl = pl

	if err := drv.ConfigureInputPullDown(testPads); err != nil {
		return nil, errors.Wrap(err, "test pads pin")
	}
	if err := drv.ConfigureInputPullDown(do); err != nil {
		return nil, errors.Wrap(err, "data out pin")
	}
	for _, out := range []hal.Pin{sclk, lc, oe, pl} {
		if err := drv.ConfigureOutput(out); err != nil {
			return nil, errors.Wrap(err, "test PCB output pin")
		}
	}

	drv.SetPin(sclk, false)
	drv.SetPin(lc, false)
	drv.SetPin(pl, true)
	drv.SetPin(oe, false)

	return p, nil
}

func (p *TestPCB) settle() {
	time.Sleep(time.Millisecond)
}

func (p *TestPCB) sclkTick() {
	p.drv.SetPin(p.pins.sclk, true)
	p.settle()
	p.drv.SetPin(p.pins.sclk, false)
	p.settle()
}

func (p *TestPCB) lcTick() {
	p.drv.SetPin(p.pins.lc, true)
	p.settle()
	p.drv.SetPin(p.pins.lc, false)
	p.settle()
}

func (p *TestPCB) sclkLCTick() {
	p.drv.SetPin(p.pins.lc, true)
	p.drv.SetPin(p.pins.sclk, true)
	p.settle()
	p.drv.SetPin(p.pins.lc, false)
	p.drv.SetPin(p.pins.sclk, false)
	p.settle()
}

// ReadStatus latches the current pad states into the shift registers and
// clocks them out.
func (p *TestPCB) ReadStatus() Status {
	status := Status{
		BorderPads: p.drv.ReadPin(p.pins.testPads),
		Pads:       make([]bool, p.numPads),
	}

	// Reset the register chain.
	p.drv.SetPin(p.pins.pl, false)
	p.drv.SetPin(p.pins.oe, false)
	p.drv.SetPin(p.pins.lc, false)
	p.drv.SetPin(p.pins.sclk, false)
	p.settle()
	p.sclkLCTick()

	// Latch the current pad states.
	p.lcTick()

	// Shift them out.
	p.drv.SetPin(p.pins.pl, true)
	p.settle()
	for i := 0; i < p.numPads; i++ {
		status.Pads[i] = p.drv.ReadPin(p.pins.do)
		p.sclkTick()
	}

	return status
}
