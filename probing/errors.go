package probing

import "github.com/pkg/errors"

// ErrNoInitialContact is returned by CenterCircle when the very first probe
// reaches the Z limit without the sensor ever tripping. Without physical
// contact the whole centering run is meaningless, so this aborts the run
// with no partial result.
var ErrNoInitialContact = errors.New("initial probe never made contact")
