package main

import (
	"fmt"

	"github.com/nerrad567/gray-logic-access/internal/hal"
	"github.com/nerrad567/gray-logic-access/internal/hal/sim"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-access/internal/keypad"
)

// hardware is the set of collaborators the controller drives.
type hardware struct {
	clock   hal.Clock
	matrix  *sim.Matrix
	rfid    *sim.RFID
	display *sim.Display
	servo   *sim.Actuator
	tagUID  []byte
}

// newHardware builds the configured backend. Only the simulator ships here;
// board backends implement the hal interfaces and plug in the same way.
func newHardware(cfg *config.Config) (*hardware, error) {
	switch cfg.Hardware.Backend {
	case "sim":
		clock := hal.SystemClock{}
		return &hardware{
			clock:   clock,
			matrix:  sim.NewMatrix(keypad.Rows, keypad.Columns, clock),
			rfid:    sim.NewRFID(),
			display: sim.NewDisplay(),
			servo:   sim.NewActuator(),
			tagUID:  tagBytes(cfg.Hardware.SimTagUID),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported hardware backend %q", cfg.Hardware.Backend)
	}
}

// tagBytes converts the configured tag serial to bytes. Values were range
// checked by config validation.
func tagBytes(vals []int) []byte {
	out := make([]byte, len(vals))
	for i, v := range vals {
		out[i] = byte(v)
	}
	return out
}
