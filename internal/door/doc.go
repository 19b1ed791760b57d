// Package door drives the lock servo and the RGB indicator.
//
// Actuator owns the servo and the door state (Closed, Open, Holding). It
// runs the granted-access sequence: welcome animation, unlock, a visible
// countdown and the automatic lock. Indicator is the colour LED handle; it
// is owned by the Actuator and handed to anything else that needs to flash
// it.
//
// Every servo move is followed by a settle delay so the horn reaches its
// angle before the next command.
package door
