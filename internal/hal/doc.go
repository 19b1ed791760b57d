// Package hal defines the narrow interfaces the access controller uses to
// reach its hardware collaborators: the key matrix pins, the RFID
// transceiver, the display and the PWM actuators.
//
// The controller computes every coordinate, duty cycle and colour itself;
// implementations only move bits. None of the calls return an
// acknowledgement, so an actuator fault is invisible to the core.
//
// The sim subpackage provides in-memory implementations used by tests and
// by the terminal simulator.
package hal
