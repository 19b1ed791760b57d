// Package controller is the door's top-level state machine.
//
// After the boot splash the controller is Authenticating: it polls the RFID
// field and the keypad, granting access to an enrolled tag, or collecting a
// password after the confirm key. Once granted it is Authenticated, where
// the hash key toggles the door (ManualOverride while open) and the confirm
// key hands the keypad to the menu for good (MenuActive).
//
// The controller never returns to Authenticating; a reboot does that.
package controller
