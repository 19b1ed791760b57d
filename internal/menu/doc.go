// Package menu is the credential-editing menu shown after a successful
// authentication.
//
// The Controller has two states. In ItemSelect the up and down keys move a
// clamped Cursor over the four items and the hash key toggles the door. The
// confirm key runs the selected action (ActionRunning) until it returns, then
// the menu is redrawn. Actions persist through the credential.Store and a
// write failure ends Run with an error.
package menu
