// Package screen lays out the door controller's OLED pages.
//
// It owns every coordinate on the 128x64 panel: the password slots, the menu
// rows and cursor, the UID list window and the animations. Callers say what
// to show; the hal.Display collaborator does the rasterising.
package screen
