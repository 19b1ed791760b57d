// Package keypad scans a 4x4 membrane key matrix.
//
// Scan drives each row low in turn and samples the pulled-up columns. A
// pressed key is polled every debounce interval until it is released; a
// key held past the long-press threshold is reported as KeyNone, which the
// rest of the controller treats as "cancel".
//
// Layout (row-major, first match wins):
//
//	1 2 3 A
//	4 5 6 B
//	7 8 9 C
//	* 0 # D
//
// Scan blocks for at most the long-press threshold plus one debounce
// interval.
package keypad
