// Package sim provides in-memory implementations of the hal interfaces.
//
// Tests drive them with a fake Clock so debounce waits, animations and the
// door countdown run instantly. The terminal simulator in cmd/doorlock uses
// the same types with the system clock.
//
// Matrix, RFID and Display are safe for concurrent use so a terminal reader
// goroutine can feed them while the controller polls.
package sim
