// Package access decides whether presented credentials open the door.
//
// Verify is the pure check of a typed password or a read tag UID against the
// stored Credential. DigitCollector accumulates the six keypad digits of a
// password entry, and RetryPolicy throttles repeated wrong entries.
//
// None of these types touch hardware; the controller and menu packages drive
// the display and the door around them.
package access
