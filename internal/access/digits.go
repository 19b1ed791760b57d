package access

import (
	"github.com/nerrad567/gray-logic-access/internal/credential"
	"github.com/nerrad567/gray-logic-access/internal/keypad"
)

// DigitCollector accumulates keypad digits for a six-digit password.
// The zero value is empty and ready to use.
type DigitCollector struct {
	digits []byte
}

// Append adds k if it is a digit and the entry is not yet complete.
// It reports whether k was taken.
func (c *DigitCollector) Append(k keypad.Key) bool {
	if !k.IsDigit() || c.Complete() {
		return false
	}
	c.digits = append(c.digits, byte(k))
	return true
}

// Back erases the last digit. It reports false at position 0.
func (c *DigitCollector) Back() bool {
	if len(c.digits) == 0 {
		return false
	}
	c.digits = c.digits[:len(c.digits)-1]
	return true
}

// Len returns the current position, 0 to credential.PasswordLength.
func (c *DigitCollector) Len() int {
	return len(c.digits)
}

// Complete reports whether all six digits have been entered.
func (c *DigitCollector) Complete() bool {
	return len(c.digits) == credential.PasswordLength
}

// Reset empties the entry.
func (c *DigitCollector) Reset() {
	c.digits = c.digits[:0]
}

// Value returns the digits entered so far.
func (c *DigitCollector) Value() string {
	return string(c.digits)
}
