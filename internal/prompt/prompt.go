// Package prompt holds the blocking keypad and tag waits shared by the
// controller and the menu.
//
// Every wait polls once per cycle, sleeping PollInterval on the clock when
// nothing happened, and returns ctx.Err() as soon as ctx is done.
package prompt

import (
	"context"
	"errors"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/access"
	"github.com/nerrad567/gray-logic-access/internal/hal"
	"github.com/nerrad567/gray-logic-access/internal/keypad"
)

// PollInterval is the idle sleep between polls.
const PollInterval = 20 * time.Millisecond

// ErrAborted is returned when the user presses the back key during a wait.
var ErrAborted = errors.New("prompt: aborted")

// Keys is a source of key events, normally a keypad.Scanner.
type Keys interface {
	Scan() keypad.Key
}

// Tags is a source of tag UIDs, normally a tag.Reader.
type Tags interface {
	Poll() (string, bool)
}

// DigitView draws password entry progress.
type DigitView interface {
	PasswordDigit(pos int, digit string)
	PasswordErase(pos int)
}

// NextKey blocks until a key other than KeyNone is pressed.
func NextKey(ctx context.Context, keys Keys, clock hal.Clock) (keypad.Key, error) {
	for {
		if err := ctx.Err(); err != nil {
			return keypad.KeyNone, err
		}
		if k := keys.Scan(); k != keypad.KeyNone {
			return k, nil
		}
		clock.Sleep(PollInterval)
	}
}

// WaitFor blocks until want is pressed. Other keys are ignored.
func WaitFor(ctx context.Context, keys Keys, clock hal.Clock, want keypad.Key) error {
	for {
		k, err := NextKey(ctx, keys, clock)
		if err != nil {
			return err
		}
		if k == want {
			return nil
		}
	}
}

// Confirm blocks until the confirm key (true) or the back key (false).
func Confirm(ctx context.Context, keys Keys, clock hal.Clock) (bool, error) {
	for {
		k, err := NextKey(ctx, keys, clock)
		if err != nil {
			return false, err
		}
		switch k {
		case keypad.KeyConfirm:
			return true, nil
		case keypad.KeyBack:
			return false, nil
		}
	}
}

// Digits collects a six-digit entry. The back key erases the last digit.
// The slots are expected to be on screen already.
func Digits(ctx context.Context, keys Keys, clock hal.Clock, view DigitView) (string, error) {
	var c access.DigitCollector
	for !c.Complete() {
		k, err := NextKey(ctx, keys, clock)
		if err != nil {
			return "", err
		}
		switch {
		case k == keypad.KeyBack:
			if c.Back() {
				view.PasswordErase(c.Len())
			}
		case c.Append(k):
			view.PasswordDigit(c.Len()-1, k.String())
		}
	}
	return c.Value(), nil
}

// Tag blocks until a tag is read. The back key returns ErrAborted.
func Tag(ctx context.Context, keys Keys, tags Tags, clock hal.Clock) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if uid, ok := tags.Poll(); ok {
			return uid, nil
		}
		if keys.Scan() == keypad.KeyBack {
			return "", ErrAborted
		}
		clock.Sleep(PollInterval)
	}
}

// Sleep waits d on clock in one-second steps, returning early if ctx is done.
func Sleep(ctx context.Context, clock hal.Clock, d time.Duration) error {
	for d > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := min(d, time.Second)
		clock.Sleep(step)
		d -= step
	}
	return ctx.Err()
}
