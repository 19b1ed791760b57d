package keypad_test

import (
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/hal/sim"
	"github.com/nerrad567/gray-logic-access/internal/keypad"
)

func newTestScanner(t *testing.T) (*keypad.Scanner, *sim.Matrix, *sim.Clock) {
	t.Helper()
	clock := sim.NewClock()
	pins := sim.NewMatrix(keypad.Rows, keypad.Columns, clock)
	scanner := keypad.NewScanner(pins, clock, keypad.Config{})
	return scanner, pins, clock
}

func press(t *testing.T, pins *sim.Matrix, k keypad.Key, hold time.Duration) {
	t.Helper()
	row, col, ok := keypad.Position(k)
	if !ok {
		t.Fatalf("no position for key %v", k)
	}
	pins.Hold(row, col, hold)
}

func TestScan_NoKey(t *testing.T) {
	scanner, _, clock := newTestScanner(t)

	if got := scanner.Scan(); got != keypad.KeyNone {
		t.Errorf("Scan() = %v, want none", got)
	}
	if clock.Slept() != 0 {
		t.Errorf("idle scan slept %v, want 0", clock.Slept())
	}
}

func TestScan_EveryKey(t *testing.T) {
	for row := 0; row < keypad.Rows; row++ {
		for col := 0; col < keypad.Columns; col++ {
			want := keypad.At(row, col)
			t.Run(want.String(), func(t *testing.T) {
				scanner, pins, _ := newTestScanner(t)
				pins.Press(row, col)

				if got := scanner.Scan(); got != want {
					t.Errorf("Scan() = %v, want %v", got, want)
				}
			})
		}
	}
}

func TestScan_OneEventPerPress(t *testing.T) {
	scanner, pins, _ := newTestScanner(t)
	press(t, pins, '5', 200*time.Millisecond)

	if got := scanner.Scan(); got != '5' {
		t.Fatalf("first Scan() = %v, want 5", got)
	}
	if got := scanner.Scan(); got != keypad.KeyNone {
		t.Errorf("second Scan() = %v, want none", got)
	}
}

func TestScan_LongPressCancels(t *testing.T) {
	scanner, pins, clock := newTestScanner(t)
	press(t, pins, '#', 2*time.Second)

	if got := scanner.Scan(); got != keypad.KeyNone {
		t.Errorf("Scan() = %v, want none for long press", got)
	}
	if clock.Slept() > keypad.DefaultLongPressDelay+keypad.DefaultDebounceDelay {
		t.Errorf("Scan() blocked %v, want at most %v", clock.Slept(),
			keypad.DefaultLongPressDelay+keypad.DefaultDebounceDelay)
	}
}

func TestScan_HoldJustUnderThreshold(t *testing.T) {
	scanner, pins, _ := newTestScanner(t)
	press(t, pins, 'B', 450*time.Millisecond)

	if got := scanner.Scan(); got != keypad.KeyB {
		t.Errorf("Scan() = %v, want B", got)
	}
}

func TestScan_RowsRestoredHigh(t *testing.T) {
	scanner, pins, _ := newTestScanner(t)

	cases := []time.Duration{sim.DefaultHold, 2 * time.Second}
	for _, hold := range cases {
		press(t, pins, '8', hold)
		scanner.Scan()

		for i, high := range pins.RowLevels() {
			if !high {
				t.Errorf("hold %v: row %d left low", hold, i)
			}
		}
	}
}

func TestKey_IsDigit(t *testing.T) {
	tests := []struct {
		key  keypad.Key
		want bool
	}{
		{'0', true},
		{'9', true},
		{keypad.KeyA, false},
		{keypad.KeyHash, false},
		{keypad.KeyNone, false},
	}

	for _, tt := range tests {
		if got := tt.key.IsDigit(); got != tt.want {
			t.Errorf("%v.IsDigit() = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestAt_OutOfRange(t *testing.T) {
	if got := keypad.At(4, 0); got != keypad.KeyNone {
		t.Errorf("At(4, 0) = %v, want none", got)
	}
	if got := keypad.At(0, -1); got != keypad.KeyNone {
		t.Errorf("At(0, -1) = %v, want none", got)
	}
}
