package keypad

import (
	"time"

	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// Default scan timing.
const (
	DefaultDebounceDelay  = 50 * time.Millisecond
	DefaultLongPressDelay = 500 * time.Millisecond
)

// Config holds scan timing.
type Config struct {
	// DebounceDelay is the poll interval while a key is held.
	DebounceDelay time.Duration

	// LongPressDelay is how long a key may stay down before the press is
	// reported as KeyNone.
	LongPressDelay time.Duration
}

// Scanner owns the matrix pins.
type Scanner struct {
	pins  hal.Matrix
	clock hal.Clock
	cfg   Config
}

// NewScanner returns a Scanner over pins. Zero timings take the defaults.
// All rows are driven high.
func NewScanner(pins hal.Matrix, clock hal.Clock, cfg Config) *Scanner {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultDebounceDelay
	}
	if cfg.LongPressDelay <= 0 {
		cfg.LongPressDelay = DefaultLongPressDelay
	}
	for r := 0; r < Rows; r++ {
		pins.SetRow(r, true)
	}
	return &Scanner{pins: pins, clock: clock, cfg: cfg}
}

// Scan performs one pass over the matrix and returns the first pressed key,
// or KeyNone. A key is reported once its release is seen; a key still down
// after LongPressDelay yields KeyNone. Every row is high again on return.
func (s *Scanner) Scan() Key {
	for row := 0; row < Rows; row++ {
		s.pins.SetRow(row, false)
		for col := 0; col < Columns; col++ {
			if s.pins.ReadColumn(col) {
				continue
			}
			released := s.waitRelease(col)
			s.pins.SetRow(row, true)
			if !released {
				return KeyNone
			}
			return At(row, col)
		}
		s.pins.SetRow(row, true)
	}
	return KeyNone
}

// waitRelease polls col until it goes high. It returns false if the key is
// still down after the long-press threshold.
func (s *Scanner) waitRelease(col int) bool {
	start := s.clock.Now()
	for !s.pins.ReadColumn(col) {
		if s.clock.Now().Sub(start) > s.cfg.LongPressDelay {
			return false
		}
		s.clock.Sleep(s.cfg.DebounceDelay)
	}
	return true
}
