package sim

import (
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// DefaultHold is the hold time for presses queued without one. It is
// shorter than any sane debounce interval, so the press reads as a tap.
const DefaultHold = 10 * time.Millisecond

type press struct {
	row, col int
	hold     time.Duration
	since    time.Time
}

// Matrix simulates a key matrix with active-low columns.
//
// Presses are queued and played back one at a time. A queued press becomes
// active when row 0 is driven low (the start of a scan) and stays down for
// its hold time as measured by the clock.
type Matrix struct {
	mu     sync.Mutex
	clock  hal.Clock
	rows   []bool // true = high
	cols   int
	queue  []press
	active *press
}

// NewMatrix returns a rows x cols matrix with every row high.
func NewMatrix(rows, cols int, clock hal.Clock) *Matrix {
	m := &Matrix{
		clock: clock,
		rows:  make([]bool, rows),
		cols:  cols,
	}
	for i := range m.rows {
		m.rows[i] = true
	}
	return m
}

// Press queues a tap on the key at row, col.
func (m *Matrix) Press(row, col int) {
	m.Hold(row, col, DefaultHold)
}

// Hold queues a press on the key at row, col that stays down for d.
func (m *Matrix) Hold(row, col int, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, press{row: row, col: col, hold: d})
}

// Pending returns the number of presses not yet played back,
// including one that is currently held.
func (m *Matrix) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.queue)
	if m.active != nil {
		n++
	}
	return n
}

// RowLevels returns a copy of the row output levels.
func (m *Matrix) RowLevels() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]bool, len(m.rows))
	copy(out, m.rows)
	return out
}

// SetRow implements hal.Matrix.
func (m *Matrix) SetRow(i int, high bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.rows[i] = high
	if i == 0 && !high && m.active == nil && len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		next.since = m.clock.Now()
		m.active = &next
	}
}

// ReadColumn implements hal.Matrix.
func (m *Matrix) ReadColumn(j int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return true
	}
	if m.clock.Now().Sub(m.active.since) >= m.active.hold {
		m.active = nil
		return true
	}
	if m.active.col != j || m.rows[m.active.row] {
		return true
	}
	return false
}
