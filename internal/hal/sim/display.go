package sim

import (
	"sort"
	"strings"
	"sync"

	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// Text is one string drawn on the display.
type Text struct {
	X, Y int
	S    string
}

// Line is one drawn line segment.
type Line struct {
	X0, Y0, X1, Y1 int
}

type point struct{ x, y int }

// Display keeps drawn text and lines instead of pixels.
//
// Clearing a pixel removes any text or line that starts on it, which is how
// the controller erases regions. Every drawn string is also kept in a
// history so tests can check messages that were later cleared.
type Display struct {
	mu      sync.Mutex
	texts   map[point]string
	lines   []Line
	history []string
	frame   []Text
	flushes int

	// OnFlush, when set, is called after every Flush with the flushed frame.
	OnFlush func(frame []Text, lines []Line)
}

// NewDisplay returns a blank display.
func NewDisplay() *Display {
	return &Display{texts: make(map[point]string)}
}

// Clear implements hal.Display.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts = make(map[point]string)
	d.lines = nil
}

// DrawText implements hal.Display.
func (d *Display) DrawText(x, y int, s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[point{x, y}] = s
	d.history = append(d.history, s)
}

// DrawLine implements hal.Display.
func (d *Display) DrawLine(x0, y0, x1, y1 int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, Line{X0: x0, Y0: y0, X1: x1, Y1: y1})
}

// DrawPixel implements hal.Display.
func (d *Display) DrawPixel(x, y int, on bool) {
	if on {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.texts, point{x, y})
	kept := d.lines[:0]
	for _, l := range d.lines {
		if l.X0 == x && l.Y0 == y {
			continue
		}
		kept = append(kept, l)
	}
	d.lines = kept
}

// Flush implements hal.Display.
func (d *Display) Flush() {
	d.mu.Lock()
	d.flushes++
	d.frame = d.visibleLocked()
	frame := append([]Text(nil), d.frame...)
	lines := append([]Line(nil), d.lines...)
	hook := d.OnFlush
	d.mu.Unlock()

	if hook != nil {
		hook(frame, lines)
	}
}

// Visible returns the text currently in the buffer, top to bottom, left to right.
func (d *Display) Visible() []Text {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visibleLocked()
}

func (d *Display) visibleLocked() []Text {
	out := make([]Text, 0, len(d.texts))
	for p, s := range d.texts {
		out = append(out, Text{X: p.x, Y: p.y, S: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Frame returns the text pushed by the last Flush.
func (d *Display) Frame() []Text {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Text(nil), d.frame...)
}

// Lines returns the lines currently in the buffer.
func (d *Display) Lines() []Line {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Line(nil), d.lines...)
}

// TextAt returns the string drawn at x, y, if any.
func (d *Display) TextAt(x, y int) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.texts[point{x, y}]
	return s, ok
}

// Shows reports whether s is currently in the buffer.
func (d *Display) Shows(s string) bool {
	for _, t := range d.Visible() {
		if t.S == s {
			return true
		}
	}
	return false
}

// Drew reports whether s was ever drawn.
func (d *Display) Drew(s string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range d.history {
		if h == s {
			return true
		}
	}
	return false
}

// History returns every string drawn so far, in order.
func (d *Display) History() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.history...)
}

// Flushes returns how many times Flush was called.
func (d *Display) Flushes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushes
}

// Render lays a frame out on a character grid, one cell per glyph.
// Text that falls off the panel is clipped.
func Render(frame []Text) string {
	cols := hal.DisplayWidth / hal.GlyphSize
	rows := hal.DisplayHeight / hal.GlyphSize

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	for _, t := range frame {
		row := t.Y / hal.GlyphSize
		if row < 0 || row >= rows {
			continue
		}
		col := t.X / hal.GlyphSize
		for _, r := range t.S {
			if col >= 0 && col < cols {
				grid[row][col] = r
			}
			col++
		}
	}

	lines := make([]string, rows)
	for i, r := range grid {
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}
