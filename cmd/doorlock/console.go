package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/nerrad567/gray-logic-access/internal/hal/sim"
	"github.com/nerrad567/gray-logic-access/internal/keypad"
)

// Control bytes that end the simulator in raw mode.
const (
	ctrlC = 0x03
	ctrlD = 0x04
)

// ANSI sequence that homes the cursor and clears the screen.
const clearScreen = "\x1b[H\x1b[2J"

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const helpText = "0-9 a-d * #  keypad   t  tag   q  quit"

// console is the simulator's terminal. Keystrokes become matrix presses
// and every display flush redraws the panel.
type console struct {
	hw  *hardware
	in  io.Reader
	out io.Writer

	mu      sync.Mutex
	restore func()
	raw     bool
}

// newConsole attaches to in and out. When in is a terminal it is switched
// to raw mode so single keystrokes arrive without Enter.
func newConsole(hw *hardware, in io.Reader, out io.Writer) (*console, error) {
	c := &console{hw: hw, in: in, out: out, restore: func() {}}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return nil, fmt.Errorf("switching terminal to raw mode: %w", err)
		}
		c.raw = true
		c.restore = func() {
			term.Restore(int(f.Fd()), state) //nolint:errcheck // Best effort cleanup
		}
	}

	hw.display.OnFlush = func(frame []sim.Text, _ []sim.Line) {
		c.draw(frame)
	}
	return c, nil
}

// Close restores the terminal.
func (c *console) Close() {
	c.restore()
}

// Run reads keystrokes until ctx ends. A quit key calls stop, as does
// losing an attached terminal. EOF on anything else (a pipe, /dev/null
// under a service manager) only ends input; the controller keeps running
// until signalled.
func (c *console) Run(ctx context.Context, stop context.CancelFunc) {
	buf := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := c.in.Read(buf)
		if n == 1 && !c.handle(buf[0]) {
			stop()
			return
		}
		if err != nil {
			if c.raw {
				stop()
			}
			return
		}
	}
}

// handle applies one keystroke. It returns false when the simulator should stop.
func (c *console) handle(b byte) bool {
	switch {
	case b == 'q' || b == ctrlC || b == ctrlD:
		return false
	case b == 't':
		c.hw.rfid.Present(c.hw.tagUID)
		return true
	}

	k := keypad.Key(b)
	if b >= 'a' && b <= 'd' {
		k = keypad.Key(b - 'a' + 'A')
	}
	if row, col, ok := keypad.Position(k); ok {
		c.hw.matrix.Press(row, col)
	}
	return true
}

// draw renders one frame with the indicator colour and help line.
func (c *console) draw(frame []sim.Text) {
	led := c.hw.servo.LastColour()
	indicator := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", led.R, led.G, led.B))).
		Render("●")

	view := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(sim.Render(frame)),
		fmt.Sprintf(" led %s  servo %.1f%%", indicator, c.hw.servo.LastDuty()),
		helpStyle.Render(" "+helpText),
	)

	if c.raw {
		view = strings.ReplaceAll(view, "\n", "\r\n")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, clearScreen+view+lineEnd(c.raw))
}

func lineEnd(raw bool) string {
	if raw {
		return "\r\n"
	}
	return "\n"
}
