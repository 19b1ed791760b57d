package hal

import "time"

// Display geometry of the stock 128x64 OLED.
const (
	DisplayWidth  = 128
	DisplayHeight = 64

	// GlyphSize is the width and height of one character cell in pixels.
	GlyphSize = 8
)

// Matrix is the raw GPIO view of a 4x4 key matrix.
// Rows are outputs, columns are pulled-up inputs, so a pressed key reads
// low on its column while its row is driven low.
type Matrix interface {
	// SetRow drives row i high or low.
	SetRow(i int, high bool)

	// ReadColumn returns the level of column j (true = high).
	ReadColumn(j int) bool
}

// Status is the result code returned by the RFID transceiver.
type Status int

const (
	// StatusOK means the command completed.
	StatusOK Status = iota

	// StatusNoTag means no card answered.
	StatusNoTag

	// StatusError means the transceiver reported a protocol error.
	StatusError
)

// RFID is the card reader. The request/anticollision exchange itself is
// handled by the implementation.
type RFID interface {
	// Request polls the field for an idle card.
	Request() (status Status, cardPresent bool)

	// Anticollision selects one card and returns its serial bytes.
	Anticollision() (status Status, uid []byte)
}

// Display is a monochrome framebuffer. Drawing calls only change the
// buffer; Flush pushes it to the panel.
type Display interface {
	Clear()
	DrawText(x, y int, s string)
	DrawLine(x0, y0, x1, y1 int)
	DrawPixel(x, y int, on bool)
	Flush()
}

// Actuator drives the PWM outputs: the lock servo and the RGB indicator.
type Actuator interface {
	// SetServoDutyPercent sets the servo pulse width as a percentage of the period.
	SetServoDutyPercent(p float64)

	// SetIndicator sets the indicator colour, 0-255 per channel.
	SetIndicator(r, g, b uint8)
}

// Clock is the time source for debounce, animation and countdown waits.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
