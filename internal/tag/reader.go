// Package tag turns RFID transceiver exchanges into UID strings.
package tag

import (
	"github.com/nerrad567/gray-logic-access/internal/credential"
	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// Blinker gives visual feedback when a tag is read.
type Blinker interface {
	Blink()
}

// Logger defines the logging interface used by the Reader.
type Logger interface {
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Reader polls the RFID field for one tag at a time.
type Reader struct {
	dev    hal.RFID
	blink  Blinker
	logger Logger
}

// NewReader creates a Reader. blink may be nil.
func NewReader(dev hal.RFID, blink Blinker) *Reader {
	return &Reader{dev: dev, blink: blink, logger: noopLogger{}}
}

// SetLogger sets the logger for transceiver errors.
func (r *Reader) SetLogger(logger Logger) {
	r.logger = logger
}

// Poll runs one request/anticollision exchange and returns the UID of the
// selected tag. Transceiver errors read as "no tag".
func (r *Reader) Poll() (string, bool) {
	status, present := r.dev.Request()
	if status == hal.StatusError {
		r.logger.Debug("rfid request failed")
		return "", false
	}
	if status != hal.StatusOK || !present {
		return "", false
	}

	status, raw := r.dev.Anticollision()
	if status != hal.StatusOK || len(raw) == 0 {
		r.logger.Debug("rfid anticollision failed", "status", int(status))
		return "", false
	}

	if r.blink != nil {
		r.blink.Blink()
	}
	return credential.UIDFromBytes(raw), true
}
