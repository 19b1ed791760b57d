package events

import (
	"context"
	"errors"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// Kind is the category of an event.
type Kind string

// Event kinds.
const (
	KindAccessGranted     Kind = "access_granted"
	KindAccessDenied      Kind = "access_denied"
	KindDoorState         Kind = "door_state"
	KindCredentialChanged Kind = "credential_changed"
	KindLockout           Kind = "lockout"
)

// Method is how access was requested.
type Method string

// Access methods.
const (
	MethodNone     Method = ""
	MethodPassword Method = "password"
	MethodRFID     Method = "rfid"
	MethodManual   Method = "manual"
)

// Event is one thing that happened at a door.
//
// UID is the tag involved, if any. It opens the door, so only the local
// audit log stores it; it is never marshalled.
type Event struct {
	Kind   Kind      `json:"kind"`
	Method Method    `json:"method,omitempty"`
	Door   string    `json:"door"`
	Detail string    `json:"detail,omitempty"`
	UID    string    `json:"-"`
	At     time.Time `json:"at"`
}

// Recorder stores or forwards events.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, e Event) error

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Multi records to every recorder in order and joins their errors.
type Multi []Recorder

// Record implements Recorder.
func (m Multi) Record(ctx context.Context, e Event) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Logger defines the logging interface used by this package.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}

// LogRecorder writes each event as a structured log line.
type LogRecorder struct {
	logger Logger
}

// NewLogRecorder creates a LogRecorder.
func NewLogRecorder(logger Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

// Record implements Recorder.
func (l *LogRecorder) Record(_ context.Context, e Event) error {
	args := []any{"kind", string(e.Kind), "door", e.Door}
	if e.Method != MethodNone {
		args = append(args, "method", string(e.Method))
	}
	if e.Detail != "" {
		args = append(args, "detail", e.Detail)
	}
	l.logger.Info("door event", args...)
	return nil
}

// recordTimeout bounds how long one event may hold up the door loop.
const recordTimeout = 2 * time.Second

// Emitter stamps events with the door and time and hands them to a Recorder.
// A nil *Emitter discards events.
type Emitter struct {
	door     string
	clock    hal.Clock
	recorder Recorder
	logger   Logger
}

// NewEmitter creates an Emitter for door.
func NewEmitter(door string, clock hal.Clock, recorder Recorder) *Emitter {
	return &Emitter{
		door:     door,
		clock:    clock,
		recorder: recorder,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for recorder failures.
func (em *Emitter) SetLogger(logger Logger) {
	em.logger = logger
}

// Emit records one event. It does not fail: recorder errors are logged.
//
// Cancellation of ctx does not drop the event, so a lock during shutdown
// still reaches the audit log.
func (em *Emitter) Emit(ctx context.Context, kind Kind, method Method, detail string) {
	em.emit(ctx, Event{Kind: kind, Method: method, Detail: detail})
}

// EmitTag records an RFID event about uid.
func (em *Emitter) EmitTag(ctx context.Context, kind Kind, detail, uid string) {
	em.emit(ctx, Event{Kind: kind, Method: MethodRFID, Detail: detail, UID: uid})
}

func (em *Emitter) emit(ctx context.Context, e Event) {
	if em == nil || em.recorder == nil {
		return
	}

	e.Door = em.door
	e.At = em.clock.Now().UTC()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := em.recorder.Record(ctx, e); err != nil {
		em.logger.Warn("recording event failed",
			"kind", string(e.Kind),
			"error", err,
		)
	}
}
