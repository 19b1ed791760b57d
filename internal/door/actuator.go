package door

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/events"
	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// State is the lock position.
type State int

const (
	// Closed means locked.
	Closed State = iota

	// Open means unlocked with no timer running.
	Open

	// Holding means unlocked and counting down to an automatic lock.
	Holding
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Holding:
		return "holding"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Status is a State plus the seconds left when Holding.
type Status struct {
	State     State
	Remaining int
}

// Config calibrates the servo.
type Config struct {
	// MinDutyPercent and MaxDutyPercent are the duty cycles at 0° and 180°.
	MinDutyPercent float64
	MaxDutyPercent float64

	OpenAngle   float64
	ClosedAngle float64

	// HoldSeconds is how long a granted door stays open.
	HoldSeconds int

	// SettleDelay is waited after every servo command.
	SettleDelay time.Duration
}

// DefaultConfig returns the calibration of the stock SG90 servo.
func DefaultConfig() Config {
	return Config{
		MinDutyPercent: 3.0,
		MaxDutyPercent: 10.5,
		OpenAngle:      90,
		ClosedAngle:    0,
		HoldSeconds:    10,
		SettleDelay:    time.Second,
	}
}

// DutyPercent maps angle (0-180) to a servo duty cycle.
func (c Config) DutyPercent(angle float64) float64 {
	return c.MinDutyPercent + angle/180.0*(c.MaxDutyPercent-c.MinDutyPercent)
}

// Feedback shows door progress to the user.
type Feedback interface {
	Welcome()
	Countdown(remaining int)
	Closed()
}

type noFeedback struct{}

func (noFeedback) Welcome()      {}
func (noFeedback) Countdown(int) {}
func (noFeedback) Closed()       {}

// Logger defines the logging interface used by the Actuator.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}

// Actuator drives the lock. It is not safe for concurrent use; the
// controller loop is its only caller.
type Actuator struct {
	hw        hal.Actuator
	clock     hal.Clock
	cfg       Config
	indicator *Indicator
	feedback  Feedback
	emitter   *events.Emitter
	logger    Logger

	status Status
}

// NewActuator creates an Actuator. The door is assumed Closed; call Home to
// make the servo agree.
func NewActuator(hw hal.Actuator, clock hal.Clock, cfg Config) *Actuator {
	return &Actuator{
		hw:        hw,
		clock:     clock,
		cfg:       cfg,
		indicator: newIndicator(hw, clock),
		feedback:  noFeedback{},
		logger:    noopLogger{},
	}
}

// SetFeedback sets where the animation and countdown are drawn.
func (a *Actuator) SetFeedback(f Feedback) {
	a.feedback = f
}

// SetEmitter sets the event sink for door state changes.
func (a *Actuator) SetEmitter(em *events.Emitter) {
	a.emitter = em
}

// SetLogger sets the logger.
func (a *Actuator) SetLogger(logger Logger) {
	a.logger = logger
}

// Indicator returns the RGB LED handle.
func (a *Actuator) Indicator() *Indicator {
	return a.indicator
}

// Status returns the current door state.
func (a *Actuator) Status() Status {
	return a.status
}

// Home moves the servo to the closed angle without recording an event.
func (a *Actuator) Home() {
	a.setAngle(a.cfg.ClosedAngle)
	a.status = Status{State: Closed}
}

// Unlock lights the indicator green and opens the lock.
func (a *Actuator) Unlock(ctx context.Context) {
	a.indicator.Green()
	a.setAngle(a.cfg.OpenAngle)
	a.status = Status{State: Open}
	a.logger.Info("door unlocked")
	a.emitter.Emit(ctx, events.KindDoorState, events.MethodNone, Open.String())
}

// Lock turns the indicator off and closes the lock.
func (a *Actuator) Lock(ctx context.Context) {
	a.indicator.Off()
	a.setAngle(a.cfg.ClosedAngle)
	a.status = Status{State: Closed}
	a.logger.Info("door locked")
	a.emitter.Emit(ctx, events.KindDoorState, events.MethodNone, Closed.String())
}

// HoldThenAutoLock counts down from seconds to 0, one second per step, then
// locks. Cancelling ctx locks immediately and returns ctx.Err(); either way
// Lock runs exactly once.
func (a *Actuator) HoldThenAutoLock(ctx context.Context, seconds int) error {
	for remaining := seconds; remaining >= 0; remaining-- {
		if err := ctx.Err(); err != nil {
			a.Lock(ctx)
			return err
		}
		a.status = Status{State: Holding, Remaining: remaining}
		a.feedback.Countdown(remaining)
		a.clock.Sleep(time.Second)
	}

	a.feedback.Closed()
	a.Lock(ctx)
	return nil
}

// Toggle opens a closed door and leaves it open, or locks an open one.
// It reports whether the door is now open.
func (a *Actuator) Toggle(ctx context.Context) bool {
	if a.status.State == Closed {
		a.Unlock(ctx)
		return true
	}
	a.Lock(ctx)
	return false
}

// GrantAccess runs the full granted sequence: welcome, unlock, countdown
// and automatic lock.
func (a *Actuator) GrantAccess(ctx context.Context) error {
	a.feedback.Welcome()
	a.Unlock(ctx)
	return a.HoldThenAutoLock(ctx, a.cfg.HoldSeconds)
}

func (a *Actuator) setAngle(angle float64) {
	duty := a.cfg.DutyPercent(angle)
	a.logger.Debug("servo move", "angle", angle, "duty_percent", duty)
	a.hw.SetServoDutyPercent(duty)
	a.clock.Sleep(a.cfg.SettleDelay)
}
