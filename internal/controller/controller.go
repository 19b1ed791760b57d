package controller

import (
	"context"
	"fmt"

	"github.com/nerrad567/gray-logic-access/internal/access"
	"github.com/nerrad567/gray-logic-access/internal/credential"
	"github.com/nerrad567/gray-logic-access/internal/door"
	"github.com/nerrad567/gray-logic-access/internal/events"
	"github.com/nerrad567/gray-logic-access/internal/hal"
	"github.com/nerrad567/gray-logic-access/internal/keypad"
	"github.com/nerrad567/gray-logic-access/internal/menu"
	"github.com/nerrad567/gray-logic-access/internal/prompt"
	"github.com/nerrad567/gray-logic-access/internal/screen"
)

// State is the controller's top-level mode.
type State int

const (
	// Authenticating waits for a tag or a password.
	Authenticating State = iota

	// Authenticated waits for the menu or toggle key with the door closed.
	Authenticated

	// ManualOverride is Authenticated with the door held open by a toggle.
	ManualOverride

	// MenuActive means the menu owns the keypad.
	MenuActive
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case ManualOverride:
		return "manual_override"
	case MenuActive:
		return "menu_active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Logger defines the logging interface used by the controller.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}

// Controller wires the input sources, credential store, door and menu into
// the access state machine.
type Controller struct {
	keys    prompt.Keys
	tags    prompt.Tags
	store   *credential.Store
	lock    *door.Actuator
	screen  *screen.Screen
	menu    *menu.Controller
	policy  *access.RetryPolicy
	clock   hal.Clock
	emitter *events.Emitter
	logger  Logger

	state State
}

// Deps holds a Controller's collaborators.
type Deps struct {
	Keys   prompt.Keys
	Tags   prompt.Tags
	Store  *credential.Store
	Lock   *door.Actuator
	Screen *screen.Screen
	Menu   *menu.Controller
	Policy *access.RetryPolicy
	Clock  hal.Clock
}

// New creates a Controller. A nil Policy means unlimited retries.
func New(d Deps) *Controller {
	policy := d.Policy
	if policy == nil {
		policy = access.NewRetryPolicy(0, 0, d.Clock)
	}
	return &Controller{
		keys:   d.Keys,
		tags:   d.Tags,
		store:  d.Store,
		lock:   d.Lock,
		screen: d.Screen,
		menu:   d.Menu,
		policy: policy,
		clock:  d.Clock,
		logger: noopLogger{},
	}
}

// SetEmitter sets the sink for access events.
func (c *Controller) SetEmitter(em *events.Emitter) {
	c.emitter = em
}

// SetLogger sets the logger.
func (c *Controller) SetLogger(logger Logger) {
	c.logger = logger
}

// State returns the current mode.
func (c *Controller) State() State {
	return c.state
}

// Run boots the door and drives the state machine until ctx is done or a
// credential write fails.
func (c *Controller) Run(ctx context.Context) error {
	c.lock.Home()
	c.screen.Splash()
	c.setState(Authenticating)

	if err := c.authenticate(ctx); err != nil {
		return err
	}
	c.setState(Authenticated)

	for {
		k, err := prompt.NextKey(ctx, c.keys, c.clock)
		if err != nil {
			return err
		}

		switch k {
		case keypad.KeyConfirm:
			c.setState(MenuActive)
			return c.menu.Run(ctx)
		case keypad.KeyToggle:
			open := c.lock.Toggle(ctx)
			c.screen.DoorStatus(open)
			if open {
				c.setState(ManualOverride)
			} else {
				c.setState(Authenticated)
			}
		}
	}
}

func (c *Controller) setState(s State) {
	if c.state != s {
		c.logger.Debug("state change", "from", c.state.String(), "to", s.String())
	}
	c.state = s
}

// authenticate polls for an enrolled tag or the password key and returns
// once access has been granted and the door has relocked.
func (c *Controller) authenticate(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if uid, ok := c.tags.Poll(); ok {
			if access.Verify("", uid, c.store.Credential()) {
				c.logger.Info("access granted", "method", "rfid")
				c.emitter.EmitTag(ctx, events.KindAccessGranted, "", uid)
				return c.lock.GrantAccess(ctx)
			}
			c.logger.Info("unknown tag")
			c.emitter.EmitTag(ctx, events.KindAccessDenied, "unknown tag", uid)
		}

		if c.keys.Scan() == keypad.KeyConfirm {
			return c.enterPassword(ctx)
		}
		c.clock.Sleep(prompt.PollInterval)
	}
}

// enterPassword blocks until the stored password is typed, subject to the
// retry policy.
func (c *Controller) enterPassword(ctx context.Context) error {
	c.screen.PasswordPrompt("password")
	for {
		if wait := c.policy.Attempt(); wait > 0 {
			c.logger.Warn("password attempts throttled", "wait", wait.String())
			c.emitter.Emit(ctx, events.KindLockout, events.MethodPassword, wait.String())
			c.screen.Lockout(wait)
			if err := prompt.Sleep(ctx, c.clock, wait); err != nil {
				return err
			}
			c.screen.PasswordPrompt("password")
		}

		p, err := prompt.Digits(ctx, c.keys, c.clock, c.screen)
		if err != nil {
			return err
		}

		if access.Verify(p, "", c.store.Credential()) {
			c.policy.Reset()
			c.logger.Info("access granted", "method", "password")
			c.emitter.Emit(ctx, events.KindAccessGranted, events.MethodPassword, "")
			return c.lock.GrantAccess(ctx)
		}

		c.logger.Info("wrong password")
		c.emitter.Emit(ctx, events.KindAccessDenied, events.MethodPassword, "")
		c.screen.PasswordRetry()
		c.lock.Indicator().Flash()
	}
}
