package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerrad567/gray-logic-access/internal/credential"
	"github.com/nerrad567/gray-logic-access/internal/door"
	"github.com/nerrad567/gray-logic-access/internal/events"
	"github.com/nerrad567/gray-logic-access/internal/hal"
	"github.com/nerrad567/gray-logic-access/internal/keypad"
	"github.com/nerrad567/gray-logic-access/internal/prompt"
	"github.com/nerrad567/gray-logic-access/internal/screen"
)

// Item is a menu entry.
type Item int

// Menu items in display order.
const (
	ChangePassword Item = iota
	ShowPassword
	EnrollUID
	ViewUIDs
)

var itemLabels = []string{
	ChangePassword: "Change password",
	ShowPassword:   "Show password",
	EnrollUID:      "Enter uid",
	ViewUIDs:       "View UID",
}

// String returns the label shown on screen.
func (i Item) String() string {
	if i < 0 || int(i) >= len(itemLabels) {
		return fmt.Sprintf("item(%d)", int(i))
	}
	return itemLabels[i]
}

// Items returns the menu labels in display order.
func Items() []string {
	return append([]string(nil), itemLabels...)
}

// State is the menu's mode.
type State int

const (
	// ItemSelect waits for navigation keys.
	ItemSelect State = iota

	// ActionRunning means a menu action owns the keypad.
	ActionRunning
)

// Logger defines the logging interface used by the menu.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}

// Controller runs the menu.
type Controller struct {
	keys    prompt.Keys
	tags    prompt.Tags
	store   *credential.Store
	lock    *door.Actuator
	screen  *screen.Screen
	clock   hal.Clock
	emitter *events.Emitter
	logger  Logger

	cursor Cursor
	state  State
}

// New creates a menu Controller.
func New(keys prompt.Keys, tags prompt.Tags, store *credential.Store, lock *door.Actuator, scr *screen.Screen, clock hal.Clock) *Controller {
	return &Controller{
		keys:   keys,
		tags:   tags,
		store:  store,
		lock:   lock,
		screen: scr,
		clock:  clock,
		logger: noopLogger{},
		cursor: NewCursor(len(itemLabels)),
	}
}

// SetEmitter sets the sink for credential change events.
func (m *Controller) SetEmitter(em *events.Emitter) {
	m.emitter = em
}

// SetLogger sets the logger.
func (m *Controller) SetLogger(logger Logger) {
	m.logger = logger
}

// State returns the current mode.
func (m *Controller) State() State {
	return m.state
}

// Selected returns the item under the cursor.
func (m *Controller) Selected() Item {
	return Item(m.cursor.Index())
}

// Run shows the menu and handles keys until ctx is done or an action fails.
// The cursor starts on the first item.
func (m *Controller) Run(ctx context.Context) error {
	m.cursor = NewCursor(len(itemLabels))
	m.state = ItemSelect
	m.screen.Menu(itemLabels, m.cursor.Index())

	for {
		k, err := prompt.NextKey(ctx, m.keys, m.clock)
		if err != nil {
			return err
		}

		switch k {
		case keypad.KeyUp:
			from := m.cursor.Index()
			if m.cursor.Up() {
				m.screen.MoveMenuCursor(itemLabels, from, m.cursor.Index())
			}
		case keypad.KeyDown:
			from := m.cursor.Index()
			if m.cursor.Down() {
				m.screen.MoveMenuCursor(itemLabels, from, m.cursor.Index())
			}
		case keypad.KeyToggle:
			m.lock.Toggle(ctx)
		case keypad.KeyConfirm:
			m.state = ActionRunning
			err := m.runAction(ctx, m.Selected())
			m.state = ItemSelect
			if err != nil {
				return err
			}
			m.screen.Menu(itemLabels, m.cursor.Index())
		}
	}
}

func (m *Controller) runAction(ctx context.Context, item Item) error {
	m.logger.Info("menu action", "item", item.String())
	switch item {
	case ChangePassword:
		return m.changePassword(ctx)
	case ShowPassword:
		return m.showPassword(ctx)
	case EnrollUID:
		return m.enrollUID(ctx)
	case ViewUIDs:
		return m.viewUIDs(ctx)
	default:
		return nil
	}
}

func (m *Controller) changePassword(ctx context.Context) error {
	m.screen.PasswordPrompt("New Password")
	p, err := prompt.Digits(ctx, m.keys, m.clock, m.screen)
	if err != nil {
		return err
	}
	if err := m.store.SetPassword(p); err != nil {
		return fmt.Errorf("saving password: %w", err)
	}
	m.emitter.Emit(ctx, events.KindCredentialChanged, events.MethodPassword, "password changed")
	m.screen.OK()
	return nil
}

func (m *Controller) showPassword(ctx context.Context) error {
	m.screen.ShowPassword(m.store.Credential().Password)
	return prompt.WaitFor(ctx, m.keys, m.clock, keypad.KeyBack)
}

func (m *Controller) enrollUID(ctx context.Context) error {
	m.screen.UIDPrompt()
	uid, err := prompt.Tag(ctx, m.keys, m.tags, m.clock)
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	err = m.store.AddUID(uid)
	switch {
	case errors.Is(err, credential.ErrUIDExists):
		m.logger.Info("tag already enrolled")
		m.screen.UIDExists()
		return nil
	case err != nil:
		return fmt.Errorf("enrolling uid: %w", err)
	}

	m.emitter.EmitTag(ctx, events.KindCredentialChanged, "uid added", uid)
	m.screen.UIDEnrolled(uid)
	return nil
}

// viewUIDs is the list/confirm loop. Deleting or cancelling returns to the
// list with the cursor reset; deleting the last UID leaves through the
// empty-list page.
func (m *Controller) viewUIDs(ctx context.Context) error {
	uids := m.store.Credential().UIDs
	if len(uids) == 0 {
		m.screen.NoUIDs()
		return nil
	}

	cursor := NewCursor(len(uids))
	m.screen.UIDList(uids, cursor.Index())

	for {
		k, err := prompt.NextKey(ctx, m.keys, m.clock)
		if err != nil {
			return err
		}

		switch k {
		case keypad.KeyUp:
			if cursor.Up() {
				m.screen.UIDList(uids, cursor.Index())
			}
		case keypad.KeyDown:
			if cursor.Down() {
				m.screen.UIDList(uids, cursor.Index())
			}
		case keypad.KeyBack:
			return nil
		case keypad.KeyConfirm:
			m.screen.ConfirmDelete()
			ok, err := prompt.Confirm(ctx, m.keys, m.clock)
			if err != nil {
				return err
			}
			if ok {
				removed, err := m.store.DeleteUID(cursor.Index())
				if err != nil {
					return fmt.Errorf("deleting uid: %w", err)
				}
				m.emitter.EmitTag(ctx, events.KindCredentialChanged, "uid removed", removed)

				uids = m.store.Credential().UIDs
				if len(uids) == 0 {
					m.screen.NoUIDs()
					return nil
				}
			}
			// Back at the list either way, from the top.
			cursor = NewCursor(len(uids))
			m.screen.UIDList(uids, cursor.Index())
		}
	}
}
