package menu

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nerrad567/gray-logic-access/internal/credential"
	"github.com/nerrad567/gray-logic-access/internal/door"
	"github.com/nerrad567/gray-logic-access/internal/hal/sim"
	"github.com/nerrad567/gray-logic-access/internal/screen"
	"github.com/nerrad567/gray-logic-access/internal/tag"
)

type rig struct {
	ctx     context.Context
	cancel  context.CancelFunc
	keys    *sim.Script
	rfid    *sim.RFID
	display *sim.Display
	servo   *sim.Actuator
	store   *credential.Store
	lock    *door.Actuator
	menu    *Controller
}

func newRig(t *testing.T, uids ...string) *rig {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	clock := sim.NewClock()
	r := &rig{
		ctx:     ctx,
		cancel:  cancel,
		keys:    sim.NewScript(cancel),
		rfid:    sim.NewRFID(),
		display: sim.NewDisplay(),
		servo:   sim.NewActuator(),
		store:   credential.NewStore(t.TempDir()),
	}
	r.store.Load()
	for _, uid := range uids {
		if err := r.store.AddUID(uid); err != nil {
			t.Fatalf("AddUID(%q) error = %v", uid, err)
		}
	}

	scr := screen.New(r.display, clock)
	r.lock = door.NewActuator(r.servo, clock, door.DefaultConfig())
	r.lock.SetFeedback(scr)
	reader := tag.NewReader(r.rfid, r.lock.Indicator())
	r.menu = New(r.keys, reader, r.store, r.lock, scr, clock)
	return r
}

func (r *rig) run(t *testing.T) {
	t.Helper()
	if err := r.menu.Run(r.ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestCursor_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		count int
		moves string
		want  int
	}{
		{"up at top", 4, "uuu", 0},
		{"down to bottom", 4, "dddddd", 3},
		{"down then up", 4, "ddu", 1},
		{"single entry", 1, "dud", 0},
		{"empty", 0, "dd", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.count)
			for _, m := range tt.moves {
				if m == 'u' {
					c.Up()
				} else {
					c.Down()
				}
				if c.Index() < 0 || (c.Count() > 0 && c.Index() >= c.Count()) {
					t.Fatalf("index %d escaped [0,%d)", c.Index(), c.Count())
				}
			}
			if c.Index() != tt.want {
				t.Errorf("Index() = %d, want %d", c.Index(), tt.want)
			}
		})
	}
}

func TestCursor_MoveReportsChange(t *testing.T) {
	c := NewCursor(2)
	if c.Up() {
		t.Error("Up() at 0 reported a move")
	}
	if !c.Down() {
		t.Error("Down() from 0 did not move")
	}
	if c.Down() {
		t.Error("Down() at bottom reported a move")
	}
}

func TestMenu_Navigation(t *testing.T) {
	r := newRig(t)
	r.keys.Type("AAAC")
	r.run(t)

	if r.menu.Selected() != ShowPassword {
		t.Errorf("Selected() = %v, want %v", r.menu.Selected(), ShowPassword)
	}
	for _, label := range Items() {
		if !r.display.Shows(label) {
			t.Errorf("menu item %q not shown", label)
		}
	}
}

func TestMenu_ChangePassword(t *testing.T) {
	r := newRig(t)
	r.keys.Type("B654321")
	r.run(t)

	if got := r.store.Credential().Password; got != "654321" {
		t.Errorf("Password = %q, want 654321", got)
	}
	if got := credential.NewStore(r.store.Dir()).Load().Password; got != "654321" {
		t.Errorf("persisted Password = %q, want 654321", got)
	}
	if !r.display.Drew("New Password") || !r.display.Drew("OK") {
		t.Errorf("history = %v", r.display.History())
	}
	if r.menu.State() != ItemSelect {
		t.Errorf("State() = %v, want ItemSelect", r.menu.State())
	}
}

func TestMenu_ShowPassword(t *testing.T) {
	r := newRig(t)
	r.keys.Type("CB").Idle(2).Then(func() {
		if !r.display.Shows("your password") {
			t.Error("password page not shown")
		}
		if got, _ := r.display.TextAt(10, 40); got != "1" {
			t.Errorf("first digit = %q, want 1", got)
		}
	}).Type("5D")
	r.run(t)

	if !r.display.Shows("Change password") {
		t.Error("menu not redrawn after D")
	}
}

func TestMenu_EnrollUID(t *testing.T) {
	r := newRig(t)
	r.keys.Type("CCB").Then(func() { r.rfid.Present([]byte{104, 52, 31, 87}) })
	r.run(t)

	if got := r.store.Credential().UIDs; !slices.Equal(got, []string{"104523187"}) {
		t.Errorf("UIDs = %v, want [104523187]", got)
	}
	if !r.display.Drew("104523187") {
		t.Error("enrolled uid not shown")
	}
}

func TestMenu_EnrollDuplicate(t *testing.T) {
	r := newRig(t, "104523187")
	before, err := os.ReadFile(filepath.Join(r.store.Dir(), credential.UIDFile))
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}

	r.keys.Type("CCB").Then(func() { r.rfid.Present([]byte{104, 52, 31, 87}) })
	r.run(t)

	if !r.display.Drew("The card") || !r.display.Drew("already exists") {
		t.Errorf("history = %v", r.display.History())
	}
	if got := r.store.Credential().UIDs; len(got) != 1 {
		t.Errorf("UIDs = %v, want one", got)
	}
	after, err := os.ReadFile(filepath.Join(r.store.Dir(), credential.UIDFile))
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	if string(before) != string(after) {
		t.Errorf("record changed: %q -> %q", before, after)
	}
}

func TestMenu_EnrollAborted(t *testing.T) {
	r := newRig(t)
	r.keys.Type("CCB").Idle(1).Type("D")
	r.run(t)

	if n := len(r.store.Credential().UIDs); n != 0 {
		t.Errorf("UIDs = %d, want 0", n)
	}
	if !r.display.Shows("Enter uid") {
		t.Error("menu not redrawn after abort")
	}
}

func TestMenu_DeleteOnlyUID(t *testing.T) {
	r := newRig(t, "555")
	r.keys.Type("CCCB").Then(func() {
		if !r.display.Shows("Your Uid") || !r.display.Shows("555") {
			t.Errorf("list not shown: %+v", r.display.Visible())
		}
	}).Type("BB")
	r.run(t)

	if n := len(r.store.Credential().UIDs); n != 0 {
		t.Errorf("UIDs = %d, want 0", n)
	}
	data, err := os.ReadFile(filepath.Join(r.store.Dir(), credential.UIDFile))
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("uid record = %q, want empty", data)
	}
	if !r.display.Drew("Delete this UID") || !r.display.Drew("No UID") {
		t.Errorf("history = %v", r.display.History())
	}
}

func TestMenu_DeleteSecondKeepsFirst(t *testing.T) {
	r := newRig(t, "111", "222", "333")
	r.keys.Type("CCCB" + "C" + "BB")
	r.run(t)

	if got := r.store.Credential().UIDs; !slices.Equal(got, []string{"111", "333"}) {
		t.Errorf("UIDs = %v, want [111 333]", got)
	}
}

func TestMenu_DeleteCancelled(t *testing.T) {
	r := newRig(t, "555")
	r.keys.Type("CCCBB").Then(func() {
		if !r.display.Shows("Are you sure?") {
			t.Error("confirmation not shown")
		}
	}).Type("D").Then(func() {
		if !r.display.Shows("Your Uid") {
			t.Error("list not redrawn after cancel")
		}
	}).Type("D")
	r.run(t)

	if n := len(r.store.Credential().UIDs); n != 1 {
		t.Errorf("UIDs = %d, want 1", n)
	}
}

func TestMenu_DeleteCancelledResetsCursor(t *testing.T) {
	r := newRig(t, "111", "222", "333")
	// Select 333, back out of the confirmation, then delete from the top.
	r.keys.Type("CCCB" + "CC" + "B" + "D" + "BB")
	r.run(t)

	if got := r.store.Credential().UIDs; !slices.Equal(got, []string{"222", "333"}) {
		t.Errorf("UIDs = %v, want [222 333]", got)
	}
}

func TestMenu_ViewEmpty(t *testing.T) {
	r := newRig(t)
	r.keys.Type("CCCB")
	r.run(t)

	if !r.display.Drew("No UID") || !r.display.Drew("Please enter") {
		t.Errorf("history = %v", r.display.History())
	}
}

func TestMenu_ToggleStaysLive(t *testing.T) {
	r := newRig(t)
	r.keys.Type("C#")
	r.run(t)

	if r.lock.Status().State != door.Open {
		t.Errorf("door = %v, want open", r.lock.Status().State)
	}
}
