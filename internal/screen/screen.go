package screen

import (
	"strconv"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// Password slot layout.
var passwordX = [...]int{10, 30, 50, 70, 90, 110}

const (
	passwordY = 40

	// underlineOffset is how far below a digit its slot underline sits.
	underlineOffset = 10

	// rowSpacing separates menu and list rows.
	rowSpacing = 15

	// cursorOffset puts the cursor line just under a row's glyphs.
	cursorOffset = 9

	// ListRows is how many UIDs fit under the list title.
	ListRows = 3
)

// Status line used by the door messages and the countdown.
const (
	statusX     = 25
	statusY     = 30
	statusWidth = 60

	countdownX     = 64
	countdownWidth = 16
)

// Animation geometry.
const (
	welcomeStep    = 16
	welcomeOpenGap = 25
	okStep         = 8
	okStopX        = 49
)

// How long informational pages stay up.
const (
	MessageHold = 3 * time.Second
	okHold      = time.Second
)

// Screen draws pages on a display.
type Screen struct {
	d     hal.Display
	clock hal.Clock
}

// New returns a Screen drawing on d. clock paces the animations that pause.
func New(d hal.Display, clock hal.Clock) *Screen {
	return &Screen{d: d, clock: clock}
}

// ClearRegion blanks a w x h rectangle without flushing.
func (s *Screen) ClearRegion(x, y, w, h int) {
	for i := x; i < x+w; i++ {
		for j := y; j < y+h; j++ {
			s.d.DrawPixel(i, j, false)
		}
	}
}

// Message replaces the whole screen with lines at their positions.
func (s *Screen) Message(lines ...Text) {
	s.d.Clear()
	for _, l := range lines {
		s.d.DrawText(l.X, l.Y, l.S)
	}
	s.d.Flush()
}

// Text is one positioned string.
type Text struct {
	X, Y int
	S    string
}

// Title clears the screen and shows s on the top row.
func (s *Screen) Title(title string) {
	s.Message(Text{0, 0, title})
}

// Splash shows the boot banner.
func (s *Screen) Splash() {
	s.Message(
		Text{0, 20, "Smart Home"},
		Text{16, 30, "Defense System"},
	)
}

// underline draws a cursor line of width pixels at y.
func (s *Screen) underline(y, width int) {
	s.d.DrawLine(0, y, width, y)
}

// eraseUnderline removes a line drawn by underline.
func (s *Screen) eraseUnderline(y, width int) {
	s.ClearRegion(0, y, width+1, 1)
}

func textWidth(str string) int {
	return len(str) * hal.GlyphSize
}

// PasswordPrompt clears the screen, shows title and the six empty slots.
func (s *Screen) PasswordPrompt(title string) {
	s.d.Clear()
	s.d.DrawText(0, 0, title)
	s.drawSlots()
	s.d.Flush()
}

// PasswordRetry replaces the prompt with "try again" and fresh slots.
func (s *Screen) PasswordRetry() {
	s.PasswordPrompt("try again")
}

func (s *Screen) drawSlots() {
	for _, x := range passwordX {
		s.d.DrawLine(x, passwordY+underlineOffset, x+hal.GlyphSize, passwordY+underlineOffset)
	}
}

// PasswordDigit shows digit in slot pos and masks the digit before it.
func (s *Screen) PasswordDigit(pos int, digit string) {
	if pos < 0 || pos >= len(passwordX) {
		return
	}
	s.d.DrawText(passwordX[pos], passwordY, digit)
	if pos > 0 {
		s.ClearRegion(passwordX[pos-1], passwordY, hal.GlyphSize, hal.GlyphSize)
		s.d.DrawText(passwordX[pos-1], passwordY, "*")
	}
	s.d.Flush()
}

// PasswordErase blanks slot pos.
func (s *Screen) PasswordErase(pos int) {
	if pos < 0 || pos >= len(passwordX) {
		return
	}
	s.ClearRegion(passwordX[pos], passwordY, hal.GlyphSize, hal.GlyphSize)
	s.d.Flush()
}

// ShowPassword displays every digit of password in its slot.
func (s *Screen) ShowPassword(password string) {
	s.d.Clear()
	s.d.DrawText(0, 0, "your password")
	s.drawSlots()
	for i := 0; i < len(password) && i < len(passwordX); i++ {
		s.d.DrawText(passwordX[i], passwordY, password[i:i+1])
	}
	s.d.Flush()
}

// Welcome slides "welcome" and "open" in from the right.
func (s *Screen) Welcome() {
	for x := hal.DisplayWidth; x >= 0; x -= welcomeStep {
		s.d.Clear()
		s.d.DrawText(x, 0, "welcome")
		s.d.DrawText(x+welcomeOpenGap, statusY, "open")
		s.d.Flush()
	}
}

// Countdown shows the seconds left before the door locks.
func (s *Screen) Countdown(remaining int) {
	s.ClearRegion(countdownX, statusY, countdownWidth, hal.GlyphSize)
	s.d.DrawText(countdownX, statusY, strconv.Itoa(remaining))
	s.d.Flush()
}

// Closed shows "close" on the status line.
func (s *Screen) Closed() {
	s.DoorStatus(false)
}

// DoorStatus shows "open" or "close" on the status line.
func (s *Screen) DoorStatus(open bool) {
	s.ClearRegion(statusX, statusY, statusWidth, hal.GlyphSize)
	msg := "close"
	if open {
		msg = "open"
	}
	s.d.DrawText(statusX, statusY, msg)
	s.d.Flush()
}

// Lockout tells the user to wait before the next attempt.
func (s *Screen) Lockout(wait time.Duration) {
	secs := int((wait + time.Second - 1) / time.Second)
	s.Message(
		Text{0, 0, "locked"},
		Text{0, 20, "wait " + strconv.Itoa(secs) + "s"},
	)
}

// OK slides "OK" in from the right and holds it for a second.
func (s *Screen) OK() {
	for x := hal.DisplayWidth; x > okStopX; x -= okStep {
		s.d.Clear()
		s.d.DrawText(x, statusY, "OK")
		s.d.Flush()
	}
	s.clock.Sleep(okHold)
}

// Menu draws items one per row and underlines the selected one.
func (s *Screen) Menu(items []string, selected int) {
	s.d.Clear()
	for i, item := range items {
		s.d.DrawText(0, rowSpacing*i, item)
	}
	if selected >= 0 && selected < len(items) {
		s.underline(menuCursorY(selected), textWidth(items[selected]))
	}
	s.d.Flush()
}

// MoveMenuCursor moves the underline from item from to item to.
func (s *Screen) MoveMenuCursor(items []string, from, to int) {
	if from == to {
		return
	}
	if from >= 0 && from < len(items) {
		s.eraseUnderline(menuCursorY(from), textWidth(items[from]))
	}
	if to >= 0 && to < len(items) {
		s.underline(menuCursorY(to), textWidth(items[to]))
	}
	s.d.Flush()
}

func menuCursorY(i int) int {
	return i*rowSpacing + cursorOffset
}

// UIDPrompt asks for a tag.
func (s *Screen) UIDPrompt() {
	s.Title("uid")
}

// UIDEnrolled shows a freshly stored UID under the prompt.
func (s *Screen) UIDEnrolled(uid string) {
	s.d.DrawText(0, 32, uid)
	s.d.Flush()
	s.clock.Sleep(MessageHold)
}

// UIDExists reports a duplicate enrolment.
func (s *Screen) UIDExists() {
	s.Message(
		Text{0, 0, "The card"},
		Text{16, 10, "already exists"},
	)
	s.clock.Sleep(MessageHold)
}

// NoUIDs reports an empty UID list.
func (s *Screen) NoUIDs() {
	s.Message(
		Text{0, 0, "No UID"},
		Text{0, 20, "Please enter"},
	)
	s.clock.Sleep(MessageHold)
}

// ConfirmDelete asks before removing a UID.
func (s *Screen) ConfirmDelete() {
	s.Message(
		Text{0, 0, "Delete this UID"},
		Text{0, 20, "Are you sure?"},
	)
}

// UIDList draws up to ListRows UIDs around selected and underlines it.
func (s *Screen) UIDList(uids []string, selected int) {
	s.d.Clear()
	s.d.DrawText(0, 0, "Your Uid")

	first := ListWindow(len(uids), selected)
	for row := 0; row < ListRows && first+row < len(uids); row++ {
		s.d.DrawText(0, listRowY(row), uids[first+row])
	}
	if selected >= 0 && selected < len(uids) {
		row := selected - first
		s.underline(listRowY(row)+cursorOffset, textWidth(uids[selected]))
	}
	s.d.Flush()
}

// ListWindow returns the index of the first visible UID so that selected
// is on screen.
func ListWindow(count, selected int) int {
	if count <= ListRows || selected < ListRows {
		return 0
	}
	first := selected - ListRows + 1
	if first > count-ListRows {
		first = count - ListRows
	}
	return first
}

func listRowY(row int) int {
	return rowSpacing + rowSpacing*row
}
