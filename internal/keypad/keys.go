package keypad

// Key is one keypad event. The zero value is KeyNone.
type Key byte

// KeyNone means no key was pressed, or the press was held long enough to
// count as a cancel.
const KeyNone Key = 0

// Named keys. Digits are their own characters.
const (
	KeyA    Key = 'A'
	KeyB    Key = 'B'
	KeyC    Key = 'C'
	KeyD    Key = 'D'
	KeyStar Key = '*'
	KeyHash Key = '#'
)

// Matrix dimensions.
const (
	Rows    = 4
	Columns = 4
)

// Roles the controller gives the letter keys.
const (
	KeyUp      = KeyA
	KeyConfirm = KeyB
	KeyDown    = KeyC
	KeyBack    = KeyD
	KeyToggle  = KeyHash
)

// layout maps matrix positions to keys.
var layout = [Rows][Columns]Key{
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
	{'*', '0', '#', 'D'},
}

// At returns the key wired at row, col.
func At(row, col int) Key {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return KeyNone
	}
	return layout[row][col]
}

// Position returns the matrix position of k.
func Position(k Key) (row, col int, ok bool) {
	for r := range layout {
		for c := range layout[r] {
			if layout[r][c] == k {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// IsDigit reports whether k is one of 0-9.
func (k Key) IsDigit() bool {
	return k >= '0' && k <= '9'
}

// String returns the key's character, or "none".
func (k Key) String() string {
	if k == KeyNone {
		return "none"
	}
	return string(rune(k))
}
