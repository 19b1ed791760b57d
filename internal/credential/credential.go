package credential

import (
	"slices"
	"strconv"
	"strings"
)

// PasswordLength is the fixed number of digits in a door password.
const PasswordLength = 6

// Credential is the full set of secrets that open the door.
type Credential struct {
	// Password is exactly PasswordLength digit characters.
	Password string

	// UIDs are enrolled tag identifiers in enrolment order, unique and non-empty.
	UIDs []string
}

// DefaultPassword is the code used when no valid password record exists.
//
// Any storage anomaly silently restores this code, so a corrupted or
// deleted password.txt re-opens the door to the factory code. Replace this
// function to change that behaviour.
func DefaultPassword() string {
	return "123456"
}

// ValidPassword reports whether p is exactly six ASCII digits.
func ValidPassword(p string) bool {
	if len(p) != PasswordLength {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	return true
}

// ValidUID reports whether uid can be stored in the UID record.
func ValidUID(uid string) bool {
	return uid != "" && !strings.ContainsAny(uid, ",\r\n")
}

// HasUID reports whether uid is enrolled.
func (c Credential) HasUID(uid string) bool {
	return slices.Contains(c.UIDs, uid)
}

// Clone returns a deep copy of c.
func (c Credential) Clone() Credential {
	return Credential{
		Password: c.Password,
		UIDs:     slices.Clone(c.UIDs),
	}
}

// encodePassword renders p as comma-joined digits.
func encodePassword(p string) string {
	return strings.Join(strings.Split(p, ""), ",")
}

// decodePassword parses a password record. ok is false for anything other
// than six single-digit fields.
func decodePassword(record string) (string, bool) {
	fields := strings.Split(strings.TrimSpace(record), ",")
	if len(fields) != PasswordLength {
		return "", false
	}
	p := strings.Join(fields, "")
	if !ValidPassword(p) {
		return "", false
	}
	return p, true
}

// encodeUIDs renders the UID record.
func encodeUIDs(uids []string) string {
	return strings.Join(uids, ",")
}

// decodeUIDs parses a UID record, dropping empty fields and repeats.
func decodeUIDs(record string) []string {
	record = strings.TrimSpace(record)
	if record == "" {
		return []string{}
	}
	uids := make([]string, 0, strings.Count(record, ",")+1)
	for _, f := range strings.Split(record, ",") {
		f = strings.TrimSpace(f)
		if f == "" || slices.Contains(uids, f) {
			continue
		}
		uids = append(uids, f)
	}
	return uids
}

// UIDFromBytes renders a tag serial as the decimal concatenation of its
// bytes, e.g. {104, 52, 31, 87} -> "104523187".
func UIDFromBytes(b []byte) string {
	var sb strings.Builder
	for _, v := range b {
		sb.WriteString(strconv.Itoa(int(v)))
	}
	return sb.String()
}
