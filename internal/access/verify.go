package access

import (
	"crypto/subtle"

	"github.com/nerrad567/gray-logic-access/internal/credential"
)

// Verify reports whether password or uid opens the door for cred.
//
// An empty argument means "not presented" and never matches, so the empty
// string cannot unlock even if it were somehow stored.
func Verify(password, uid string, cred credential.Credential) bool {
	if password != "" && cred.Password != "" &&
		subtle.ConstantTimeCompare([]byte(password), []byte(cred.Password)) == 1 {
		return true
	}
	if uid != "" && cred.HasUID(uid) {
		return true
	}
	return false
}
