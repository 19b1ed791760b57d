package credential

import "errors"

// Domain errors for the credential package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, credential.ErrUIDExists) {
//	    // show "already exists"
//	}
var (
	// ErrUIDExists is returned when enrolling a UID that is already stored.
	ErrUIDExists = errors.New("credential: uid already exists")

	// ErrUIDIndex is returned when deleting a UID by an out-of-range index.
	ErrUIDIndex = errors.New("credential: uid index out of range")

	// ErrInvalidUID is returned for an empty UID or one containing the record separator.
	ErrInvalidUID = errors.New("credential: invalid uid")

	// ErrInvalidPassword is returned for a password that is not exactly six digits.
	ErrInvalidPassword = errors.New("credential: password must be six digits")
)
