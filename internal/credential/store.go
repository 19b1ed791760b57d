package credential

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Record file names inside the storage directory.
const (
	PasswordFile = "password.txt"
	UIDFile      = "uid.txt"
)

const (
	dirPermissions  = 0750
	filePermissions = 0600
)

// Logger defines the logging interface used by the Store.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Store owns the credential records and the in-memory copy loaded from them.
//
// Mutations are read-modify-write cycles over the whole credential and are
// serialised by a mutex.
type Store struct {
	dir    string
	mu     sync.Mutex
	cred   Credential
	logger Logger
}

// NewStore returns a Store for records in dir. Call Load before use.
func NewStore(dir string) *Store {
	return &Store{
		dir:    dir,
		cred:   Credential{Password: DefaultPassword(), UIDs: []string{}},
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for storage anomalies.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads both records, replaces the in-memory credential and returns a copy.
//
// Load never fails: a missing or malformed password record yields
// DefaultPassword and a missing UID record yields no UIDs. Anomalies are
// logged, not returned.
func (s *Store) Load() Credential {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred := Credential{Password: DefaultPassword(), UIDs: []string{}}

	record, err := s.readRecord(PasswordFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug("password record missing, using default")
	case err != nil:
		s.logger.Warn("password record unreadable, using default", "error", err)
	default:
		if p, ok := decodePassword(record); ok {
			cred.Password = p
		} else {
			s.logger.Warn("password record malformed, using default")
		}
	}

	record, err = s.readRecord(UIDFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug("uid record missing")
	case err != nil:
		s.logger.Warn("uid record unreadable, starting with no uids", "error", err)
	default:
		cred.UIDs = decodeUIDs(record)
	}

	s.cred = cred
	return cred.Clone()
}

// Credential returns a copy of the in-memory credential.
func (s *Store) Credential() Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred.Clone()
}

// Save validates c, writes both records and makes c the in-memory credential.
func (s *Store) Save(c Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(c)
}

// SetPassword replaces the password and persists.
func (s *Store) SetPassword(p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cred.Clone()
	next.Password = p
	return s.saveLocked(next)
}

// AddUID appends uid and persists. An enrolled uid yields ErrUIDExists and
// leaves the records untouched.
func (s *Store) AddUID(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidUID(uid) {
		return fmt.Errorf("%w: %q", ErrInvalidUID, uid)
	}
	if s.cred.HasUID(uid) {
		return ErrUIDExists
	}

	next := s.cred.Clone()
	next.UIDs = append(next.UIDs, uid)
	return s.saveLocked(next)
}

// DeleteUID removes the UID at index, rewrites the UID record and returns
// the removed UID.
func (s *Store) DeleteUID(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.cred.UIDs) {
		return "", fmt.Errorf("%w: %d of %d", ErrUIDIndex, index, len(s.cred.UIDs))
	}

	removed := s.cred.UIDs[index]
	uids := slices.Delete(slices.Clone(s.cred.UIDs), index, index+1)

	if err := s.writeRecord(UIDFile, encodeUIDs(uids)); err != nil {
		return "", err
	}
	s.cred.UIDs = uids
	return removed, nil
}

func (s *Store) saveLocked(c Credential) error {
	if !ValidPassword(c.Password) {
		return ErrInvalidPassword
	}
	for i, uid := range c.UIDs {
		if !ValidUID(uid) {
			return fmt.Errorf("%w: %q", ErrInvalidUID, uid)
		}
		if slices.Contains(c.UIDs[:i], uid) {
			return fmt.Errorf("%w: %q", ErrUIDExists, uid)
		}
	}

	if err := s.writeRecord(PasswordFile, encodePassword(c.Password)); err != nil {
		return err
	}
	if err := s.writeRecord(UIDFile, encodeUIDs(c.UIDs)); err != nil {
		return err
	}

	s.cred = c.Clone()
	return nil
}

// readRecord returns the contents of a record file.
func (s *Store) readRecord(name string) (string, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// writeRecord replaces a record file through a temp file and rename.
func (s *Store) writeRecord(name, content string) (err error) {
	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return fmt.Errorf("creating storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp record for %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()           //nolint:errcheck // Best effort cleanup on error path
			os.Remove(tmp.Name()) //nolint:errcheck // Best effort cleanup on error path
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", name, err)
	}
	if err = tmp.Chmod(filePermissions); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}
