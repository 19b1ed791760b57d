package credential

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	s.Load()
	return s
}

func writeRecord(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestStore_LoadMissingRecords(t *testing.T) {
	s := NewStore(t.TempDir())
	cred := s.Load()

	if cred.Password != DefaultPassword() {
		t.Errorf("Password = %q, want default %q", cred.Password, DefaultPassword())
	}
	if len(cred.UIDs) != 0 {
		t.Errorf("UIDs = %v, want empty", cred.UIDs)
	}
}

func TestStore_LoadMalformedPassword(t *testing.T) {
	records := []string{"1,2,3", "a,b,c,d,e,f", "", "1,2,3,4,5,6,7"}
	for _, rec := range records {
		dir := t.TempDir()
		writeRecord(t, dir, PasswordFile, rec)

		cred := NewStore(dir).Load()
		if cred.Password != DefaultPassword() {
			t.Errorf("record %q: Password = %q, want default", rec, cred.Password)
		}
	}
}

func TestStore_LoadUnreadablePassword(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the record makes reading fail.
	if err := os.Mkdir(filepath.Join(dir, PasswordFile), 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cred := NewStore(dir).Load()
	if cred.Password != DefaultPassword() {
		t.Errorf("Password = %q, want default", cred.Password)
	}
}

func TestStore_LoadExistingRecords(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, PasswordFile, "2,4,6,8,0,1")
	writeRecord(t, dir, UIDFile, "111,,222,111")

	cred := NewStore(dir).Load()
	if cred.Password != "246801" {
		t.Errorf("Password = %q, want 246801", cred.Password)
	}
	if !slices.Equal(cred.UIDs, []string{"111", "222"}) {
		t.Errorf("UIDs = %v, want [111 222]", cred.UIDs)
	}
}

func TestStore_PasswordRoundTrip(t *testing.T) {
	for _, p := range []string{"000000", "987654", "123456"} {
		s := newTestStore(t)
		if err := s.SetPassword(p); err != nil {
			t.Fatalf("SetPassword(%q) error = %v", p, err)
		}

		got := NewStore(s.Dir()).Load()
		if got.Password != p {
			t.Errorf("reloaded Password = %q, want %q", got.Password, p)
		}

		data, err := os.ReadFile(filepath.Join(s.Dir(), PasswordFile))
		if err != nil {
			t.Fatalf("reading record: %v", err)
		}
		if want := encodePassword(p); string(data) != want {
			t.Errorf("record = %q, want %q", data, want)
		}
	}
}

func TestStore_SetPasswordInvalid(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetPassword("12ab56"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("SetPassword() error = %v, want ErrInvalidPassword", err)
	}
	if s.Credential().Password != DefaultPassword() {
		t.Error("invalid password changed the in-memory credential")
	}
}

func TestStore_UIDSetRoundTrip(t *testing.T) {
	orders := [][]string{
		{"111", "222", "333"},
		{"333", "111", "222"},
	}
	for _, uids := range orders {
		s := newTestStore(t)
		for _, uid := range uids {
			if err := s.AddUID(uid); err != nil {
				t.Fatalf("AddUID(%q) error = %v", uid, err)
			}
		}

		got := NewStore(s.Dir()).Load().UIDs
		if !slices.Equal(got, uids) {
			t.Errorf("reloaded UIDs = %v, want %v", got, uids)
		}

		sortedGot := slices.Sorted(slices.Values(got))
		if !slices.Equal(sortedGot, []string{"111", "222", "333"}) {
			t.Errorf("reloaded set = %v", sortedGot)
		}
	}
}

func TestStore_AddUIDDuplicate(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddUID("104523187"); err != nil {
		t.Fatalf("AddUID() error = %v", err)
	}
	before, err := os.ReadFile(filepath.Join(s.Dir(), UIDFile))
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}

	if err := s.AddUID("104523187"); !errors.Is(err, ErrUIDExists) {
		t.Fatalf("AddUID() duplicate error = %v, want ErrUIDExists", err)
	}

	after, err := os.ReadFile(filepath.Join(s.Dir(), UIDFile))
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	if string(before) != string(after) {
		t.Errorf("record changed on duplicate: %q -> %q", before, after)
	}
	if n := len(s.Credential().UIDs); n != 1 {
		t.Errorf("len(UIDs) = %d, want 1", n)
	}
}

func TestStore_AddUIDInvalid(t *testing.T) {
	s := newTestStore(t)
	for _, uid := range []string{"", "1,2"} {
		if err := s.AddUID(uid); !errors.Is(err, ErrInvalidUID) {
			t.Errorf("AddUID(%q) error = %v, want ErrInvalidUID", uid, err)
		}
	}
}

func TestStore_DeleteOnlyUID(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddUID("555"); err != nil {
		t.Fatalf("AddUID() error = %v", err)
	}

	removed, err := s.DeleteUID(0)
	if err != nil {
		t.Fatalf("DeleteUID() error = %v", err)
	}
	if removed != "555" {
		t.Errorf("removed = %q, want 555", removed)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), UIDFile))
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("uid record = %q, want empty", data)
	}
	if got := NewStore(s.Dir()).Load().UIDs; len(got) != 0 {
		t.Errorf("reloaded UIDs = %v, want empty", got)
	}
}

func TestStore_DeleteUIDIndex(t *testing.T) {
	s := newTestStore(t)
	for _, uid := range []string{"1", "2", "3"} {
		if err := s.AddUID(uid); err != nil {
			t.Fatalf("AddUID() error = %v", err)
		}
	}

	if _, err := s.DeleteUID(3); !errors.Is(err, ErrUIDIndex) {
		t.Errorf("DeleteUID(3) error = %v, want ErrUIDIndex", err)
	}
	if _, err := s.DeleteUID(-1); !errors.Is(err, ErrUIDIndex) {
		t.Errorf("DeleteUID(-1) error = %v, want ErrUIDIndex", err)
	}

	if _, err := s.DeleteUID(1); err != nil {
		t.Fatalf("DeleteUID(1) error = %v", err)
	}
	if got := s.Credential().UIDs; !slices.Equal(got, []string{"1", "3"}) {
		t.Errorf("UIDs = %v, want [1 3]", got)
	}
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(Credential{Password: "111111", UIDs: []string{"9"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != PasswordFile && e.Name() != UIDFile {
			t.Errorf("unexpected file %q", e.Name())
		}
	}
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "creds")
	s := NewStore(dir)
	if err := s.Save(Credential{Password: "123123"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := NewStore(dir).Load().Password; got != "123123" {
		t.Errorf("Password = %q, want 123123", got)
	}
}

func TestStore_CredentialIsSnapshot(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddUID("1"); err != nil {
		t.Fatalf("AddUID() error = %v", err)
	}
	c := s.Credential()
	c.UIDs[0] = "changed"
	if s.Credential().UIDs[0] != "1" {
		t.Error("Credential() returned a shared slice")
	}
}
