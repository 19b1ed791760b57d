package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/events"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/database"
	_ "github.com/nerrad567/gray-logic-access/migrations" // registers the schema
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{
		Path:        filepath.Join(t.TempDir(), "audit.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewSQLiteRepository(db.DB)
}

func TestCreateAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, e := range []Entry{
		{Kind: events.KindAccessDenied, Method: events.MethodPassword, Door: "front"},
		{Kind: events.KindAccessGranted, Method: events.MethodPassword, Door: "front"},
		{Kind: events.KindDoorState, Door: "front", Detail: "open"},
	} {
		e.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := repo.Create(ctx, &e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if e.ID == "" {
			t.Error("Create() left ID empty")
		}
	}

	res, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if res.Total != 3 || len(res.Entries) != 3 {
		t.Fatalf("Total = %d, len = %d; want 3, 3", res.Total, len(res.Entries))
	}
	if res.Entries[0].Kind != events.KindDoorState || res.Entries[0].Detail != "open" {
		t.Errorf("newest = %+v, want door_state open", res.Entries[0])
	}
	if res.Entries[0].Method != events.MethodNone {
		t.Errorf("Method = %q, want empty", res.Entries[0].Method)
	}
	if !res.Entries[2].CreatedAt.Equal(base) {
		t.Errorf("oldest CreatedAt = %v, want %v", res.Entries[2].CreatedAt, base)
	}
	if res.Limit != defaultLimit {
		t.Errorf("Limit = %d, want %d", res.Limit, defaultLimit)
	}
}

func TestListFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, e := range []Entry{
		{Kind: events.KindAccessGranted, Method: events.MethodRFID, Door: "front"},
		{Kind: events.KindAccessGranted, Method: events.MethodPassword, Door: "back"},
		{Kind: events.KindLockout, Method: events.MethodPassword, Door: "front"},
	} {
		if err := repo.Create(ctx, &e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"by kind", Filter{Kind: events.KindAccessGranted}, 2},
		{"by door", Filter{Door: "front"}, 2},
		{"by kind and door", Filter{Kind: events.KindAccessGranted, Door: "back"}, 1},
		{"no match", Filter{Kind: events.KindCredentialChanged}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if res.Total != tt.want || len(res.Entries) != tt.want {
				t.Errorf("Total = %d, len = %d; want %d", res.Total, len(res.Entries), tt.want)
			}
		})
	}
}

func TestListClampsPaging(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, &Entry{Kind: events.KindDoorState, Door: "front"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	res, err := repo.List(ctx, Filter{Limit: 1000, Offset: -3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if res.Limit != maxLimit || res.Offset != 0 {
		t.Errorf("Limit = %d, Offset = %d; want %d, 0", res.Limit, res.Offset, maxLimit)
	}

	res, err = repo.List(ctx, Filter{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if res.Total != 5 || len(res.Entries) != 1 {
		t.Errorf("Total = %d, len = %d; want 5, 1", res.Total, len(res.Entries))
	}
}

func TestRecorder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

	rec := NewRecorder(repo)
	if err := rec.Record(ctx, events.Event{
		Kind:   events.KindAccessGranted,
		Method: events.MethodRFID,
		Door:   "front",
		UID:    "104523187",
		At:     at,
	}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	res, err := repo.List(ctx, Filter{Kind: events.KindAccessGranted})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(res.Entries))
	}
	got := res.Entries[0]
	if got.Method != events.MethodRFID || got.UID != "104523187" || !got.CreatedAt.Equal(at) {
		t.Errorf("entry = %+v", got)
	}
}

func TestRecorder_MissingTable(t *testing.T) {
	db, err := database.Open(context.Background(), database.Config{Path: filepath.Join(t.TempDir(), "bare.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	rec := NewRecorder(NewSQLiteRepository(db.DB))
	if err := rec.Record(context.Background(), events.Event{Kind: events.KindDoorState, Door: "front"}); err == nil {
		t.Error("Record() without schema succeeded")
	}
}
