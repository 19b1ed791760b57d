package audit

import (
	"context"

	"github.com/nerrad567/gray-logic-access/internal/events"
)

// Recorder stores events through a Repository.
type Recorder struct {
	repo Repository
}

// NewRecorder creates a Recorder.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Record implements events.Recorder.
func (r *Recorder) Record(ctx context.Context, e events.Event) error {
	return r.repo.Create(ctx, &Entry{
		Kind:      e.Kind,
		Method:    e.Method,
		Door:      e.Door,
		Detail:    e.Detail,
		UID:       e.UID,
		CreatedAt: e.At,
	})
}
