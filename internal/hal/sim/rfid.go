package sim

import (
	"sync"

	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// RFID simulates a card reader. Each presented tag answers one
// request/anticollision exchange.
type RFID struct {
	mu    sync.Mutex
	queue [][]byte
	reads int

	// Fault, when set, is returned by Request instead of a card.
	Fault bool
}

// NewRFID returns a reader with an empty field.
func NewRFID() *RFID {
	return &RFID{}
}

// Present queues a tag with the given serial bytes.
func (r *RFID) Present(uid []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, append([]byte(nil), uid...))
}

// Reads returns how many tags have been selected.
func (r *RFID) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

// Pending returns the number of tags not yet read.
func (r *RFID) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Request implements hal.RFID.
func (r *RFID) Request() (hal.Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fault {
		return hal.StatusError, false
	}
	if len(r.queue) == 0 {
		return hal.StatusNoTag, false
	}
	return hal.StatusOK, true
}

// Anticollision implements hal.RFID.
func (r *RFID) Anticollision() (hal.Status, []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return hal.StatusNoTag, nil
	}
	uid := r.queue[0]
	r.queue = r.queue[1:]
	r.reads++
	return hal.StatusOK, uid
}
