package sim

import (
	"sync"

	"github.com/nerrad567/gray-logic-access/internal/keypad"
)

type step struct {
	key keypad.Key
	do  func()
}

// Script is a key source that plays back a fixed sequence of key presses
// and actions. Each Scan returns the next key; an action step runs its
// function and reads as KeyNone. Once the script is exhausted Scan calls
// the done function (typically a context cancel) and returns KeyNone.
type Script struct {
	mu    sync.Mutex
	steps []step
	done  func()
}

// NewScript returns an empty script. done may be nil.
func NewScript(done func()) *Script {
	return &Script{done: done}
}

// Type appends one press per character of keys.
func (s *Script) Type(keys string) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < len(keys); i++ {
		s.steps = append(s.steps, step{key: keypad.Key(keys[i])})
	}
	return s
}

// Idle appends n scans that return KeyNone.
func (s *Script) Idle(n int) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.steps = append(s.steps, step{})
	}
	return s
}

// Then appends an action.
func (s *Script) Then(do func()) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step{do: do})
	return s
}

// Remaining returns the number of steps not yet played.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Scan returns the next scripted key.
func (s *Script) Scan() keypad.Key {
	s.mu.Lock()
	if len(s.steps) == 0 {
		done := s.done
		s.mu.Unlock()
		if done != nil {
			done()
		}
		return keypad.KeyNone
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	s.mu.Unlock()

	if next.do != nil {
		next.do()
		return keypad.KeyNone
	}
	return next.key
}
