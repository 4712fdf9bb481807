package spies

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// JournalSpy captures recorded domain events. With FailWith set, Record returns that error
// without capturing anything.
type JournalSpy struct {
	events   core.DomainEvents
	calls    int
	failWith error
	mu       sync.Mutex
}

func NewJournalSpy() *JournalSpy {
	return &JournalSpy{}
}

// FailWith makes every following Record call fail with err.
func (s *JournalSpy) FailWith(err error) *JournalSpy {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failWith = err

	return s
}

func (s *JournalSpy) Record(_ context.Context, events ...core.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	if s.failWith != nil {
		return s.failWith
	}

	s.events = append(s.events, events...)

	return nil
}

// Events returns a copy of all captured events in record order.
func (s *JournalSpy) Events() core.DomainEvents {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make(core.DomainEvents, len(s.events))
	copy(events, s.events)

	return events
}

// EventTypes returns the event types of all captured events in record order.
func (s *JournalSpy) EventTypes() []string {
	events := s.Events()

	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.IsEventType())
	}

	return types
}

// Calls returns how often Record was called, including failed calls.
func (s *JournalSpy) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}
