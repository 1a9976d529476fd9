// Package store holds submitted responses in process memory.
//
// Responses are grouped by an arbitrary response ID and keyed by submitter
// within each ID. A submitter has at most one response per ID; a later
// submission replaces the earlier one. Nothing is persisted.
package store

import (
	"sync"
	"time"
)

// Response is a single submitter's answer for a response ID.
type Response struct {
	SubmitterID string
	Author      string
	Text        string
	SubmittedAt time.Time
}

// Record is a snapshot of every response stored under one response ID,
// ordered by each submitter's first submission.
type Record []Response

// Entry pairs a response ID with its record.
type Entry struct {
	ID     string
	Record Record
}

// EventKind identifies a store mutation.
type EventKind string

const (
	// EventSubmitted is emitted after a response is inserted or replaced.
	EventSubmitted EventKind = "submitted"
	// EventCleared is emitted after a response ID is removed.
	EventCleared EventKind = "cleared"
)

// Event describes a completed mutation.
type Event struct {
	Kind        EventKind
	ID          string
	SubmitterID string // empty for EventCleared
	// IDs is the number of response IDs in the store after the mutation.
	IDs int
}

// record is the mutable per-ID state. order tracks first-submission order
// of submitters so snapshots render consistently.
type record struct {
	order     []string
	responses map[string]Response
}

// Store is an in-memory response registry safe for concurrent use.
type Store struct {
	// +checklocks:mu
	records map[string]*record
	// +checklocks:mu
	order []string

	// +checklocks:mu
	handlers []func(Event)

	now func() time.Time
	mu  sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		records: make(map[string]*record),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnEvent registers a handler called after every mutation.
// Handlers run synchronously on the mutating goroutine, outside the lock.
func (s *Store) OnEvent(handler func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Submit stores text as the submitter's response under id, creating the
// id if needed and replacing any earlier response from the same submitter.
func (s *Store) Submit(id, submitterID, author, text string) Response {
	resp := Response{
		SubmitterID: submitterID,
		Author:      author,
		Text:        text,
		SubmittedAt: s.now(),
	}

	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		rec = &record{responses: make(map[string]Response)}
		s.records[id] = rec
		s.order = append(s.order, id)
	}
	if _, exists := rec.responses[submitterID]; !exists {
		rec.order = append(rec.order, submitterID)
	}
	rec.responses[submitterID] = resp
	ev := Event{Kind: EventSubmitted, ID: id, SubmitterID: submitterID, IDs: len(s.records)}
	handlers := s.handlersLocked()
	s.mu.Unlock()

	emit(handlers, ev)
	return resp
}

// View returns a snapshot of the responses stored under id.
// The boolean is false if id is unknown.
func (s *Store) View(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return rec.snapshot(), true
}

// List returns every known response ID and its responses, in the order
// each ID was first submitted. An empty store yields an empty slice.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, Entry{ID: id, Record: s.records[id].snapshot()})
	}
	return entries
}

// Clear removes every response stored under id.
// It reports whether id existed.
func (s *Store) Clear(id string) bool {
	s.mu.Lock()
	if _, ok := s.records[id]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.records, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	ev := Event{Kind: EventCleared, ID: id, IDs: len(s.records)}
	handlers := s.handlersLocked()
	s.mu.Unlock()

	emit(handlers, ev)
	return true
}

// Len returns the number of known response IDs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// +checklocks:s.mu
func (s *Store) handlersLocked() []func(Event) {
	if len(s.handlers) == 0 {
		return nil
	}
	handlers := make([]func(Event), len(s.handlers))
	copy(handlers, s.handlers)
	return handlers
}

func emit(handlers []func(Event), ev Event) {
	for _, h := range handlers {
		h(ev)
	}
}

func (r *record) snapshot() Record {
	out := make(Record, 0, len(r.order))
	for _, submitterID := range r.order {
		out = append(out, r.responses[submitterID])
	}
	return out
}
