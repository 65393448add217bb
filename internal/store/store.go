// Package store holds the in-memory record stores backing each admin resource.
package store

import "sync"

// Record is implemented by value types kept in a Store. WithID and Clone return
// modified copies so the store never shares mutable state with callers.
type Record[T any] interface {
	RecordID() int
	WithID(id int) T
	Clone() T
}

// Store is an ordered in-memory collection of records. Newly created records
// are placed first. Ids come from a monotonic counter so a deleted id is
// never handed out again, and an empty store starts at 1.
type Store[T Record[T]] struct {
	mu     sync.RWMutex
	items  []T
	lastID int
}

// New returns an empty store.
func New[T Record[T]]() *Store[T] {
	return &Store[T]{}
}

// Seed appends fixture records in order, keeping their ids. The id counter
// moves past the largest seeded id.
func (s *Store[T]) Seed(records ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		s.items = append(s.items, rec.Clone())
		if rec.RecordID() > s.lastID {
			s.lastID = rec.RecordID()
		}
	}
}

// List returns copies of the records accepted by pred in store order. A nil
// predicate accepts everything.
func (s *Store[T]) List(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.items))
	for _, rec := range s.items {
		if pred == nil || pred(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	var zero T
	return zero, false
}

// Create assigns the next id to rec and prepends it.
func (s *Store[T]) Create(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	rec = rec.WithID(s.lastID).Clone()
	s.items = append([]T{rec}, s.items...)
	return rec.Clone()
}

// Update replaces the record with the given id by fn(current). The id of the
// result is forced back to id. Nothing happens when no record matches.
func (s *Store[T]) Update(id int, fn func(T) T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	next := fn(s.items[i].Clone()).WithID(id).Clone()
	s.items[i] = next
	return next.Clone(), true
}

// Delete removes the first record with the given id and reports whether one
// was removed.
func (s *Store[T]) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Count returns how many records pred accepts.
func (s *Store[T]) Count(pred func(T) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, rec := range s.items {
		if pred == nil || pred(rec) {
			n++
		}
	}
	return n
}

func (s *Store[T]) indexOf(id int) int {
	for i, rec := range s.items {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}
