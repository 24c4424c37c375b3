// Package paging keeps overlapping page loads from surfacing the same item twice.
//
// Remote listings shift while a user scrolls: an item inserted upstream between
// two fetches pushes earlier rows onto the next page. A Session remembers every
// key it has yielded until Reset, so a key reaches the consumer at most once per
// pagination session regardless of how many pages repeat it.
package paging

import (
	"iter"
	"sync"
)

type Session[K comparable, T any] struct {
	key func(T) K

	mu   sync.Mutex
	seen map[K]struct{}
}

func NewSession[K comparable, T any](key func(T) K) *Session[K, T] {
	return &Session[K, T]{
		key:  key,
		seen: make(map[K]struct{}),
	}
}

// Dedup wraps seq, dropping items whose key this session already yielded.
// Errors are passed through untouched. The returned sequence is as lazy as seq.
func (s *Session[K, T]) Dedup(seq iter.Seq2[T, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for item, err := range seq {
			if err != nil {
				if !yield(item, err) {
					return
				}
				continue
			}
			if !s.claim(s.key(item)) {
				continue
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Values is Dedup for sequences that cannot fail.
func (s *Session[K, T]) Values(seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range seq {
			if !s.claim(s.key(item)) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Reset starts a new session, e.g. after the filter or sort changed.
func (s *Session[K, T]) Reset() {
	s.mu.Lock()
	s.seen = make(map[K]struct{})
	s.mu.Unlock()
}

func (s *Session[K, T]) Seen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

func (s *Session[K, T]) claim(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	return true
}
