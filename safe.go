package dynarray

import "sync"

// SafeArray is a mutex-protected wrapper around Array for callers that share
// one array between goroutines. Array itself does no locking.
type SafeArray[T any] struct {
	mu sync.Mutex
	a  *Array[T]
}

// NewSafeArray wraps a. A nil a starts from an empty heap-backed array.
func NewSafeArray[T any](a *Array[T]) *SafeArray[T] {
	if a == nil {
		a = New[T]()
	}
	return &SafeArray[T]{a: a}
}

// Len returns the number of elements.
func (s *SafeArray[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Len()
}

// Cap returns the number of allocated slots.
func (s *SafeArray[T]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Cap()
}

// Get returns a copy of the element at index i.
func (s *SafeArray[T]) Get(i int) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Get(i)
}

// Set overwrites the element at index i.
func (s *SafeArray[T]) Set(i int, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Set(i, v)
}

// Push appends v.
func (s *SafeArray[T]) Push(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Push(v)
}

// Reserve ensures at least n slots are allocated.
func (s *SafeArray[T]) Reserve(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reserve(n)
}

// Release releases the underlying block.
func (s *SafeArray[T]) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Do runs fn with the lock held. Pointers obtained through At inside fn must
// not escape it.
func (s *SafeArray[T]) Do(fn func(a *Array[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.a)
}
