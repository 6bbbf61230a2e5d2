// Package memstore keeps slots in process memory. Nothing survives a restart.
package memstore

import "sync"

type Store struct {
	mu    sync.Mutex
	slots map[string]string
}

func New() *Store {
	return &Store{slots: make(map[string]string)}
}

func (s *Store) Read(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *Store) Write(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}

func (s *Store) Close() error { return nil }
