// File: memory.go
package session

import (
	"context"
	"sync"

	"shapeWordAuth/internal/captcha"
)

// MemoryStore keeps challenges in process memory. Entries never expire.
type MemoryStore struct {
	mu         sync.Mutex
	challenges map[string]captcha.Challenge
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{challenges: make(map[string]captcha.Challenge)}
}

// Put stores a copy of c, replacing any earlier challenge for key.
func (s *MemoryStore) Put(_ context.Context, key string, c *captcha.Challenge) error {
	cp := *c
	cp.Objects = append([]captcha.PlacedObject(nil), c.Objects...)
	s.mu.Lock()
	s.challenges[key] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*captcha.Challenge, bool, error) {
	s.mu.Lock()
	c, ok := s.challenges[key]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	return &c, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.challenges, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored challenges.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}
