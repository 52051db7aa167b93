package auth

import (
	"context"
	"errors"
	"sync"
)

var ErrNoToken = errors.New("no access token stored")

// Tokens is the bearer pair issued by the remote API's token endpoint.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenStore holds the credentials attached to every remote API call.
// Refresh and expiry handling belong to whoever calls Set.
type TokenStore interface {
	Get(ctx context.Context) (Tokens, error)
	Set(ctx context.Context, t Tokens) error
	Clear(ctx context.Context) error
}

type MemoryStore struct {
	mu     sync.RWMutex
	tokens Tokens
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Get(ctx context.Context) (Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens.Access == "" {
		return Tokens{}, ErrNoToken
	}
	return s.tokens, nil
}

func (s *MemoryStore) Set(ctx context.Context, t Tokens) error {
	if t.Access == "" {
		return errors.New("access token is required")
	}
	s.mu.Lock()
	s.tokens = t
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.tokens = Tokens{}
	s.mu.Unlock()
	return nil
}
