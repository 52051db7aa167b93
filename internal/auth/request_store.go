package auth

import (
	"context"
	"errors"
)

var ErrReadOnly = errors.New("request tokens are read-only")

type ctxKey struct{}

// WithTokens attaches the caller's own credentials to ctx.
func WithTokens(ctx context.Context, t Tokens) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

func FromContext(ctx context.Context) (Tokens, bool) {
	t, ok := ctx.Value(ctxKey{}).(Tokens)
	return t, ok && t.Access != ""
}

// RequestStore serves the tokens carried by the request context. Fallback, when
// set, answers for contexts without one (operator tools); the gateway runs with
// no fallback so a request can only ever use its caller's token.
type RequestStore struct {
	Fallback TokenStore
}

func NewRequestStore(fallback TokenStore) *RequestStore {
	return &RequestStore{Fallback: fallback}
}

func (s *RequestStore) Get(ctx context.Context) (Tokens, error) {
	if t, ok := FromContext(ctx); ok {
		return t, nil
	}
	if s.Fallback != nil {
		return s.Fallback.Get(ctx)
	}
	return Tokens{}, ErrNoToken
}

func (s *RequestStore) Set(ctx context.Context, t Tokens) error {
	if s.Fallback == nil {
		return ErrReadOnly
	}
	return s.Fallback.Set(ctx, t)
}

func (s *RequestStore) Clear(ctx context.Context) error {
	if s.Fallback == nil {
		return ErrReadOnly
	}
	return s.Fallback.Clear(ctx)
}
