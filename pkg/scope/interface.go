package scope

import (
	"errors"
	"time"
)

// Manager defines the interface for JWT/scope token management.
// Implementations are safe for concurrent use.
type Manager interface {
	Verify(token string) (Payload, error)
	CreateToken(payload Payload) (string, error)
}

// New creates a new scope Manager with the provided secret key.
// Panics if secretKey is empty; for safe init use NewWithTTL and check error.
func New(secretKey string) Manager {
	m, err := NewWithTTL(secretKey, TokenExpirationDuration)
	if err != nil {
		panic("scope: " + err.Error())
	}
	return m
}

// NewWithTTL creates a Manager that issues tokens valid for ttl.
func NewWithTTL(secretKey string, ttl time.Duration) (Manager, error) {
	if secretKey == "" {
		return nil, errors.New("secret key cannot be empty")
	}
	if ttl <= 0 {
		ttl = TokenExpirationDuration
	}
	return &implManager{secretKey: secretKey, ttl: int64(ttl / time.Second)}, nil
}
