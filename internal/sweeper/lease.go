package sweeper

import (
	"context"
	"time"

	"dropout-srv/pkg/redis"

	"github.com/google/uuid"
)

// DefaultLeaseKey is the redis key that guards the escalation sweep.
const DefaultLeaseKey = "dropout:alert:sweep:lease"

// Lease grants exclusive use of one sweep pass across replicas.
type Lease interface {
	// Acquire reports whether the caller now holds the lease. The returned token releases it.
	Acquire(ctx context.Context) (token string, ok bool, err error)
	Release(ctx context.Context, token string) error
}

type redisLease struct {
	client redis.IRedis
	key    string
	ttl    time.Duration
}

// NewRedisLease returns a lease stored under key that expires after ttl if never released.
func NewRedisLease(client redis.IRedis, key string, ttl time.Duration) Lease {
	if key == "" {
		key = DefaultLeaseKey
	}
	return &redisLease{client: client, key: key, ttl: ttl}
}

func (r *redisLease) Acquire(ctx context.Context) (string, bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, r.key, token, r.ttl)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release is a no-op when the lease already expired or moved to another holder.
func (r *redisLease) Release(ctx context.Context, token string) error {
	_, err := r.client.CompareAndDelete(ctx, r.key, token)
	return err
}

type nopLease struct{}

// NewNopLease always grants the lease. It is used when redis is not configured.
func NewNopLease() Lease {
	return nopLease{}
}

func (nopLease) Acquire(ctx context.Context) (string, bool, error) { return "", true, nil }

func (nopLease) Release(ctx context.Context, token string) error { return nil }
