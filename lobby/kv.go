package lobby

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned by KV.Get for an absent or expired key.
var ErrNotFound = errors.New("key not found")

// KV is the key-value backend of the lobby store. Update is a
// read-modify-write primitive: fn receives the current value (nil when the
// key is absent) and returns the replacement, which is written back with
// the TTL only if the key was not modified concurrently.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Update(ctx context.Context, key string, ttl time.Duration, fn func(old []byte) ([]byte, error)) error
}

// MemKV is an in-memory KV with TTL, for tests and single-process runs.
type MemKV struct {
	mu   sync.Mutex
	data map[string]memEntry

	// Now is the clock used for expiry; tests may replace it.
	Now func() time.Time
}

type memEntry struct {
	value   []byte
	expires time.Time
}

// NewMemKV creates an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string]memEntry), Now: time.Now}
}

func (m *MemKV) get(key string) ([]byte, bool) {
	e, ok := m.data[key]
	if !ok || m.Now().After(e.expires) {
		delete(m.data, key)
		return nil, false
	}
	return e.value, true
}

func (m *MemKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (m *MemKV) Update(_ context.Context, key string, ttl time.Duration, fn func(old []byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, _ := m.get(key)
	value, err := fn(old)
	if err != nil {
		return err
	}
	m.data[key] = memEntry{value: value, expires: m.Now().Add(ttl)}
	return nil
}

// RedisKV backs the lobby with redis. Update runs under WATCH so concurrent
// joins retry instead of silently overwriting each other.
type RedisKV struct {
	Client *redis.Client

	// MaxRetries bounds the optimistic-concurrency retry loop.
	MaxRetries int
}

// NewRedisKV creates a redis-backed KV for the given address.
func NewRedisKV(addr string) *RedisKV {
	return &RedisKV{
		Client:     redis.NewClient(&redis.Options{Addr: addr}),
		MaxRetries: 5,
	}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return value, err
}

func (r *RedisKV) Update(ctx context.Context, key string, ttl time.Duration, fn func(old []byte) ([]byte, error)) error {
	retries := r.MaxRetries
	if retries <= 0 {
		retries = 5
	}
	txn := func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			old = nil
		} else if err != nil {
			return err
		}
		value, err := fn(old)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		return err
	}
	for i := 0; i < retries; i++ {
		err := r.Client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		// key changed under us, retry
	}
	return errors.New("update retries exhausted")
}
