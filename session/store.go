// Package session keeps the server-side login state behind a signed
// browser cookie.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned by Get for unknown or expired session IDs.
var ErrNotFound = errors.New("session: not found")

// Store maps session IDs to user IDs for the configured lifetime.
type Store interface {
	Create(ctx context.Context, userID uint, ttl time.Duration) (string, error)
	Get(ctx context.Context, sid string) (uint, error)
	Destroy(ctx context.Context, sid string) error
}

func newSID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RedisStore keeps sessions in Redis so they survive process restarts
// and expire server-side.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(sid string) string { return "session:" + sid }

func (s *RedisStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	sid, err := newSID()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, key(sid), uint64(userID), ttl).Err(); err != nil {
		return "", fmt.Errorf("session: store %s: %w", sid, err)
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, sid string) (uint, error) {
	val, err := s.rdb.Get(ctx, key(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("session: load %s: %w", sid, err)
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session: corrupt entry %s: %w", sid, err)
	}
	return uint(id), nil
}

func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, key(sid)).Err(); err != nil {
		return fmt.Errorf("session: destroy %s: %w", sid, err)
	}
	return nil
}

// MemoryStore is a process-local Store used in tests and single-node
// setups without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

func (s *MemoryStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	sid, err := newSID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	return sid, nil
}

func (s *MemoryStore) Get(ctx context.Context, sid string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return 0, ErrNotFound
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sid)
		return 0, ErrNotFound
	}
	return sess.userID, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
