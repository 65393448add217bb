package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-admin-api/internal/models"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
)

const sessionKeyPrefix = "academy:session:"

// MemorySessionRepository keeps sessions in process memory. A zero TTL keeps
// a session until it is deleted.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

type memorySession struct {
	session   models.Session
	expiresAt time.Time
}

// NewMemorySessionRepository constructs an in-memory session repository.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Save stores the session flag.
func (r *MemorySessionRepository) Save(_ context.Context, session models.Session) error {
	entry := memorySession{session: session}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = entry
	return nil
}

// Find returns the session or ErrSessionMissing.
func (r *MemorySessionRepository) Find(_ context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, appErrors.ErrSessionMissing
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, appErrors.ErrSessionMissing
	}
	session := entry.session
	return &session, nil
}

// Delete clears the session flag and reports whether one existed.
func (r *MemorySessionRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok, nil
}

// Snapshot returns the live sessions.
func (r *MemorySessionRepository) Snapshot() []models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	out := make([]models.Session, 0, len(r.sessions))
	for _, entry := range r.sessions {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			continue
		}
		out = append(out, entry.session)
	}
	return out
}

// Ping always succeeds.
func (r *MemorySessionRepository) Ping(context.Context) error {
	return nil
}

// RedisSessionRepository shares session flags between API instances.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionRepository constructs a Redis backed session repository.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionRepository{client: client, ttl: ttl, logger: logger}
}

// Save stores the session flag. A zero TTL stores it without expiry.
func (r *RedisSessionRepository) Save(ctx context.Context, session models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, sessionKey(session.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

// Find returns the session or ErrSessionMissing.
func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrSessionMissing
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		r.logger.Warn("discarding unreadable session", zap.String("session_id", id), zap.Error(err))
		return nil, appErrors.ErrSessionMissing
	}
	return &session, nil
}

// Delete clears the session flag and reports whether one existed.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return removed > 0, nil
}

// Ping checks the Redis connection.
func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (r *RedisSessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}
