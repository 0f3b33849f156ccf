package security

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found or revoked")

// SessionStore tracks live refresh-token sessions keyed by JTI. A refresh
// token whose JTI is absent has been revoked (logout) or rotated away.
type SessionStore interface {
	Save(ctx context.Context, jti string, userID int32, ttl time.Duration) error
	UserID(ctx context.Context, jti string) (int32, error)
	Delete(ctx context.Context, jti string) error
}

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(jti string) string {
	return "session:" + jti
}

func (s *redisSessionStore) Save(ctx context.Context, jti string, userID int32, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(jti), int64(userID), ttl).Err()
}

func (s *redisSessionStore) UserID(ctx context.Context, jti string) (int32, error) {
	val, err := s.client.Get(ctx, sessionKey(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}
	id, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return int32(id), nil
}

func (s *redisSessionStore) Delete(ctx context.Context, jti string) error {
	return s.client.Del(ctx, sessionKey(jti)).Err()
}
