package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshKeyPrefix = "refresh:"
	refreshTTL       = 14 * 24 * time.Hour
)

// ErrRefreshNotFound means the refresh token expired, was used or never existed.
var ErrRefreshNotFound = errors.New("refresh token not found")

// RefreshStore keeps opaque refresh tokens in Redis, mapped to a member id.
type RefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRefreshStore(rdb *redis.Client, ttl time.Duration) *RefreshStore {
	if ttl <= 0 {
		ttl = refreshTTL
	}
	return &RefreshStore{rdb: rdb, ttl: ttl}
}

// Create stores a new refresh token for memberID and returns it.
func (s *RefreshStore) Create(ctx context.Context, memberID int64) (string, error) {
	id, err := newTokenID()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, refreshKeyPrefix+id, memberID, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Consume deletes the token and returns the member it belonged to. A token
// can be consumed once.
func (s *RefreshStore) Consume(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrRefreshNotFound
	}
	v, err := s.rdb.GetDel(ctx, refreshKeyPrefix+token).Result()
	if err == redis.Nil {
		return 0, ErrRefreshNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("refresh token value: %w", err)
	}
	return id, nil
}

// Delete removes a refresh token. Unknown tokens are ignored.
func (s *RefreshStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}

func newTokenID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
