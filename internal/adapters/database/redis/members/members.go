package members

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage caches "is user X an active member of club Y" lookups. The
// ledger is the source of truth; entries are dropped on every write to
// the pair.
type Storage struct {
	redis *redis.Client
}

func NewStorage(redis *redis.Client) *Storage {
	return &Storage{
		redis: redis,
	}
}

func key(clubID string, userID int64) string {
	return fmt.Sprintf("%s:%d", clubID, userID)
}

// Get returns the cached flag; a redis.Nil error means a cache miss.
func (s *Storage) Get(ctx context.Context, clubID string, userID int64) (bool, error) {
	value, err := s.redis.Get(ctx, key(clubID, userID)).Result()
	if err != nil {
		return false, err
	}
	return value == "1", nil
}

func (s *Storage) Set(ctx context.Context, clubID string, userID int64, active bool, expiration time.Duration) {
	value := "0"
	if active {
		value = "1"
	}
	s.redis.Set(ctx, key(clubID, userID), value, expiration)
}

func (s *Storage) Clear(ctx context.Context, clubID string, userID int64) {
	s.redis.Del(ctx, key(clubID, userID))
}
