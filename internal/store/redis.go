package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("summary not found")

// Store keeps the latest rendered summary per Steam user in Redis.
type Store struct {
	client *redis.Client
}

func New(addr string, password string, db int) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Store{
		client: client,
	}
}

// Close the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

func summaryKey(steamId string) string {
	return fmt.Sprintf("steam:summary:%s", steamId)
}

// PublishSummary replaces the stored summary document for steamId.
func (s *Store) PublishSummary(ctx context.Context, steamId string, data []byte) error {
	if err := s.client.Set(ctx, summaryKey(steamId), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to publish summary for %s: %w", steamId, err)
	}
	return nil
}

// Summary returns the stored summary document for steamId.
func (s *Store) Summary(ctx context.Context, steamId string) ([]byte, error) {
	data, err := s.client.Get(ctx, summaryKey(steamId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read summary for %s: %w", steamId, err)
	}
	return data, nil
}
