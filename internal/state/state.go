package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"storefront/app/internal/domain"

	"github.com/redis/go-redis/v9"
)

// CartStorage keeps the serialized cart under a single key. The whole entry
// list is read and written at once.
type CartStorage interface {
	LoadCart(ctx context.Context) ([]domain.CartEntry, error)
	SaveCart(ctx context.Context, entries []domain.CartEntry) error
}

type redisCartStorage struct {
	redisClient *redis.Client
	key         string
}

func NewRedisCartStorage(redisClient *redis.Client, key string) CartStorage {
	return &redisCartStorage{
		redisClient: redisClient,
		key:         key,
	}
}

func (s *redisCartStorage) LoadCart(ctx context.Context) ([]domain.CartEntry, error) {
	val, err := s.redisClient.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // No cart saved yet
		}
		return nil, fmt.Errorf("failed to get cart %s: %w", s.key, err)
	}

	return decodeCart(val)
}

func (s *redisCartStorage) SaveCart(ctx context.Context, entries []domain.CartEntry) error {
	data, err := encodeCart(entries)
	if err != nil {
		return err
	}

	err = s.redisClient.Set(ctx, s.key, data, 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to set cart %s: %w", s.key, err)
	}
	return nil
}

type memoryCartStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryCartStorage keeps the serialized cart in process memory. It goes
// through the same encoding as the Redis storage.
func NewMemoryCartStorage() CartStorage {
	return &memoryCartStorage{}
}

func (s *memoryCartStorage) LoadCart(_ context.Context) ([]domain.CartEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	return decodeCart(s.data)
}

func (s *memoryCartStorage) SaveCart(_ context.Context, entries []domain.CartEntry) error {
	data, err := encodeCart(entries)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func encodeCart(entries []domain.CartEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

func decodeCart(data []byte) ([]domain.CartEntry, error) {
	var entries []domain.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return entries, nil
}
