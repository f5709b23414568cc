package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cleared-dev/siklus/internal/model"
)

const scanBatch = 100

// RedisStore keeps one JSON record per user under <prefix>user:<name>.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

// DialRedis connects to addr and checks the connection.
func DialRedis(ctx context.Context, addr, prefix string, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis %s: %w", addr, err)
	}
	return NewRedisStore(client, prefix, logger), nil
}

func (s *RedisStore) key(username string) string {
	return s.prefix + "user:" + username
}

func (s *RedisStore) Load(ctx context.Context) (map[string]model.User, error) {
	users := make(map[string]model.User)
	keyPrefix := s.key("")

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		name := strings.TrimPrefix(iter.Val(), keyPrefix)
		u, err := s.Get(ctx, name)
		if errors.Is(err, ErrUserNotFound) {
			// Deleted between SCAN and GET.
			continue
		}
		if err != nil {
			return nil, err
		}
		users[name] = u
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning redis keys: %w", err)
	}
	return users, nil
}

// Save writes every user in one MULTI/EXEC transaction.
func (s *RedisStore) Save(ctx context.Context, users map[string]model.User) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, u := range users {
			u.Username = name
			data, err := s.encode(u)
			if err != nil {
				return err
			}
			pipe.Set(ctx, s.key(name), data, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving users to redis: %w", err)
	}
	s.logger.Debug("store saved", zap.Int("users", len(users)))
	return nil
}

func (s *RedisStore) Get(ctx context.Context, username string) (model.User, error) {
	data, err := s.client.Get(ctx, s.key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("reading user %q from redis: %w", username, err)
	}

	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.User{}, fmt.Errorf("parsing user %q: %w", username, err)
	}
	return fromRecord(username, rec)
}

func (s *RedisStore) Put(ctx context.Context, u model.User) error {
	data, err := s.encode(u)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(u.Username), data, 0).Err(); err != nil {
		return fmt.Errorf("writing user %q to redis: %w", u.Username, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) encode(u model.User) ([]byte, error) {
	if err := ValidateUsername(u.Username); err != nil {
		return nil, err
	}
	data, err := json.Marshal(toRecord(u))
	if err != nil {
		return nil, fmt.Errorf("marshaling user %q: %w", u.Username, err)
	}
	return data, nil
}
