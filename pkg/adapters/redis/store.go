package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/functree/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "functree:fixture:"

// farFuture is the index score of fixtures that never expire (2100-01-01, in ms).
const farFuture = 4102444800000

// ErrInvalidTTL is returned for a TTL Redis cannot honor: negative, or
// positive but below the millisecond resolution of PX.
var ErrInvalidTTL = errors.New("ttl must be zero (no expiry) or at least 1ms")

// ValidateTTL reports whether ttl can be used with WithTTL.
func ValidateTTL(ttl time.Duration) error {
	if ttl < 0 || (ttl > 0 && ttl < time.Millisecond) {
		return fmt.Errorf("%w, got %s", ErrInvalidTTL, ttl)
	}
	return nil
}

// saveScript stores the fixture only if its key is free and indexes it in the same step,
// so concurrent writers of the same statement agree on a single creator.
//
// KEYS[1] fixture key, KEYS[2] index key
// ARGV[1] payload, ARGV[2] index score, ARGV[3] fixture ID, ARGV[4] ttl in ms (0 = none)
var saveScript = backend.NewScript(`
local ok
if tonumber(ARGV[4]) > 0 then
	ok = redis.call("SET", KEYS[1], ARGV[1], "NX", "PX", ARGV[4])
else
	ok = redis.call("SET", KEYS[1], ARGV[1], "NX")
end
if not ok then
	return 0
end
redis.call("ZADD", KEYS[2], ARGV[2], ARGV[3])
return 1
`)

// Store implements ports.CorpusStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option defines a functional option for configuring the Store.
type Option func(*Store)

// WithTTL sets the expiration for fixtures. Save fails with ErrInvalidTTL
// unless ttl passes ValidateTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for fixtures.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the fixture as JSON, tree included.
func (s *Store) Save(ctx context.Context, fx domain.Fixture) (bool, error) {
	if err := ValidateTTL(s.ttl); err != nil {
		return false, err
	}
	data, err := json.Marshal(fx)
	if err != nil {
		return false, fmt.Errorf("failed to marshal fixture: %w", err)
	}

	// Score = expiry time in ms, so List can prune entries whose key already expired.
	score := float64(time.Now().Add(s.ttl).UnixMilli())
	if s.ttl == 0 {
		score = farFuture
	}

	created, err := saveScript.Run(ctx, s.client,
		[]string{s.key(fx.ID), s.indexKey()},
		data, score, fx.ID, s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to save to redis: %w", err)
	}
	return created == 1, nil
}

// Load retrieves a fixture from Redis.
func (s *Store) Load(ctx context.Context, id string) (domain.Fixture, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Fixture{}, domain.ErrFixtureNotFound
		}
		return domain.Fixture{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var fx domain.Fixture
	if err := json.Unmarshal([]byte(val), &fx); err != nil {
		return domain.Fixture{}, fmt.Errorf("failed to unmarshal fixture: %w", err)
	}
	return fx, nil
}

// Delete removes the fixture and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the IDs of live fixtures, pruning expired ones from the index first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().UnixMilli())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired fixtures: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}
	return ids, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
