package seen

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// RedisConfig configures the redis connection used by RedisStore.
type RedisConfig struct {
	ConnectionURL  string        `env:"CSVBIND_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"CSVBIND_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"CSVBIND_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"CSVBIND_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
	// TTL bounds how long a session table outlives its last write.
	TTL time.Duration `env:"CSVBIND_REDIS_TTL" envDefault:"24h"`
}

// ConnectRedis parses cfg.ConnectionURL and pings the server until it
// answers, up to cfg.RetryAttempts times.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	attempts := uint64(max(cfg.RetryAttempts, 1))
	backoff := retry.WithMaxRetries(attempts-1, retry.NewConstant(max(cfg.RetryInterval, time.Millisecond)))

	var client *redis.Client
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		c := redis.NewClient(opts)
		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			return retry.RetryableError(err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrRedisNotReady, err)
	}
	return client, nil
}

// RedisStore keeps one hash per session and table. Every key of a session
// carries the session id as a hash tag, so the keys share a cluster slot.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the prefix of every hash key. Default "csvbind:seen".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithTTL sets the expiry refreshed on every write. Zero disables expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "csvbind:seen", ttl: 24 * time.Hour}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) hashKey(ctx context.Context, table string) string {
	return s.indexKey(ctx) + ":" + table
}

func (s *RedisStore) Seen(ctx context.Context, table, key string, row int) (int, bool, error) {
	hash := s.hashKey(ctx, table)

	added, err := s.client.HSetNX(ctx, hash, key, row).Result()
	if err != nil {
		return 0, false, errors.Join(ErrStoreFailed, err)
	}
	if added {
		index := s.indexKey(ctx)
		pipe := s.client.TxPipeline()
		pipe.SAdd(ctx, index, hash)
		if s.ttl > 0 {
			pipe.Expire(ctx, hash, s.ttl)
			pipe.Expire(ctx, index, s.ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return 0, false, errors.Join(ErrStoreFailed, err)
		}
		return row, false, nil
	}

	raw, err := s.client.HGet(ctx, hash, key).Result()
	if err != nil {
		return 0, false, errors.Join(ErrStoreFailed, err)
	}
	first, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, errors.Join(ErrStoreFailed, err)
	}
	return first, true, nil
}

func (s *RedisStore) indexKey(ctx context.Context) string {
	return s.prefix + ":{" + SessionID(ctx) + "}"
}

// Reset deletes every hash written in the session.
func (s *RedisStore) Reset(ctx context.Context) error {
	index := s.indexKey(ctx)
	hashes, err := s.client.SMembers(ctx, index).Result()
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	keys := append(hashes, index)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Healthcheck returns a probe that pings the redis server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrStoreFailed, err)
		}
		return nil
	}
}
