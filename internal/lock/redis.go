package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RunLock is a Redis-backed mutual exclusion fence for the importer. Player
// resolution is find-then-create without a uniqueness constraint, so two
// importer runs interleaving over the same dataset can write duplicate
// player rows; holding this lock makes the single-run precondition real.
type RunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

// Config holds run lock configuration
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
}

// Deleting the key only when it still carries our token keeps an expired
// holder from releasing a successor's lock.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// New connects to Redis and prepares a lock handle. The lock is not taken
// until Acquire.
func New(ctx context.Context, cfg Config) (*RunLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to generate lock token: %w", err)
	}

	return &RunLock{
		client: client,
		key:    cfg.Key,
		ttl:    cfg.TTL,
		token:  hex.EncodeToString(buf),
	}, nil
}

// Acquire attempts to take the lock. It returns false, without error, when
// another run currently holds it.
func (l *RunLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire run lock: %w", err)
	}

	if ok {
		log.Info().Str("key", l.key).Dur("ttl", l.ttl).Msg("Import run lock acquired")
	}

	return ok, nil
}

// Release frees the lock if this handle still holds it.
func (l *RunLock) Release(ctx context.Context) error {
	if err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}

	log.Info().Str("key", l.key).Msg("Import run lock released")
	return nil
}

// Close closes the underlying Redis connection
func (l *RunLock) Close() {
	if err := l.client.Close(); err != nil {
		log.Debug().Err(err).Msg("Failed to close redis client")
	}
}
