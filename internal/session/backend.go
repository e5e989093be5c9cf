package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clamood/console/internal/config"
)

var ErrUnknownBackend = errors.New("unknown session backend")

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpenStore builds the store named by the session backend setting. The
// returned close func releases whatever connection the store holds.
func OpenStore(ctx context.Context, cfg *config.AppConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Session.Backend {
	case "", "file":
		return NewFileStore(cfg.Session.FilePath), noop, nil
	case "memory":
		return NewMemoryStore(), noop, nil
	case "redis":
		client, err := dialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.Session.RedisKey), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Session.Backend)
	}
}

func dialRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
