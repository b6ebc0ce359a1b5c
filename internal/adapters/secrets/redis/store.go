package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

type Options struct {
	Addrs     []string
	Password  string
	DB        int
	Namespace string
}

// Store keeps secrets as plain redis strings under "<namespace>:<key>",
// without expiry.
type Store struct {
	client    client
	namespace string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(c client, namespace string) *Store {
	return &Store{client: c, namespace: strings.TrimSuffix(namespace, ":")}
}

// NewClient builds a single-node client, or a cluster client when more than
// one address is given.
func NewClient(opts Options) (goredis.UniversalClient, error) {
	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("%w: redis address is required", domain.ErrInvalidConfig)
	}

	if len(opts.Addrs) > 1 {
		return goredis.NewClusterClient(&goredis.ClusterOptions{
			Addrs:    opts.Addrs,
			Password: opts.Password,
		}), nil
	}

	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addrs[0],
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis put %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("redis secret %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}

	return nil
}

func (s *Store) key(key string) string {
	if s.namespace == "" {
		return key
	}

	return s.namespace + ":" + key
}
