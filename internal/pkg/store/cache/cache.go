// Package cache wraps a store with a Redis read-through cache of document listings.
package cache

import (
	"context"
	"errors"
	"fmt"
	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"github.com/redis/go-redis/v9"
	"time"
)

const keyPrefix = "tkschool"

// Client is the subset of redis commands the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Store caches ListAwardDocuments results under a per-collection generation.
// Every write bumps the generation, so a listing computed before the write can only
// land under a key nobody reads anymore.
type Store struct {
	store.Store
	rdb Client
	ttl time.Duration
}

func New(next store.Store, rdb Client, ttl time.Duration) *Store {
	return &Store{Store: next, rdb: rdb, ttl: ttl}
}

// Connect opens a redis client and pings it with retries.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 3), ctx)
	err := backoff.Retry(func() error {
		return rdb.Ping(ctx).Err()
	}, b)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache.Connect %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *Store) ListAwardDocuments(ctx context.Context, opts store.ListAwardDocumentsOpts) ([]domain.AwardDocument, error) {
	gen, err := s.generation(ctx, opts.Collection)
	if err != nil {
		logger.Warnf(ctx, "cache generation: %s", err.Error())
		return s.Store.ListAwardDocuments(ctx, opts)
	}
	key := listKey(opts, gen)

	cached, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var docs []domain.AwardDocument
		if err := sonic.Unmarshal(cached, &docs); err == nil {
			return docs, nil
		}
		logger.Warnf(ctx, "cache decode %s: %s", key, err.Error())
	case !errors.Is(err, redis.Nil):
		logger.Warnf(ctx, "cache get %s: %s", key, err.Error())
	}

	docs, err := s.Store.ListAwardDocuments(ctx, opts)
	if err != nil {
		return nil, err
	}

	if data, err := sonic.Marshal(docs); err == nil {
		if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
			logger.Warnf(ctx, "cache set %s: %s", key, err.Error())
		}
	}
	return docs, nil
}

func (s *Store) PutAwardDocument(ctx context.Context, collection string, doc domain.AwardDocument) error {
	if err := s.Store.PutAwardDocument(ctx, collection, doc); err != nil {
		return err
	}
	if err := s.rdb.Incr(ctx, generationKey(collection)).Err(); err != nil {
		return fmt.Errorf("cache.PutAwardDocument: bump generation: %w", err)
	}
	return nil
}

func (s *Store) generation(ctx context.Context, collection string) (int64, error) {
	gen, err := s.rdb.Get(ctx, generationKey(collection)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func generationKey(collection string) string {
	return fmt.Sprintf("%s:gen:%s", keyPrefix, collection)
}

func listKey(opts store.ListAwardDocumentsOpts, gen int64) string {
	var prefix, ym string
	if opts.IDPrefix != nil {
		prefix = *opts.IDPrefix
	}
	if opts.YearMonth != nil {
		ym = *opts.YearMonth
	}
	return fmt.Sprintf("%s:docs:%s:%s:%s:%d", keyPrefix, opts.Collection, prefix, ym, gen)
}
