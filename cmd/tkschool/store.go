package main

import (
	"context"
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/config"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store/cache"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store/firestore"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store/inmem"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store/xpgx"
	"os"
)

// openStore builds the configured store, wrapped in the Redis cache when redis.addr
// is set. The returned func releases every connection it opened.
func openStore(ctx context.Context, cfg *config.Config, seed string) (store.Store, func(), error) {
	var (
		st      store.Store
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.StoreDriver {
	case constants.StoreDriverPostgres:
		pool, err := xpgx.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		if err := store.EnsureSchema(ctx, pool); err != nil {
			closeAll()
			return nil, nil, err
		}
		st = store.NewStore(pool)
	case constants.StoreDriverFirestore:
		fs, err := firestore.Open(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = fs.Close() })
		st = fs
	case constants.StoreDriverMemory:
		mem := inmem.New()
		if seed != "" {
			if err := loadSeed(mem, seed); err != nil {
				return nil, nil, err
			}
		}
		st = mem
	default:
		return nil, nil, fmt.Errorf("%w: %q", constants.ErrUnknownDriver, cfg.StoreDriver)
	}

	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		st = cache.New(st, rdb, cfg.RedisTTL)
		logger.Infof(ctx, "month listings cached in redis %s for %s", cfg.RedisAddr, cfg.RedisTTL)
	}

	return st, closeAll, nil
}

func loadSeed(mem *inmem.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return mem.Load(f)
}
