package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/functree/internal/config"
	"github.com/aretw0/functree/pkg/adapters/file"
	"github.com/aretw0/functree/pkg/adapters/memory"
	"github.com/aretw0/functree/pkg/adapters/redis"
	"github.com/aretw0/functree/pkg/ports"
)

// Store backends accepted by --store.
const (
	StoreNone   = ""
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// OpenStore connects the corpus store named by kind. The returned close
// function must be called when the store is no longer needed.
// StoreNone yields a nil store.
func OpenStore(ctx context.Context, kind string, cfg config.Config) (ports.CorpusStore, func() error, error) {
	noop := func() error { return nil }

	switch kind {
	case StoreNone:
		return nil, noop, nil
	case StoreMemory:
		return memory.NewStore(), noop, nil
	case StoreFile:
		return file.NewStore(cfg.Corpus.Dir), noop, nil
	case StoreRedis:
		rc := cfg.Redis
		if err := redis.ValidateTTL(rc.TTL); err != nil {
			return nil, noop, err
		}
		opts := []redis.Option{redis.WithTTL(rc.TTL)}
		if rc.Prefix != "" {
			opts = append(opts, redis.WithPrefix(rc.Prefix))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("redis at %s is unreachable: %w", rc.Addr, err)
		}
		return store, store.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store %q (use %s, %s or %s)", kind, StoreMemory, StoreFile, StoreRedis)
}
