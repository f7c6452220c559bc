package redisStore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instances = make(map[int]*Store)
	mu        sync.RWMutex
	logger    *logger_i.Logger
	once      sync.Once
)

type Store struct {
	client *redis.Client
	Type   int
}

type Options struct {
	Addr     string
	Password string
}

// GetRedisStore returns the shared client for one redis DB index, or nil when redis is offline.
func GetRedisStore(ctx context.Context, dbType int, opts Options) *Store {
	mu.RLock()
	instance, exists := instances[dbType]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[dbType]; exists {
		return instance
	}
	return createNewStore(ctx, dbType, opts)
}

func initLogger(dbType int) {
	if logger == nil {
		logger = logger_i.NewLogger(fmt.Sprintf("Redis Store: %d", dbType))
	}
}

func closeRedisStores(ctx context.Context) {
	<-ctx.Done()
	logger.Info("Closing Redis Stores")
	mu.Lock()
	defer mu.Unlock()
	for key, store := range instances {
		if err := store.client.Close(); err != nil {
			logger.Error("Error closing redis client", "error", err)
		}
		delete(instances, key)
	}
	logger.Info("Redis Store Closed successfully")
}

func createNewStore(ctx context.Context, dbType int, opts Options) *Store {
	initLogger(dbType)

	newClient := redis.NewClient(&redis.Options{
		Addr:                  opts.Addr,
		Password:              opts.Password,
		DB:                    dbType,
		ContextTimeoutEnabled: true,
		ReadTimeout:           3 * time.Second,
		WriteTimeout:          3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "addr", opts.Addr, "error", err)
		_ = newClient.Close()
		return nil
	}

	logger.Info("Redis client init successfully", "addr", opts.Addr, "db", dbType)

	newStore := &Store{
		client: newClient,
		Type:   dbType,
	}

	instances[dbType] = newStore
	once.Do(func() {
		go closeRedisStores(ctx)
	})
	return newStore
}

// NewTestStore wraps an existing client, used with miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
