package stores

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/2beens/volleyfit/internal/config"
	"github.com/2beens/volleyfit/internal/db"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
)

type OpenParams struct {
	RedisPassword    string
	PostgresPassword string
	TracingEnabled   bool
}

// Stores holds the connections opened for the configured log store. Redis
// is opened whenever it is configured, it also backs the rate limiter.
type Stores struct {
	KV     workoutlog.KVStore
	Redis  *redis.Client
	DBPool *pgxpool.Pool
}

func Open(ctx context.Context, cfg *config.Config, params OpenParams) (_ *Stores, err error) {
	s := &Stores{}
	defer func() {
		if err != nil {
			if closeErr := s.Close(); closeErr != nil {
				log.Errorf("close stores after failed open: %s", closeErr)
			}
		}
	}()

	if cfg.RedisEnabled() {
		s.Redis = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := s.Redis.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	switch cfg.LogStore {
	case config.LogStoreRedis:
		if s.Redis == nil {
			return nil, errors.New("redis log store without redis config")
		}
		s.KV = workoutlog.NewRedisStore(s.Redis)
	case config.LogStorePostgres:
		s.DBPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := s.DBPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		pgStore := workoutlog.NewPostgresStore(s.DBPool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("postgres log store: %w", err)
		}
		s.KV = pgStore
	case config.LogStoreMemory:
		log.Warnln("workout logs are kept in memory, they are lost on restart")
		s.KV = workoutlog.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown log store: %s", cfg.LogStore)
	}

	return s, nil
}

func (s *Stores) Close() error {
	var err error
	if s.Redis != nil {
		err = multierr.Append(err, s.Redis.Close())
		s.Redis = nil
	}
	if s.DBPool != nil {
		log.Debugln("closing db pool ...")
		s.DBPool.Close() // blocking operation
		s.DBPool = nil
		log.Debugln("db pool closed")
	}
	return err
}
