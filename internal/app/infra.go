package app

import (
	"context"
	"database/sql"

	"github.com/FinFellows/Server/internal/config"
	"github.com/FinFellows/Server/internal/db"
	"github.com/FinFellows/Server/internal/logger"
	"github.com/FinFellows/Server/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB *db.DB

	// Redis stays nil unless an address is configured; credential
	// storage then falls back to Postgres.
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	infra := &Infra{DB: &db.DB{DB: sqlDB}}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = redisClient
		logger.Info("redis ready", nil)
	}

	return infra, nil
}
