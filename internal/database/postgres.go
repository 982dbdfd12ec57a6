package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ChadiEch/ambassador-dashboard/internal/config"
	"github.com/ChadiEch/ambassador-dashboard/internal/logger"
)

// DB est le pool partagé par les handlers et le rafraîchissement du snapshot
var DB *pgxpool.Pool

// ConnectPostgres ouvre le pool et vérifie la connexion. Le snapshot périodique
// et les requêtes analytics partagent le même pool, d'où le MaxConns relevé.
func ConnectPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?application_name=ambassador-dashboard",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	logger.Success("Connected to PostgreSQL (%s@%s:%s/%s)", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)

	DB = pool

	return pool, nil
}
