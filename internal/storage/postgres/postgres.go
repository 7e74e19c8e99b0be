// Package postgres provides PostgreSQL persistence using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/norvaldb/land-of-mist/internal/config"
)

// connectProbeTimeout bounds the reachability check performed by NewPool,
// independent of whatever deadline the caller's context carries.
const connectProbeTimeout = 5 * time.Second

// Pool owns the pgx connection pool shared by all repositories.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to PostgreSQL using the supplied settings and verifies the
// server is reachable before returning.
//
// Precondition: cfg carries a resolvable host and valid credentials.
// Postcondition: the returned Pool has pinged the server and is ready for
// repository use; on error no pool resources are left open.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing postgres DSN: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}

	probe, cancel := context.WithTimeout(ctx, connectProbeTimeout)
	defer cancel()
	if err := pool.Ping(probe); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres unreachable: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// DB exposes the underlying pgxpool.Pool for repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// Close releases every connection held by the pool.
func (p *Pool) Close() {
	p.pool.Close()
}
