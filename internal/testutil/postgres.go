// Package testutil spins up disposable PostgreSQL instances for repository
// integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/norvaldb/land-of-mist/internal/config"
	"github.com/norvaldb/land-of-mist/internal/storage/postgres"
)

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "mist"
	pgPassword = "mist"
	pgDatabase = "mist_test"
)

// characterSchema mirrors migrations/0001_create_characters.up.sql so
// repository tests run against the same shape the migrate tool produces,
// without needing the tool inside the test environment.
const characterSchema = `
	CREATE TABLE IF NOT EXISTS characters (
		id             UUID         PRIMARY KEY,
		name           VARCHAR(64)  NOT NULL UNIQUE,
		class          VARCHAR(32)  NOT NULL,
		level          INT          NOT NULL,
		experience     INT          NOT NULL,
		strength       INT          NOT NULL,
		dexterity      INT          NOT NULL,
		constitution   INT          NOT NULL,
		intelligence   INT          NOT NULL,
		wisdom         INT          NOT NULL,
		charisma       INT          NOT NULL,
		max_hp         INT          NOT NULL,
		current_hp     INT          NOT NULL,
		max_mana       INT          NOT NULL,
		current_mana   INT          NOT NULL,
		copper         BIGINT       NOT NULL DEFAULT 0,
		weapon_id      VARCHAR(64)  NOT NULL DEFAULT '',
		armor_id       VARCHAR(64)  NOT NULL DEFAULT '',
		shield_id      VARCHAR(64)  NOT NULL DEFAULT '',
		weapon_poison  VARCHAR(32)  NOT NULL DEFAULT '',
		poison_charges INT          NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_characters_name ON characters (name);
`

// NewPool boots a PostgreSQL container, creates the characters schema, and
// returns a connected pool. Container and pool are torn down via t.Cleanup.
//
// Precondition: Docker must be reachable; the test fails otherwise.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, startPostgres(t))
	if err != nil {
		t.Fatalf("connecting to test postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.DB().Exec(ctx, characterSchema); err != nil {
		t.Fatalf("creating characters schema: %v", err)
	}
	return pool.DB()
}

// startPostgres launches the container and reports its connection settings.
func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()
	started := time.Now()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// The image logs readiness twice: once during initdb, once for real.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("resolving container host: %v", err)
	}
	port, err := ctr.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("resolving mapped port: %v", err)
	}
	t.Logf("postgres ready at %s:%d [%s]", host, port.Int(), time.Since(started))

	return config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            pgUser,
		Password:        pgPassword,
		Name:            pgDatabase,
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}
}
