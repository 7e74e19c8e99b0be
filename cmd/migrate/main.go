// Package main provides the schema migration runner. It reads the
// database settings from the shared configuration (environment overrides
// included) and applies the SQL migrations under the given directory.
//
// Usage:
//
//	migrate [-config configs/dev.yaml] [-migrations migrations] [-steps N] up|down|version
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/norvaldb/land-of-mist/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "directory holding the SQL migrations")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	m, err := migrate.New("file://"+*migrationsDir, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("creating migrator: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
		printVersion(m)
		return
	default:
		log.Fatalf("unknown command %q: want up, down, or version", command)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration %s failed: %v", command, err)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("schema already current")
		return
	}
	fmt.Printf("migrated %s\n", command)
	printVersion(m)
}

func printVersion(m *migrate.Migrate) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("schema version: none")
		return
	}
	if err != nil {
		log.Fatalf("reading schema version: %v", err)
	}
	fmt.Printf("schema version: %d dirty=%v\n", version, dirty)
	if dirty {
		os.Exit(1)
	}
}
