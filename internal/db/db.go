// Package db is the Postgres mirror store. A package-level connection is
// opened once at startup; per-entity query files log their own failures
// and return plain errors to callers.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var DB *sqlx.DB

// Init opens the PostgreSQL connection, retrying while the database comes
// up. Containerized deployments routinely start the service first.
func Init(databaseURL string) error {
	const (
		maxRetries    = 10
		retryInterval = 2 * time.Second
	)

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		DB, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).
			Msgf("database not ready, retrying in %s", retryInterval)
		time.Sleep(retryInterval)
	}
	return fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}

// RunMigrations executes every *.up.sql file under migrationsPath in name
// order. Files are idempotent (IF NOT EXISTS), so rerunning on boot is
// safe; the first failing file aborts the run.
func RunMigrations(migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)

	for _, file := range files {
		stmt, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		if len(stmt) == 0 {
			continue
		}
		if _, err := DB.Exec(string(stmt)); err != nil {
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
		log.Info().Str("file", filepath.Base(file)).Msg("applied migration")
	}
	return nil
}
