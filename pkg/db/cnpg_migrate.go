/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/campusnoc/pkg/logger"
)

const (
	cnpgMigrationsTable = "campusnoc_schema_migrations"
	cnpgMigrationsDir   = "cnpg/migrations"
)

//go:embed cnpg/migrations/*.sql
var cnpgMigrationsFS embed.FS

type migrationExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RunCNPGMigrations creates the dashboard tables when they are missing.
func RunCNPGMigrations(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	if pool == nil {
		return ErrQuerierRequired
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("cnpg migrations: acquire connection: %w", err)
	}
	defer conn.Release()

	return applyMigrations(ctx, conn, cnpgMigrationsFS, log)
}

func applyMigrations(ctx context.Context, exec migrationExecutor, migrations fs.FS, log logger.Logger) error {
	if _, err := exec.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		version     TEXT PRIMARY KEY,
		applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, cnpgMigrationsTable)); err != nil {
		return fmt.Errorf("cnpg migrations: create tracking table: %w", err)
	}

	applied, err := appliedMigrationVersions(ctx, exec)
	if err != nil {
		return err
	}

	pending, err := pendingMigrations(migrations, applied)
	if err != nil {
		return err
	}

	for _, name := range pending {
		log.Info().Str("migration", name).Msg("applying CNPG migration")

		content, err := fs.ReadFile(migrations, path.Join(cnpgMigrationsDir, name))
		if err != nil {
			return fmt.Errorf("cnpg migrations: read %s: %w", name, err)
		}

		for idx, stmt := range splitSQLStatements(string(content)) {
			if _, err := exec.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("cnpg migrations: statement %d in %s failed: %w", idx+1, name, err)
			}
		}

		if _, err := exec.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (version) VALUES ($1)`, cnpgMigrationsTable),
			migrationVersion(name)); err != nil {
			return fmt.Errorf("cnpg migrations: record %s: %w", name, err)
		}
	}

	if len(pending) > 0 {
		log.Info().Int("applied", len(pending)).Msg("CNPG migrations complete")
	}

	return nil
}

func appliedMigrationVersions(ctx context.Context, exec migrationExecutor) (map[string]struct{}, error) {
	rows, err := exec.Query(ctx, fmt.Sprintf(`SELECT version FROM %s`, cnpgMigrationsTable))
	if err != nil {
		return nil, fmt.Errorf("cnpg migrations: list applied versions: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("cnpg migrations: scan applied version: %w", err)
		}

		applied[version] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cnpg migrations: iterate applied versions: %w", err)
	}

	return applied, nil
}

// pendingMigrations lists the .up.sql files not yet recorded, in version
// order. Down files are for manual rollbacks.
func pendingMigrations(migrations fs.FS, applied map[string]struct{}) ([]string, error) {
	entries, err := fs.ReadDir(migrations, cnpgMigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("cnpg migrations: read embedded migrations: %w", err)
	}

	pending := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		if _, ok := applied[migrationVersion(name)]; ok {
			continue
		}

		pending = append(pending, name)
	}

	sort.Strings(pending)

	return pending, nil
}
