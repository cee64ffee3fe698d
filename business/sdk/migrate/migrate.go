// Package migrate applies the embedded schema migrations to the database.
package migrate

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/stokaro/ptah/dbschema"
	"github.com/stokaro/ptah/migration/migrator"
)

//go:embed sql/*.sql
var files embed.FS

// Files returns the migration files compiled into the binary. File names
// follow NNNNNNNNNN_description.up.sql and NNNNNNNNNN_description.down.sql.
func Files() (fs.FS, error) {
	sub, err := fs.Sub(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("sub fs: %w", err)
	}

	return sub, nil
}

// Migrations returns the embedded migrations ordered by version.
func Migrations() ([]*migrator.Migration, error) {
	sub, err := Files()
	if err != nil {
		return nil, err
	}

	provider, err := migrator.NewFSMigrationProvider(sub)
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	return provider.Migrations(), nil
}

// Migrate attempts to bring the database up to date with the embedded
// migrations.
func Migrate(ctx context.Context, log *logger.Logger, cfg sqldb.Config) error {
	return run(ctx, log, cfg, func(ctx context.Context, m *migrator.Migrator) error {
		return m.MigrateUp(ctx)
	})
}

// Status reports the applied version and the pending migrations.
func Status(ctx context.Context, log *logger.Logger, cfg sqldb.Config) (*migrator.MigrationStatus, error) {
	var status *migrator.MigrationStatus
	err := run(ctx, log, cfg, func(ctx context.Context, m *migrator.Migrator) error {
		var err error
		status, err = m.GetMigrationStatus(ctx)
		return err
	})

	return status, err
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, log *logger.Logger, cfg sqldb.Config) error {
	return run(ctx, log, cfg, func(ctx context.Context, m *migrator.Migrator) error {
		return m.MigrateDown(ctx)
	})
}

func run(ctx context.Context, log *logger.Logger, cfg sqldb.Config, fn func(context.Context, *migrator.Migrator) error) error {
	sub, err := Files()
	if err != nil {
		return err
	}

	conn, err := dbschema.ConnectToDatabase(sqldb.URL(cfg))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	m, err := migrator.NewFSMigrator(conn, sub)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	log.Info(ctx, "migrate", "status", "running", "host", cfg.Host, "name", cfg.Name)

	if err := fn(ctx, m.WithLogger(log.Slog())); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}
