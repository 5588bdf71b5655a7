package main

import (
	"database/sql"
	"embed"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/config"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying pending ones")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger, *down); err != nil {
		logger.Error("migration run failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("migration run finished successfully")
}

func run(logger *zap.Logger, down bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dc := mysql.NewDriverConfig(cfg.Database)
	dc.MultiStatements = true

	db, err := sql.Open("mysql", dc.FormatDSN())
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	//nolint:errcheck
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("init mysql driver: %w", err)
	}

	m, err := newMigrate(driver)
	if err != nil {
		return err
	}

	if down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read version: %w", err)
	}

	logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty), zap.Bool("down", down))

	return nil
}

func newMigrate(driver database.Driver) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}

	return m, nil
}
