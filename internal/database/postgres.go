package database

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateInstance 抽出 Up/Down 以便測試替換
type migrateInstance interface {
	Up() error
	Down() error
}

// 測試可覆寫下列變數
var (
	pgxpoolNew             = pgxpool.New
	sqlOpenDB              = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn              = func(f fs.FS, dir string) (src.Driver, error) { return iofs.New(f, dir) }
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		return migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
	}
)

// NewPgxPool 建立 pgx 連線池
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func newMigrate(dbURL string) (migrateInstance, func(), error) {
	sqlDB, err := sqlOpenDB("pgx", dbURL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = sqlDB.Close() }

	driver, err := postgresWithInstanceFn(sqlDB, &postgres.Config{})
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	sourceDriver, err := iofsNewFn(migrationsFS, "migrations")
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	m, err := migrateNewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return m, closeFn, nil
}

// RunMigrations 嵌入並執行 SQL migration (up all)
func RunMigrations(dbURL string) error {
	m, closeFn, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// RollbackAll 退回所有 migration (down to version 0)
func RollbackAll(dbURL string) error {
	m, closeFn, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
