package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// MemoryDSN opens a private in-memory sqlite database.
const MemoryDSN = ":memory:"

// OpenPostgres connects, pings and migrates a postgres database.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open(Postgres.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	return open(ctx, db, Postgres)
}

// OpenSQLite opens path, or a private in-memory database for MemoryDSN.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	if path == MemoryDSN {
		dsn = MemoryDSN
	}
	db, err := sql.Open(SQLite.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps :memory: shared.
	db.SetMaxOpenConns(1)
	return open(ctx, db, SQLite)
}

func open(ctx context.Context, db *sql.DB, d Dialect) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d.Name, err)
	}
	s := NewSQLStore(db, d)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
