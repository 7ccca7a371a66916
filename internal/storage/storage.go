// Package storage mirrors a loaded dataset into an in-memory SQLite database
// for ad-hoc SQL. Nothing is written to disk.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/pable/lck-metrics/internal/dataset"
)

// Table names of the two partitions.
const (
	PlayersTable = "players"
	TeamsTable   = "teams"
)

// DB wraps a sql.DB holding the mirrored tables.
type DB struct {
	conn *sql.DB
}

// Open opens an in-memory SQLite database. All access goes through one
// connection so every query sees the same database.
func Open() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Mirror replaces the players and teams tables with the given partitions.
func (db *DB) Mirror(players, teams *dataset.Table) error {
	if err := db.InsertTable(PlayersTable, players); err != nil {
		return err
	}
	return db.InsertTable(TeamsTable, teams)
}
