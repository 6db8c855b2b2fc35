package test

import (
	"database/sql"
	"log"
	"path/filepath"
	"testing"

	"github.com/Masterminds/squirrel"

	"todohub/internal/adapter/database/sqlite"
	"todohub/pkg"
)

// InitTestDB opens a fresh in-memory sqlite database with the bundled
// migrations applied. One connection only: each :memory: connection is its
// own database, so the pool must never open a second one.
func InitTestDB() *sqlite.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(pkg.FindProjectRoot(), "infra", "migrations", "sqlite")
	sqlite.RunMigrations(db, migrationsPath)

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	return &sqlite.DB{
		DB:           db,
		QueryBuilder: &queryBuilder,
	}
}

func CleanDB(t *testing.T, db *sqlite.DB) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT IN ('sqlite_sequence', 'schema_migrations')")

	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	tables := []string{}

	for rows.Next() {
		var table string

		if err := rows.Scan(&table); err != nil {
			rows.Close()
			t.Fatalf("Failed to scan table name: %v", err)
		}

		tables = append(tables, table)
	}

	rows.Close()

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}
