package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a SQLite connection holding the search index of one loaded export.
type DB struct {
	*sql.DB
}

// OpenMemory creates a private in-memory database. Each call gets its own
// database; it disappears when closed. Nothing is ever written to disk.
func OpenMemory() (*DB, error) {
	db, err := sql.Open("sqlite3", "file:chatlens-"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every connection to a named memory database shares it, but the
	// database dies with the last one; pin a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{db}, nil
}
