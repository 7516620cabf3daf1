package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Conn is satisfied by both *sql.DB and *sql.Tx.
type Conn interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// GetDocument returns the raw value stored under key. found is false when
// no row exists.
func GetDocument(conn Conn, key string) (value string, found bool, err error) {
	err = conn.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read document %q: %w", key, err)
	}
	return value, true, nil
}

// PutDocument inserts or replaces the value stored under key.
func PutDocument(conn Conn, key, value string) error {
	query := `
		INSERT INTO documents (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	updatedAt := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	if _, err := conn.Exec(query, key, value, updatedAt); err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return nil
}

// DeleteDocument removes key. Deleting a missing key is not an error.
func DeleteDocument(conn Conn, key string) error {
	if _, err := conn.Exec(`DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete document %q: %w", key, err)
	}
	return nil
}

// WithTx runs fn inside a transaction, committing only if fn succeeds.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
