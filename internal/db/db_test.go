package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database, path
}

func TestOpen_IsIdempotent(t *testing.T) {
	_, path := openTestDB(t)
	again, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	again.Close()
}

func TestDocuments_PutGetDelete(t *testing.T) {
	database, _ := openTestDB(t)

	if _, found, err := GetDocument(database, "k"); err != nil || found {
		t.Fatalf("GetDocument on empty table = found %v, err %v", found, err)
	}

	if err := PutDocument(database, "k", `{"a":1}`); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	if err := PutDocument(database, "k", `{"a":2}`); err != nil {
		t.Fatalf("PutDocument overwrite: %v", err)
	}

	got, found, err := GetDocument(database, "k")
	if err != nil || !found {
		t.Fatalf("GetDocument = found %v, err %v", found, err)
	}
	if got != `{"a":2}` {
		t.Errorf("GetDocument = %q, want overwritten value", got)
	}

	if err := DeleteDocument(database, "k"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if err := DeleteDocument(database, "k"); err != nil {
		t.Fatalf("DeleteDocument on missing key: %v", err)
	}
	if _, found, _ := GetDocument(database, "k"); found {
		t.Error("document still present after delete")
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	database, _ := openTestDB(t)
	if err := PutDocument(database, "k", "before"); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := WithTx(database, func(tx *sql.Tx) error {
		if err := PutDocument(tx, "k", "after"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want boom", err)
	}

	got, _, _ := GetDocument(database, "k")
	if got != "before" {
		t.Errorf("value = %q, want rollback to keep %q", got, "before")
	}
}

func TestFileLock_TimesOutWhileHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.db.lock")
	first := NewFileLock(path, time.Second)
	unlock, err := first.Lock()
	if err != nil {
		t.Fatalf("first Lock: %v", err)
	}

	second := NewFileLock(path, 150*time.Millisecond)
	if _, err := second.Lock(); !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("second Lock error = %v, want ErrLockTimeout", err)
	}

	unlock()
	unlock2, err := second.Lock()
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	unlock2()
}
