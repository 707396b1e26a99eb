package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenEnablesForeignKeysOnEveryConnection(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "notebook.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()

	// Let the pool hand out fresh connections beside the pinned one.
	sqlDB.SetMaxOpenConns(2)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("conn %d: %v", i, err)
		}
		defer conn.Close()

		var enabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("read pragma on conn %d: %v", i, err)
		}
		if enabled != 1 {
			t.Fatalf("expected foreign keys on conn %d, got %d", i, enabled)
		}
	}
}

func TestDSNAppendsPragma(t *testing.T) {
	if got := dsn(":memory:"); got != ":memory:?_pragma=foreign_keys(1)" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := dsn("file:notes.db?cache=shared"); got != "file:notes.db?cache=shared&_pragma=foreign_keys(1)" {
		t.Fatalf("unexpected dsn %q", got)
	}
}
