package storage

import (
	"path/filepath"
	"testing"
)

func TestMigrationsApply(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deckforge.db")

	mgr, err := NewMigrationManager(dbPath)
	if err != nil {
		t.Fatalf("NewMigrationManager failed: %v", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	if err := mgr.Up(); err != nil {
		t.Fatalf("Up failed: %v", err)
	}

	version, dirty, err := mgr.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if dirty {
		t.Error("database left dirty after migration")
	}
	if version == 0 {
		t.Error("expected nonzero schema version after Up")
	}

	// Up is idempotent.
	if err := mgr.Up(); err != nil {
		t.Errorf("second Up failed: %v", err)
	}
}

func TestOpenWithAutoMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deckforge.db")

	cfg := DefaultConfig(dbPath)
	cfg.AutoMigrate = true

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	var count int
	err = db.Conn().QueryRow(`SELECT COUNT(*) FROM decks`).Scan(&count)
	if err != nil {
		t.Fatalf("decks table missing after migration: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty decks table, got %d rows", count)
	}
}
