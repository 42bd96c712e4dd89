package repository

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory database with the schema the
// repositories expect.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	schema := `
		CREATE TABLE decks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			format TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE deck_cards (
			deck_id TEXT NOT NULL,
			name TEXT NOT NULL,
			mana_cost TEXT NOT NULL DEFAULT '',
			cmc INTEGER NOT NULL DEFAULT 0,
			type_line TEXT NOT NULL DEFAULT '',
			rarity TEXT NOT NULL DEFAULT '',
			oracle_text TEXT NOT NULL DEFAULT '',
			colors TEXT NOT NULL DEFAULT '',
			color_identity TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL,
			zone TEXT NOT NULL DEFAULT 'main',
			PRIMARY KEY (deck_id, name, zone)
		);

		CREATE TABLE collection (
			name TEXT PRIMARY KEY,
			quantity INTEGER NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
	return db
}
