package sqlite

import "database/sql"

// net_worth is stored as decimal text so no precision is lost.
const schema = `
CREATE TABLE IF NOT EXISTS saves (
    id TEXT PRIMARY KEY,
    player_name TEXT NOT NULL,
    age INTEGER NOT NULL,
    month INTEGER NOT NULL,
    year INTEGER NOT NULL,
    net_worth TEXT NOT NULL,
    ended INTEGER NOT NULL DEFAULT 0,
    data BLOB NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_saves_updated_at ON saves(updated_at);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
