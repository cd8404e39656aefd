// Package sqlite provides a SQLite-backed implementation of storage.Store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/appengine-ltd/money-smartz/internal/storage"
)

var _ storage.Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the database at dbPath, creating parent directories and running
// migrations.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; sqlite would otherwise return SQLITE_BUSY under
	// concurrent saves.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveGame(ctx context.Context, save *storage.Save) error {
	if save.ID == "" {
		save.ID = uuid.New().String()
	}
	now := s.now().UTC().Truncate(time.Second)
	if save.CreatedAt.IsZero() {
		save.CreatedAt = now
	}
	save.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (id, player_name, age, month, year, net_worth, ended, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   player_name = excluded.player_name,
		   age = excluded.age,
		   month = excluded.month,
		   year = excluded.year,
		   net_worth = excluded.net_worth,
		   ended = excluded.ended,
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		save.ID, save.PlayerName, save.Age, save.Month, save.Year, save.NetWorth.String(),
		boolToInt(save.Over), save.Data, save.CreatedAt.Unix(), save.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadGame(ctx context.Context, id string) (*storage.Save, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, player_name, age, month, year, net_worth, ended, created_at, updated_at, data
		 FROM saves WHERE id = ?`,
		id,
	)
	save, err := scanSave(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	return save, nil
}

func (s *SQLiteStore) ListGames(ctx context.Context) ([]storage.Save, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_name, age, month, year, net_worth, ended, created_at, updated_at
		 FROM saves ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var saves []storage.Save
	for rows.Next() {
		save, err := scanSave(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		saves = append(saves, *save)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saves: %w", err)
	}
	return saves, nil
}

func (s *SQLiteStore) DeleteGame(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSave(row scanner, withData bool) (*storage.Save, error) {
	var (
		save      storage.Save
		netWorth  string
		ended     int
		createdAt int64
		updatedAt int64
	)
	dest := []any{&save.ID, &save.PlayerName, &save.Age, &save.Month, &save.Year, &netWorth, &ended, &createdAt, &updatedAt}
	if withData {
		dest = append(dest, &save.Data)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	nw, err := decimal.NewFromString(netWorth)
	if err != nil {
		return nil, fmt.Errorf("invalid net worth %q: %w", netWorth, err)
	}
	save.NetWorth = nw
	save.Over = ended != 0
	save.CreatedAt = time.Unix(createdAt, 0).UTC()
	save.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &save, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
