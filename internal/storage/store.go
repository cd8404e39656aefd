// Package storage persists saved games.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/money-smartz/internal/game"
)

var ErrNotFound = errors.New("save not found")

// Save is one stored game. The summary columns are copied out of the snapshot
// so listings don't have to decode every game.
type Save struct {
	ID         string          `json:"id"`
	PlayerName string          `json:"player_name"`
	Age        int             `json:"age"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	NetWorth   decimal.Decimal `json:"net_worth"`
	Over       bool            `json:"over"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Data       []byte          `json:"-"`
}

// Store defines the save-game operations. Implementations must be safe for
// concurrent use.
type Store interface {
	// SaveGame inserts a new save when save.ID is empty and overwrites the
	// existing one otherwise. ID and timestamps are filled in by the store;
	// an overwrite keeps the stored created_at.
	SaveGame(ctx context.Context, save *Save) error

	// LoadGame returns ErrNotFound for unknown ids.
	LoadGame(ctx context.Context, id string) (*Save, error)

	// ListGames returns summaries, most recently updated first. Data is left
	// empty.
	ListGames(ctx context.Context) ([]Save, error)

	DeleteGame(ctx context.Context, id string) error

	Close() error
}

// NewSave snapshots g under id. Pass an empty id for a game that has never
// been stored.
func NewSave(id string, g *game.Game) (*Save, error) {
	data, err := g.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode game: %w", err)
	}
	return &Save{
		ID:         id,
		PlayerName: g.Player.Name,
		Age:        g.Player.Age,
		Month:      g.Month,
		Year:       g.Year,
		NetWorth:   g.Player.NetWorth(),
		Over:       g.Over,
		Data:       data,
	}, nil
}

// Game restores the stored snapshot.
func (s *Save) Game(opts ...game.Option) (*game.Game, error) {
	if len(s.Data) == 0 {
		return nil, fmt.Errorf("save %s has no game data", s.ID)
	}
	return game.Decode(s.Data, opts...)
}
