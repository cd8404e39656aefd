package server

import (
	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/money-smartz/internal/game"
	"github.com/appengine-ltd/money-smartz/internal/storage"
)

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// CreateGameRequest starts a new game. Rules default to game.DefaultRules.
type CreateGameRequest struct {
	PlayerName string      `json:"player_name"`
	Seed       int64       `json:"seed"`
	Rules      *game.Rules `json:"rules,omitempty"`
}

type AdvanceRequest struct {
	Months int `json:"months"`
}

type CommandRequest struct {
	Command string `json:"command"`
}

// GameView is the public state of a stored game.
type GameView struct {
	ID        string         `json:"id"`
	Month     int            `json:"month"`
	Year      int            `json:"year"`
	Over      bool           `json:"over"`
	EndReason game.EndReason `json:"end_reason,omitempty"`
	Player    *game.Player   `json:"player"`
	Summary   game.Summary   `json:"summary"`
}

func newGameView(id string, g *game.Game) GameView {
	return GameView{
		ID:        id,
		Month:     g.Month,
		Year:      g.Year,
		Over:      g.Over,
		EndReason: g.EndReason,
		Player:    g.Player,
		Summary:   g.Player.Summary(),
	}
}

type GameListItem struct {
	ID         string          `json:"id"`
	PlayerName string          `json:"player_name"`
	Age        int             `json:"age"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	NetWorth   decimal.Decimal `json:"net_worth"`
	Over       bool            `json:"over"`
	UpdatedAt  int64           `json:"updated_at"`
}

func newGameListItem(s storage.Save) GameListItem {
	return GameListItem{
		ID:         s.ID,
		PlayerName: s.PlayerName,
		Age:        s.Age,
		Month:      s.Month,
		Year:       s.Year,
		NetWorth:   s.NetWorth,
		Over:       s.Over,
		UpdatedAt:  s.UpdatedAt.Unix(),
	}
}

type AdvanceResponse struct {
	Game    GameView           `json:"game"`
	Reports []game.MonthReport `json:"reports"`
}

type CommandResponse struct {
	Handled bool               `json:"handled"`
	Message string             `json:"message,omitempty"`
	Clarify []string           `json:"clarify,omitempty"`
	Reports []game.MonthReport `json:"reports,omitempty"`
	Game    GameView           `json:"game"`
}
