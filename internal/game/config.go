package game

import (
	"fmt"
	"strings"
)

const maxNameLength = 20

type Config struct {
	PlayerName string `json:"player_name"`
	Seed       int64  `json:"seed"`
	Rules      Rules  `json:"rules"`
}

func (c Config) Validate() error {
	name := strings.TrimSpace(c.PlayerName)
	if name == "" {
		return fmt.Errorf("player name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("player name must be at most %d characters, got %d", maxNameLength, len(name))
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}
