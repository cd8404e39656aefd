package game

import (
	"math/rand/v2"
	"strings"
	"time"
)

// Game is one single-player session. It is not safe for concurrent use.
type Game struct {
	Config    Config
	Player    *Player
	Month     int
	Year      int
	Over      bool
	EndReason EndReason

	pools    EventPools
	src      *rand.PCG
	rng      *rand.Rand
	observer Observer
}

type Option func(*Game)

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observer = o }
}

// WithEventPools replaces the built-in events.
func WithEventPools(pools EventPools) Option {
	return func(g *Game) { g.pools = pools }
}

func NewGame(config Config, opts ...Option) (*Game, error) {
	resolved := config
	resolved.PlayerName = strings.TrimSpace(resolved.PlayerName)
	if resolved.Rules == (Rules{}) {
		resolved.Rules = DefaultRules()
	}
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	if resolved.Seed == 0 {
		resolved.Seed = time.Now().UnixNano()
	}

	g := &Game{
		Config: resolved,
		Player: NewPlayer(resolved.PlayerName, resolved.Rules),
		Month:  1,
		Year:   0,
	}
	g.src = seededSource(resolved.Seed)
	g.rng = rand.New(g.src)
	g.applyOptions(opts)
	return g, nil
}

func (g *Game) applyOptions(opts []Option) {
	for _, opt := range opts {
		opt(g)
	}
	if g.pools == nil {
		g.pools = DefaultEventPools()
	}
	if g.observer == nil {
		g.observer = nopObserver{}
	}
}

// Rand exposes the game's random stream.
func (g *Game) Rand() *rand.Rand {
	return g.rng
}
