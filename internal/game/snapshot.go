package game

import (
	"fmt"
	"math/rand/v2"

	json "github.com/goccy/go-json"
)

const snapshotVersion = 1

type snapshot struct {
	FormatVersion int       `json:"format_version"`
	Config        Config    `json:"config"`
	Player        *Player   `json:"player"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	Over          bool      `json:"over"`
	EndReason     EndReason `json:"end_reason,omitempty"`
	RNG           []byte    `json:"rng"`
}

// Encode serializes the game including the random stream position, so a
// decoded game draws the same numbers the original would have.
func (g *Game) Encode() ([]byte, error) {
	state, err := g.src.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rng state: %w", err)
	}
	return json.Marshal(snapshot{
		FormatVersion: snapshotVersion,
		Config:        g.Config,
		Player:        g.Player,
		Month:         g.Month,
		Year:          g.Year,
		Over:          g.Over,
		EndReason:     g.EndReason,
		RNG:           state,
	})
}

func Decode(data []byte, opts ...Option) (*Game, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode game: %w", err)
	}
	if snap.FormatVersion != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.FormatVersion)
	}
	if snap.Player == nil {
		return nil, fmt.Errorf("snapshot has no player")
	}
	src := &rand.PCG{}
	if err := src.UnmarshalBinary(snap.RNG); err != nil {
		return nil, fmt.Errorf("failed to restore rng state: %w", err)
	}
	g := &Game{
		Config:    snap.Config,
		Player:    snap.Player,
		Month:     snap.Month,
		Year:      snap.Year,
		Over:      snap.Over,
		EndReason: snap.EndReason,
		src:       src,
		rng:       rand.New(src),
	}
	g.applyOptions(opts)
	return g, nil
}
