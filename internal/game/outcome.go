package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type EndReason string

const (
	EndNone       EndReason = ""
	EndRetirement EndReason = "retirement"
	EndQuit       EndReason = "quit"
)

type Rating int

const (
	RatingInDebt Rating = iota
	RatingBreakingEven
	RatingStable
	RatingSecure
	RatingWizard
)

func (r Rating) String() string {
	switch r {
	case RatingInDebt:
		return "In Debt"
	case RatingBreakingEven:
		return "Breaking Even"
	case RatingStable:
		return "Financially Stable"
	case RatingSecure:
		return "Financially Secure"
	case RatingWizard:
		return "Financial Wizard"
	default:
		return "Unknown"
	}
}

func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rating) UnmarshalText(text []byte) error {
	for candidate := RatingInDebt; candidate <= RatingWizard; candidate++ {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown rating %q", text)
}

var (
	wizardThreshold = decimal.NewFromInt(1_000_000)
	secureThreshold = decimal.NewFromInt(500_000)
	stableThreshold = decimal.NewFromInt(100_000)
)

func RateNetWorth(netWorth decimal.Decimal) Rating {
	switch {
	case netWorth.GreaterThanOrEqual(wizardThreshold):
		return RatingWizard
	case netWorth.GreaterThanOrEqual(secureThreshold):
		return RatingSecure
	case netWorth.GreaterThanOrEqual(stableThreshold):
		return RatingStable
	case !netWorth.IsNegative():
		return RatingBreakingEven
	default:
		return RatingInDebt
	}
}

// Summary is the end-of-game balance sheet.
type Summary struct {
	Cash       decimal.Decimal `json:"cash"`
	Bank       decimal.Decimal `json:"bank"`
	CardDebt   decimal.Decimal `json:"card_debt"`
	LoanDebt   decimal.Decimal `json:"loan_debt"`
	AssetValue decimal.Decimal `json:"asset_value"`
	NetWorth   decimal.Decimal `json:"net_worth"`
	Rating     Rating          `json:"rating"`
}

func (p *Player) Summary() Summary {
	nw := p.NetWorth()
	return Summary{
		Cash:       p.Cash,
		Bank:       p.BankBalance(),
		CardDebt:   p.CardDebt(),
		LoanDebt:   p.LoanDebt(),
		AssetValue: p.AssetValue(),
		NetWorth:   nw,
		Rating:     RateNetWorth(nw),
	}
}

type Outcome struct {
	Reason  EndReason `json:"reason,omitempty"`
	Summary *Summary  `json:"summary,omitempty"`
}

func (o Outcome) Finished() bool {
	return o.Reason != EndNone
}

func (g *Game) checkLifeStage() Outcome {
	if g.Player.Age >= g.Config.Rules.RetirementAge {
		return g.end(EndRetirement)
	}
	return Outcome{}
}

func (g *Game) end(reason EndReason) Outcome {
	g.Over = true
	g.EndReason = reason
	summary := g.Player.Summary()
	g.Player.recordLifeEvent(g.Year, g.Month, "Game over (%s). Net worth %s, rated %s.",
		reason, summary.NetWorth.StringFixed(2), summary.Rating)
	return Outcome{Reason: reason, Summary: &summary}
}

// Quit ends the game early.
func (g *Game) Quit() (Outcome, error) {
	if g.Over {
		return Outcome{}, ErrGameOver
	}
	out := g.end(EndQuit)
	g.observer.GameEnded(out)
	return out, nil
}
