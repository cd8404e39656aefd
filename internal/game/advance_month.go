package game

import (
	"log/slog"

	"github.com/shopspring/decimal"
)

type MonthReport struct {
	Month      int              `json:"month"`
	Year       int              `json:"year"`
	NewYear    bool             `json:"new_year,omitempty"`
	Interest   decimal.Decimal  `json:"interest"`
	Settlement SettlementReport `json:"settlement"`
	Event      *EventOutcome    `json:"event,omitempty"`
	Outcome    Outcome          `json:"outcome"`
}

// AdvanceMonth moves the calendar forward one month. A new year ages the
// player, credits savings interest and revalues assets before the month is
// settled. The event roll and the retirement check follow settlement.
func (g *Game) AdvanceMonth() (MonthReport, error) {
	if g.Over {
		return MonthReport{}, ErrGameOver
	}
	p := g.Player
	report := MonthReport{Interest: decimal.Zero}

	g.Month++
	if g.Month > 12 {
		g.Month = 1
		g.Year++
		report.NewYear = true
		g.advanceYear(&report)
	}
	report.Month = g.Month
	report.Year = g.Year

	report.Settlement = g.ProcessMonthlyFinances()

	if draw, fired := RollEvent(g.pools, g.Config.Rules, p.eventContext(), g.rng); fired {
		outcome := g.ResolveEvent(draw)
		report.Event = &outcome
		p.recordLifeEvent(g.Year, g.Month, "%s: %s", draw.Name, outcome.Message)
	}

	report.Outcome = g.checkLifeStage()

	slog.Debug("month settled",
		"player", p.Name,
		"year", g.Year,
		"month", g.Month,
		"cash", p.Cash.StringFixed(2),
		"credit_score", p.CreditScore,
		"event", report.Event != nil,
	)
	g.observer.MonthSettled(report)
	if report.Outcome.Finished() {
		g.observer.GameEnded(report.Outcome)
	}
	return report, nil
}

func (g *Game) advanceYear(report *MonthReport) {
	p := g.Player
	p.Age++
	for i := range p.Family {
		p.Family[i].Age++
	}
	if p.BankAccount != nil {
		report.Interest = p.BankAccount.ApplyInterest()
	}
	for _, a := range p.Assets {
		a.AgeOneYear(g.rng)
	}
}

// AdvanceMonths stops early when the game ends.
func (g *Game) AdvanceMonths(n int) ([]MonthReport, error) {
	reports := make([]MonthReport, 0, n)
	for i := 0; i < n; i++ {
		r, err := g.AdvanceMonth()
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
		if r.Outcome.Finished() {
			break
		}
	}
	return reports, nil
}
