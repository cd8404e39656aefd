package game

import (
	"testing"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

// newQuietGame builds a game whose random events never fire.
func newQuietGame(t *testing.T) *Game {
	t.Helper()

	rules := DefaultRules()
	rules.EventChance = 0
	g, err := NewGame(Config{PlayerName: "Alex", Seed: 42, Rules: rules})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func mustLoan(t *testing.T, amount, rate float64, years int) *finance.Loan {
	t.Helper()

	loan, err := finance.NewLoan(finance.LoanPersonal, finance.Dollars(amount), finance.Dollars(rate), years)
	if err != nil {
		t.Fatalf("new loan: %v", err)
	}
	return loan
}
