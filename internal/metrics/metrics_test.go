package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/appengine-ltd/money-smartz/internal/finance"
	"github.com/appengine-ltd/money-smartz/internal/game"
)

func TestCollectorCountsSettlement(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.MonthSettled(game.MonthReport{
		Settlement: game.SettlementReport{
			Income: finance.Dollars(2500),
			Installments: []game.Installment{
				{Kind: game.InstallmentLoan, Source: game.SourceCash},
				{Kind: game.InstallmentLoan, Source: game.SourceNone, Penalty: 20},
				{Kind: game.InstallmentCard, Source: game.SourceNone, Penalty: 30},
			},
		},
		Event: &game.EventOutcome{
			Draw:    game.EventDraw{Category: game.EventNegative, Name: "Medical Bill"},
			Penalty: 15,
		},
	})

	if got := testutil.ToFloat64(c.monthsSettled); got != 1 {
		t.Fatalf("months settled = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.income); got != 2500 {
		t.Fatalf("income = %v, want 2500", got)
	}
	if got := testutil.ToFloat64(c.installments.WithLabelValues("loan", "missed")); got != 1 {
		t.Fatalf("missed loans = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.installments.WithLabelValues("loan", "paid")); got != 1 {
		t.Fatalf("paid loans = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.creditPenalty); got != 65 {
		t.Fatalf("credit penalty = %v, want 65", got)
	}
	if got := testutil.ToFloat64(c.events.WithLabelValues("negative", "Medical Bill")); got != 1 {
		t.Fatalf("events = %v, want 1", got)
	}
}

func TestCollectorIgnoresLiftedEventPenalty(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.MonthSettled(game.MonthReport{
		Settlement: game.SettlementReport{
			Installments: []game.Installment{
				{Kind: game.InstallmentLoan, Source: game.SourceNone, Penalty: 20},
				{Kind: game.InstallmentCard, Source: game.SourceNone, Penalty: 30},
			},
		},
		Event: &game.EventOutcome{
			Draw:    game.EventDraw{Category: game.EventNegative, Name: "Phone Repair"},
			Penalty: -70,
		},
	})

	if got := testutil.ToFloat64(c.creditPenalty); got != 50 {
		t.Fatalf("credit penalty = %v, want 50", got)
	}
}

func TestCollectorObservesRealGame(t *testing.T) {
	c := New(prometheus.NewRegistry())
	rules := game.DefaultRules()
	rules.StartingAge = 64
	g, err := game.NewGame(game.Config{PlayerName: "Pat", Seed: 3, Rules: rules}, game.WithObserver(c))
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if _, err := g.AdvanceMonths(24); err != nil {
		t.Fatalf("advance: %v", err)
	}

	// Born at 64 in January, retirement arrives with the first new year.
	if got := testutil.ToFloat64(c.monthsSettled); got != 12 {
		t.Fatalf("months settled = %v, want 12", got)
	}
	if got := testutil.CollectAndCount(c.gamesEnded); got != 1 {
		t.Fatalf("games ended series = %d, want 1", got)
	}
	if got := testutil.CollectAndCount(c.finalNetWorth); got != 1 {
		t.Fatalf("net worth histogram series = %d, want 1", got)
	}
}
