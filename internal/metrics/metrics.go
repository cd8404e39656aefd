// Package metrics exports simulation activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/appengine-ltd/money-smartz/internal/game"
)

const namespace = "moneysmartz"

var _ game.Observer = (*Collector)(nil)

// Collector is a game.Observer. One Collector can watch any number of games
// at once.
type Collector struct {
	monthsSettled prometheus.Counter
	income        prometheus.Counter
	installments  *prometheus.CounterVec
	creditPenalty prometheus.Counter
	events        *prometheus.CounterVec
	gamesEnded    *prometheus.CounterVec
	finalNetWorth prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// binaries and a fresh registry in tests.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		monthsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "months_settled_total",
			Help:      "Months advanced across all games.",
		}),
		income: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "income_dollars_total",
			Help:      "Salary paid out by settlement.",
		}),
		installments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installments_total",
			Help:      "Scheduled payments by kind and whether they were paid.",
		}, []string{"kind", "result"}),
		creditPenalty: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_penalty_points_total",
			Help:      "Credit score points lost to missed payments and unpaid events.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Random life events fired, by category and name.",
		}, []string{"category", "name"}),
		gamesEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_ended_total",
			Help:      "Finished games by end reason and rating.",
		}, []string{"reason", "rating"}),
		finalNetWorth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_net_worth_dollars",
			Help:      "Net worth at the end of a game.",
			Buckets:   []float64{-100_000, -10_000, 0, 10_000, 100_000, 500_000, 1_000_000},
		}),
	}
	reg.MustRegister(
		c.monthsSettled,
		c.income,
		c.installments,
		c.creditPenalty,
		c.events,
		c.gamesEnded,
		c.finalNetWorth,
	)
	return c
}

func (c *Collector) MonthSettled(report game.MonthReport) {
	c.monthsSettled.Inc()
	s := report.Settlement
	if s.Income.IsPositive() {
		c.income.Add(s.Income.InexactFloat64())
	}
	if penalty := s.CreditPenalty(); penalty > 0 {
		c.creditPenalty.Add(float64(penalty))
	}
	for _, inst := range s.Installments {
		result := "paid"
		if inst.Missed() {
			result = "missed"
		}
		c.installments.WithLabelValues(string(inst.Kind), result).Inc()
	}
	if ev := report.Event; ev != nil {
		c.events.WithLabelValues(string(ev.Draw.Category), ev.Draw.Name).Inc()
		// A clamped event can raise a score already below the floor; that
		// shows up as a negative penalty and is not counted.
		if ev.Penalty > 0 {
			c.creditPenalty.Add(float64(ev.Penalty))
		}
	}
}

func (c *Collector) GameEnded(outcome game.Outcome) {
	rating := "unknown"
	if outcome.Summary != nil {
		rating = outcome.Summary.Rating.String()
		c.finalNetWorth.Observe(outcome.Summary.NetWorth.InexactFloat64())
	}
	c.gamesEnded.WithLabelValues(string(outcome.Reason), rating).Inc()
}
