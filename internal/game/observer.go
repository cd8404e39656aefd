package game

// Observer hears about every settled month, resolved event and finished game.
type Observer interface {
	MonthSettled(report MonthReport)
	GameEnded(outcome Outcome)
}

type nopObserver struct{}

func (nopObserver) MonthSettled(MonthReport) {}
func (nopObserver) GameEnded(Outcome)        {}
