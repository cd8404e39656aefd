package game

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

type EventCategory string

const (
	EventPositive EventCategory = "positive"
	EventNegative EventCategory = "negative"
)

// EventContext is the read-only view of the player that effect functions see.
type EventContext struct {
	Salary  decimal.Decimal
	Cash    decimal.Decimal
	OwnsCar bool
}

func (p *Player) eventContext() EventContext {
	return EventContext{
		Salary:  p.Salary,
		Cash:    p.Cash,
		OwnsCar: p.OwnsAsset(finance.AssetCar),
	}
}

// EffectFunc returns the signed cash effect of an event. It must not mutate
// anything besides drawing from rng.
type EffectFunc func(ctx EventContext, rng *rand.Rand) decimal.Decimal

type Event struct {
	Name        string
	Description string
	Effect      EffectFunc
}

type EventPools map[EventCategory][]Event

func flatAmount(low, high int) EffectFunc {
	return func(_ EventContext, rng *rand.Rand) decimal.Decimal {
		return decimal.NewFromInt(int64(randInt(rng, low, high)))
	}
}

func flatCost(low, high int) EffectFunc {
	return func(_ EventContext, rng *rand.Rand) decimal.Decimal {
		return decimal.NewFromInt(-int64(randInt(rng, low, high)))
	}
}

func DefaultEventPools() EventPools {
	return EventPools{
		EventPositive: {
			{Name: "Tax Refund", Description: "You received a tax refund!", Effect: flatAmount(100, 1000)},
			{Name: "Birthday Gift", Description: "You received money as a birthday gift!", Effect: flatAmount(20, 200)},
			{Name: "Found Money", Description: "You found money on the ground!", Effect: flatAmount(5, 50)},
			{Name: "Bonus", Description: "You received a bonus at work!", Effect: workBonus},
		},
		EventNegative: {
			{Name: "Car Repair", Description: "Your car needs repairs.", Effect: carRepair},
			{Name: "Medical Bill", Description: "You have unexpected medical expenses.", Effect: flatCost(50, 5000)},
			{Name: "Lost Wallet", Description: "You lost your wallet!", Effect: lostWallet},
			{Name: "Phone Repair", Description: "Your phone screen cracked.", Effect: flatCost(50, 300)},
		},
	}
}

// workBonus is a whole-dollar share of salary; no salary means no draw.
func workBonus(ctx EventContext, rng *rand.Rand) decimal.Decimal {
	if !ctx.Salary.IsPositive() {
		return decimal.Zero
	}
	share := decimal.NewFromFloat(randUniform(rng, 0.01, 0.1))
	return ctx.Salary.Mul(share).Truncate(0)
}

func carRepair(ctx EventContext, rng *rand.Rand) decimal.Decimal {
	if !ctx.OwnsCar {
		return decimal.Zero
	}
	return decimal.NewFromInt(-int64(randInt(rng, 100, 2000)))
}

func lostWallet(ctx EventContext, _ *rand.Rand) decimal.Decimal {
	return decimal.Min(decimal.NewFromInt(50), ctx.Cash).Neg()
}

// EventDraw is everything the roll decided, before any money moves.
type EventDraw struct {
	Category    EventCategory   `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// RollEvent draws, in order: fire or not, category, event, magnitude.
func RollEvent(pools EventPools, rules Rules, ctx EventContext, rng *rand.Rand) (EventDraw, bool) {
	if rng.Float64() >= rules.EventChance {
		return EventDraw{}, false
	}
	category := EventNegative
	if rng.Float64() < rules.PositiveEventOdds {
		category = EventPositive
	}
	pool := pools[category]
	if len(pool) == 0 {
		return EventDraw{}, false
	}
	event := pool[rng.IntN(len(pool))]
	return EventDraw{
		Category:    category,
		Name:        event.Name,
		Description: event.Description,
		Amount:      event.Effect(ctx, rng),
	}, true
}

type EventOutcome struct {
	Draw    EventDraw       `json:"draw"`
	Cost    decimal.Decimal `json:"cost"`
	Source  PaymentSource   `json:"source,omitempty"`
	Penalty int             `json:"penalty,omitempty"`
	Message string          `json:"message"`
}

// ResolveEvent applies a drawn event. Gains go to cash; costs go through
// cash, bank and credit card before the credit score takes the hit.
func (g *Game) ResolveEvent(draw EventDraw) EventOutcome {
	p := g.Player
	out := EventOutcome{Draw: draw, Cost: decimal.Zero}

	if draw.Amount.IsPositive() {
		p.Cash = p.Cash.Add(draw.Amount)
		out.Message = "You received " + finance.FormatMoney(draw.Amount) + "!"
		return out
	}

	cost := draw.Amount.Abs()
	out.Cost = cost
	out.Source = payFrom(cost, p.expenseSources()...)
	switch out.Source {
	case SourceCash:
		out.Message = "This costs you " + finance.FormatMoney(cost) + ". You paid in cash."
	case SourceBank:
		out.Message = "This costs you " + finance.FormatMoney(cost) + ". You paid using your bank account."
	case SourceCreditCard:
		out.Message = "This costs you " + finance.FormatMoney(cost) + ". You paid using your credit card."
	default:
		out.Penalty = p.penalize(g.Config.Rules.eventPolicy(), g.Config.Rules.CreditScoreFloor)
		out.Message = "This costs you " + finance.FormatMoney(cost) + ". You couldn't afford this expense! Your credit score has been affected."
	}
	return out
}
