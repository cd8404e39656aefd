package game

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

func rollSequence(seed int64, n int) []EventDraw {
	rng := rand.New(seededSource(seed))
	ctx := EventContext{Salary: finance.Dollars(40000), Cash: finance.Dollars(30), OwnsCar: true}
	out := make([]EventDraw, 0, n)
	for i := 0; i < n; i++ {
		draw, fired := RollEvent(DefaultEventPools(), DefaultRules(), ctx, rng)
		if !fired {
			out = append(out, EventDraw{})
			continue
		}
		out = append(out, draw)
	}
	return out
}

func TestRollEventDeterministicUnderSeed(t *testing.T) {
	a := rollSequence(777, 500)
	b := rollSequence(777, 500)
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Category != b[i].Category || !a[i].Amount.Equal(b[i].Amount) {
			t.Fatalf("sequence diverged at %d: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestRollEventFireRateAndCategories(t *testing.T) {
	draws := rollSequence(2024, 2000)
	fired := 0
	categories := map[EventCategory]int{}
	for _, d := range draws {
		if d.Name == "" {
			continue
		}
		fired++
		categories[d.Category]++
	}
	rate := float64(fired) / float64(len(draws))
	if rate < 0.25 || rate > 0.35 {
		t.Fatalf("fire rate %.3f far from 0.30", rate)
	}
	if categories[EventPositive] == 0 || categories[EventNegative] == 0 {
		t.Fatalf("expected both categories, got %v", categories)
	}
}

func TestRollEventNeverFiresAtZeroChance(t *testing.T) {
	rules := DefaultRules()
	rules.EventChance = 0
	rng := rand.New(seededSource(5))
	for i := 0; i < 100; i++ {
		if _, fired := RollEvent(DefaultEventPools(), rules, EventContext{}, rng); fired {
			t.Fatalf("event fired with zero chance")
		}
	}
}

func TestEventEffectsRespectConditions(t *testing.T) {
	rng := rand.New(seededSource(9))
	broke := EventContext{Salary: decimal.Zero, Cash: finance.Dollars(20), OwnsCar: false}

	if got := carRepair(broke, rng); !got.IsZero() {
		t.Fatalf("car repair without a car = %s, want 0", got)
	}
	if got := workBonus(broke, rng); !got.IsZero() {
		t.Fatalf("bonus without salary = %s, want 0", got)
	}
	if got := lostWallet(broke, rng); !got.Equal(finance.Dollars(-20)) {
		t.Fatalf("lost wallet with $20 = %s, want -20", got)
	}
	rich := EventContext{Salary: finance.Dollars(50000), Cash: finance.Dollars(500), OwnsCar: true}
	if got := lostWallet(rich, rng); !got.Equal(finance.Dollars(-50)) {
		t.Fatalf("lost wallet with $500 = %s, want -50", got)
	}
	for i := 0; i < 200; i++ {
		repair := carRepair(rich, rng)
		if repair.GreaterThan(finance.Dollars(-100)) || repair.LessThan(finance.Dollars(-2000)) {
			t.Fatalf("car repair %s outside [-2000, -100]", repair)
		}
		bonus := workBonus(rich, rng)
		if bonus.LessThan(finance.Dollars(500)) || bonus.GreaterThan(finance.Dollars(5000)) {
			t.Fatalf("bonus %s outside [500, 5000]", bonus)
		}
		if !bonus.Equal(bonus.Truncate(0)) {
			t.Fatalf("bonus %s should be whole dollars", bonus)
		}
	}
}

func TestFlatAmountsStayInRange(t *testing.T) {
	rng := rand.New(seededSource(11))
	gift := flatAmount(20, 200)
	bill := flatCost(50, 5000)
	for i := 0; i < 500; i++ {
		g := gift(EventContext{}, rng)
		if g.LessThan(finance.Dollars(20)) || g.GreaterThan(finance.Dollars(200)) {
			t.Fatalf("gift %s outside [20, 200]", g)
		}
		b := bill(EventContext{}, rng)
		if b.GreaterThan(finance.Dollars(-50)) || b.LessThan(finance.Dollars(-5000)) {
			t.Fatalf("bill %s outside [-5000, -50]", b)
		}
	}
}

func TestResolveEventPaymentCascade(t *testing.T) {
	tests := []struct {
		name        string
		cash        float64
		bank        float64
		cardLimit   float64
		score       int
		cost        float64
		wantSource  PaymentSource
		wantScore   int
		wantCash    float64
		wantBank    float64
		wantCardBal float64
	}{
		{name: "cash first", cash: 500, bank: 500, cardLimit: 500, score: 650, cost: 200, wantSource: SourceCash, wantScore: 650, wantCash: 300, wantBank: 500},
		{name: "bank second", cash: 100, bank: 500, cardLimit: 500, score: 650, cost: 200, wantSource: SourceBank, wantScore: 650, wantCash: 100, wantBank: 300},
		{name: "card third", cash: 100, bank: 100, cardLimit: 500, score: 650, cost: 200, wantSource: SourceCreditCard, wantScore: 650, wantCash: 100, wantBank: 100, wantCardBal: 200},
		{name: "unaffordable hits score", cash: 100, bank: 100, cardLimit: 150, score: 650, cost: 200, wantSource: SourceNone, wantScore: 635, wantCash: 100, wantBank: 100},
		{name: "score clamps at floor", cash: 0, bank: 0, cardLimit: 0, score: 305, cost: 200, wantSource: SourceNone, wantScore: 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newQuietGame(t)
			p := g.Player
			p.Cash = finance.Dollars(tt.cash)
			p.CreditScore = tt.score
			p.BankAccount = finance.NewBankAccount(finance.AccountChecking)
			p.BankAccount.Deposit(finance.Dollars(tt.bank))
			p.CreditCard = finance.NewCreditCard(finance.Dollars(tt.cardLimit))

			out := g.ResolveEvent(EventDraw{Category: EventNegative, Name: "Medical Bill", Amount: finance.Dollars(-tt.cost)})

			if out.Source != tt.wantSource {
				t.Fatalf("source = %q, want %q", out.Source, tt.wantSource)
			}
			if p.CreditScore != tt.wantScore {
				t.Fatalf("credit score = %d, want %d", p.CreditScore, tt.wantScore)
			}
			if !p.Cash.Equal(finance.Dollars(tt.wantCash)) {
				t.Fatalf("cash = %s, want %v", p.Cash, tt.wantCash)
			}
			if !p.BankAccount.Balance.Equal(finance.Dollars(tt.wantBank)) {
				t.Fatalf("bank = %s, want %v", p.BankAccount.Balance, tt.wantBank)
			}
			if !p.CreditCard.Balance.Equal(finance.Dollars(tt.wantCardBal)) {
				t.Fatalf("card = %s, want %v", p.CreditCard.Balance, tt.wantCardBal)
			}
		})
	}
}

func TestResolvePositiveEventAddsCash(t *testing.T) {
	g := newQuietGame(t)
	out := g.ResolveEvent(EventDraw{Category: EventPositive, Name: "Tax Refund", Amount: finance.Dollars(400)})
	if !g.Player.Cash.Equal(finance.Dollars(450)) {
		t.Fatalf("cash = %s, want 450", g.Player.Cash)
	}
	if out.Message != "You received $400.00!" {
		t.Fatalf("message = %q", out.Message)
	}
}
