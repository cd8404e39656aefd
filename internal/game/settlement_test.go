package game

import (
	"testing"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

func TestIdleSettlementIsNoOp(t *testing.T) {
	g := newQuietGame(t)
	before := *g.Player

	report := g.ProcessMonthlyFinances()

	if !g.Player.Cash.Equal(before.Cash) || !g.Player.Cash.Equal(finance.Dollars(50)) {
		t.Fatalf("cash changed on idle tick: %s", g.Player.Cash)
	}
	if g.Player.CreditScore != 650 {
		t.Fatalf("credit score changed on idle tick: %d", g.Player.CreditScore)
	}
	if len(report.Installments) != 0 || !report.Income.IsZero() {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

func TestSalaryAutoDepositsEightyPercent(t *testing.T) {
	g := newQuietGame(t)
	p := g.Player
	p.Job = "Barista"
	p.Salary = finance.Dollars(12000)
	p.BankAccount = finance.NewBankAccount(finance.AccountSavings)

	report := g.ProcessMonthlyFinances()

	if !p.Cash.Equal(finance.Dollars(250)) {
		t.Fatalf("cash = %s, want 250", p.Cash)
	}
	if !p.BankAccount.Balance.Equal(finance.Dollars(800)) {
		t.Fatalf("bank = %s, want 800", p.BankAccount.Balance)
	}
	if !report.Income.Equal(finance.Dollars(1000)) || !report.AutoDeposit.Equal(finance.Dollars(800)) {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestSalaryWithoutBankStaysInCash(t *testing.T) {
	g := newQuietGame(t)
	g.Player.Job = "Cashier"
	g.Player.Salary = finance.Dollars(24000)

	g.ProcessMonthlyFinances()

	if !g.Player.Cash.Equal(finance.Dollars(2050)) {
		t.Fatalf("cash = %s, want 2050", g.Player.Cash)
	}
}

func TestIncomeFundsLoanInSameMonth(t *testing.T) {
	g := newQuietGame(t)
	p := g.Player
	p.Job = "Barista"
	p.Salary = finance.Dollars(12000)
	p.BankAccount = finance.NewBankAccount(finance.AccountSavings)
	loan := mustLoan(t, 2000, 0.05, 1)
	p.Loans = append(p.Loans, loan)

	report := g.ProcessMonthlyFinances()

	wantCash := finance.Dollars(250).Sub(loan.MonthlyPayment)
	if !p.Cash.Equal(wantCash) {
		t.Fatalf("cash = %s, want %s", p.Cash, wantCash)
	}
	if !p.BankAccount.Balance.Equal(finance.Dollars(800)) {
		t.Fatalf("bank = %s, want 800", p.BankAccount.Balance)
	}
	if len(report.Installments) != 1 || report.Installments[0].Source != SourceCash {
		t.Fatalf("expected one cash installment, got %+v", report.Installments)
	}
	if !loan.CurrentBalance.LessThan(finance.Dollars(2000)) {
		t.Fatalf("loan balance did not go down: %s", loan.CurrentBalance)
	}
}

func TestLoanFallsBackToBank(t *testing.T) {
	g := newQuietGame(t)
	p := g.Player
	p.Cash = finance.Dollars(10)
	p.BankAccount = finance.NewBankAccount(finance.AccountChecking)
	p.BankAccount.Deposit(finance.Dollars(1000))
	loan := mustLoan(t, 1200, 0, 1)
	p.Loans = append(p.Loans, loan)

	report := g.ProcessMonthlyFinances()

	if report.Installments[0].Source != SourceBank {
		t.Fatalf("expected bank payment, got %q", report.Installments[0].Source)
	}
	if !p.BankAccount.Balance.Equal(finance.Dollars(900)) {
		t.Fatalf("bank = %s, want 900", p.BankAccount.Balance)
	}
	if !p.Cash.Equal(finance.Dollars(10)) {
		t.Fatalf("cash should be untouched, got %s", p.Cash)
	}
}

func TestMissedLoanPaymentIsUnclamped(t *testing.T) {
	g := newQuietGame(t)
	p := g.Player
	p.Cash = finance.Dollars(0)
	p.CreditScore = 310
	p.Loans = append(p.Loans, mustLoan(t, 5000, 0.05, 5))

	for i := 0; i < 3; i++ {
		report := g.ProcessMonthlyFinances()
		if report.CreditPenalty() != 20 {
			t.Fatalf("tick %d: penalty = %d, want 20", i, report.CreditPenalty())
		}
	}
	if p.CreditScore != 250 {
		t.Fatalf("credit score = %d, want 250 (no floor)", p.CreditScore)
	}
}

func TestMissedPaymentClampWhenConfigured(t *testing.T) {
	rules := DefaultRules()
	rules.EventChance = 0
	rules.ClampMissedPayments = true
	g, err := NewGame(Config{PlayerName: "Alex", Seed: 1, Rules: rules})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	p := g.Player
	p.Cash = finance.Dollars(0)
	p.CreditScore = 310
	p.Loans = append(p.Loans, mustLoan(t, 5000, 0.05, 5))

	g.ProcessMonthlyFinances()
	g.ProcessMonthlyFinances()

	if p.CreditScore != 300 {
		t.Fatalf("credit score = %d, want floor 300", p.CreditScore)
	}
}

func TestLoansServicedInOrder(t *testing.T) {
	g := newQuietGame(t)
	p := g.Player
	first := mustLoan(t, 1200, 0, 1)
	second := mustLoan(t, 600, 0, 1)
	p.Loans = append(p.Loans, first, second)
	p.Cash = finance.Dollars(120)

	report := g.ProcessMonthlyFinances()

	if report.Installments[0].Missed() {
		t.Fatalf("first loan should be paid first")
	}
	if !report.Installments[1].Missed() {
		t.Fatalf("second loan should be missed once cash runs out")
	}
	if !p.Cash.Equal(finance.Dollars(20)) {
		t.Fatalf("cash = %s, want 20", p.Cash)
	}
	if p.CreditScore != 630 {
		t.Fatalf("credit score = %d, want 630", p.CreditScore)
	}
}

func TestPaidOffLoanBilling(t *testing.T) {
	tests := []struct {
		name      string
		skip      bool
		wantInsts int
		wantScore int
	}{
		{name: "billed like any other loan", skip: false, wantInsts: 1, wantScore: 630},
		{name: "skipped when configured", skip: true, wantInsts: 0, wantScore: 650},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newQuietGame(t)
			g.Config.Rules.SkipPaidOffLoans = tt.skip
			g.Player.Cash = finance.Dollars(0)
			loan := mustLoan(t, 1200, 0, 1)
			loan.CurrentBalance = finance.Dollars(0)
			g.Player.Loans = append(g.Player.Loans, loan)

			report := g.ProcessMonthlyFinances()

			if len(report.Installments) != tt.wantInsts {
				t.Fatalf("installments = %+v, want %d", report.Installments, tt.wantInsts)
			}
			if g.Player.CreditScore != tt.wantScore {
				t.Fatalf("credit score = %d, want %d", g.Player.CreditScore, tt.wantScore)
			}
		})
	}
}

func TestCreditCardMinimumPayment(t *testing.T) {
	tests := []struct {
		name        string
		balance     float64
		capped      bool
		wantMinimum float64
	}{
		{name: "three percent of a large balance", balance: 2000, wantMinimum: 60},
		{name: "floor of twenty five", balance: 500, wantMinimum: 25},
		{name: "capped at a tiny balance", balance: 10, capped: true, wantMinimum: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newQuietGame(t)
			g.Config.Rules.CapCardMinimum = tt.capped
			p := g.Player
			p.Cash = finance.Dollars(1000)
			p.CreditCard = finance.NewCreditCard(finance.Dollars(5000))
			p.CreditCard.Charge(finance.Dollars(tt.balance))

			report := g.ProcessMonthlyFinances()

			if len(report.Installments) != 1 {
				t.Fatalf("expected one card installment, got %+v", report.Installments)
			}
			if !report.Installments[0].Amount.Equal(finance.Dollars(tt.wantMinimum)) {
				t.Fatalf("minimum = %s, want %v", report.Installments[0].Amount, tt.wantMinimum)
			}
			wantBalance := finance.Dollars(tt.balance - tt.wantMinimum)
			if !p.CreditCard.Balance.Equal(wantBalance) {
				t.Fatalf("card balance = %s, want %s", p.CreditCard.Balance, wantBalance)
			}
		})
	}
}

func TestUncappedMinimumOnTinyBalance(t *testing.T) {
	t.Run("unaffordable minimum is missed", func(t *testing.T) {
		g := newQuietGame(t)
		p := g.Player
		p.Cash = finance.Dollars(15)
		p.CreditCard = finance.NewCreditCard(finance.Dollars(500))
		p.CreditCard.Charge(finance.Dollars(10))

		report := g.ProcessMonthlyFinances()

		if !report.Installments[0].Amount.Equal(finance.Dollars(25)) || !report.Installments[0].Missed() {
			t.Fatalf("unexpected installment %+v", report.Installments[0])
		}
		if p.CreditScore != 620 {
			t.Fatalf("credit score = %d, want 620", p.CreditScore)
		}
		if !p.Cash.Equal(finance.Dollars(15)) {
			t.Fatalf("cash = %s, want 15", p.Cash)
		}
	})

	t.Run("overpayment is collected and refused", func(t *testing.T) {
		g := newQuietGame(t)
		p := g.Player
		p.Cash = finance.Dollars(100)
		p.CreditCard = finance.NewCreditCard(finance.Dollars(500))
		p.CreditCard.Charge(finance.Dollars(10))

		report := g.ProcessMonthlyFinances()

		inst := report.Installments[0]
		if inst.Source != SourceCash || !inst.Refused {
			t.Fatalf("unexpected installment %+v", inst)
		}
		if !p.Cash.Equal(finance.Dollars(75)) {
			t.Fatalf("cash = %s, want 75", p.Cash)
		}
		if !p.CreditCard.Balance.Equal(finance.Dollars(10)) {
			t.Fatalf("card balance = %s, want 10", p.CreditCard.Balance)
		}
		if p.CreditScore != 650 {
			t.Fatalf("credit score = %d, want 650", p.CreditScore)
		}
	})
}

func TestMissedCardPaymentCostsThirty(t *testing.T) {
	g := newQuietGame(t)
	p := g.Player
	p.Cash = finance.Dollars(5)
	p.CreditCard = finance.NewCreditCard(finance.Dollars(1000))
	p.CreditCard.Charge(finance.Dollars(800))

	g.ProcessMonthlyFinances()

	if p.CreditScore != 620 {
		t.Fatalf("credit score = %d, want 620", p.CreditScore)
	}
	if !p.CreditCard.Balance.Equal(finance.Dollars(800)) {
		t.Fatalf("card balance changed on missed payment: %s", p.CreditCard.Balance)
	}
}
