package game

import (
	"github.com/shopspring/decimal"
)

type InstallmentKind string

const (
	InstallmentLoan InstallmentKind = "loan"
	InstallmentCard InstallmentKind = "credit_card"
)

type Installment struct {
	Kind    InstallmentKind `json:"kind"`
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
	Source  PaymentSource   `json:"source,omitempty"`
	Penalty int             `json:"penalty,omitempty"`
	// Refused marks a payment that was collected but not applied because it
	// exceeded the card balance.
	Refused bool `json:"refused,omitempty"`
}

func (i Installment) Missed() bool {
	return i.Source == SourceNone
}

type SettlementReport struct {
	Income       decimal.Decimal `json:"income"`
	AutoDeposit  decimal.Decimal `json:"auto_deposit"`
	Installments []Installment   `json:"installments,omitempty"`
}

func (r SettlementReport) CreditPenalty() int {
	total := 0
	for _, i := range r.Installments {
		total += i.Penalty
	}
	return total
}

// ProcessMonthlyFinances runs one settlement tick: income first, then loans in
// the order they were taken, then the credit card minimum.
func (g *Game) ProcessMonthlyFinances() SettlementReport {
	p := g.Player
	rules := g.Config.Rules
	report := SettlementReport{Income: decimal.Zero, AutoDeposit: decimal.Zero}

	if p.HasJob() {
		income := p.Salary.Div(twelve)
		p.Cash = p.Cash.Add(income)
		report.Income = income
		if p.BankAccount != nil {
			share := income.Mul(rules.AutoDepositShare)
			p.BankAccount.Deposit(share)
			p.Cash = p.Cash.Sub(share)
			report.AutoDeposit = share
		}
	}

	for _, loan := range p.Loans {
		if rules.SkipPaidOffLoans && loan.PaidOff() {
			continue
		}
		inst := Installment{Kind: InstallmentLoan, Label: loan.Type, Amount: loan.MonthlyPayment}
		inst.Source = payFrom(loan.MonthlyPayment, p.installmentSources()...)
		if inst.Missed() {
			inst.Penalty = p.penalize(rules.loanPolicy(), rules.CreditScoreFloor)
		} else {
			loan.MakePayment(loan.MonthlyPayment)
		}
		report.Installments = append(report.Installments, inst)
	}

	if card := p.CreditCard; card != nil && card.Balance.IsPositive() {
		minimum := decimal.Max(rules.CardMinimumPayment, card.Balance.Mul(rules.CardMinimumShare))
		if rules.CapCardMinimum {
			minimum = decimal.Min(minimum, card.Balance)
		}
		inst := Installment{Kind: InstallmentCard, Label: "Credit card minimum", Amount: minimum}
		inst.Source = payFrom(minimum, p.installmentSources()...)
		if inst.Missed() {
			inst.Penalty = p.penalize(rules.cardPolicy(), rules.CreditScoreFloor)
		} else {
			inst.Refused = !card.Pay(minimum)
		}
		report.Installments = append(report.Installments, inst)
	}

	return report
}

var twelve = decimal.NewFromInt(12)
