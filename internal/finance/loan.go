package finance

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	LoanStudent  = "Student"
	LoanAuto     = "Auto"
	LoanMortgage = "Mortgage"
	LoanPersonal = "Personal"
)

// Loan carries a fixed monthly payment computed once when the loan is opened.
type Loan struct {
	Type           string          `json:"type"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TermYears      int             `json:"term_years"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	History        []string        `json:"history,omitempty"`
}

func NewLoan(loanType string, amount, annualRate decimal.Decimal, termYears int) (*Loan, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("loan amount must be positive, got %s", amount)
	}
	if annualRate.IsNegative() {
		return nil, fmt.Errorf("interest rate cannot be negative, got %s", annualRate)
	}
	if termYears <= 0 {
		return nil, fmt.Errorf("loan term must be at least one year, got %d", termYears)
	}
	l := &Loan{
		Type:           loanType,
		OriginalAmount: amount,
		CurrentBalance: amount,
		InterestRate:   annualRate,
		TermYears:      termYears,
	}
	l.MonthlyPayment = l.CalculatePayment()
	return l, nil
}

// CalculatePayment is the standard amortized installment
// p*r / (1 - (1+r)^-n) with r the monthly rate and n the number of months.
// A zero rate degenerates to p/n.
func (l *Loan) CalculatePayment() decimal.Decimal {
	n := l.TermYears * 12
	if n <= 0 {
		return l.OriginalAmount
	}
	if l.InterestRate.IsZero() {
		return l.OriginalAmount.Div(decimal.NewFromInt(int64(n)))
	}
	p := l.OriginalAmount.InexactFloat64()
	r := l.InterestRate.InexactFloat64() / 12
	return decimal.NewFromFloat(p * r / (1 - math.Pow(1+r, -float64(n))))
}

// MakePayment treats monthly_payment*rate/12 of every installment as interest
// and the remainder as principal. This is deliberately not a recomputed
// amortization schedule.
func (l *Loan) MakePayment(amount decimal.Decimal) bool {
	if amount.LessThan(l.MonthlyPayment) {
		return false
	}
	interest := l.MonthlyPayment.Mul(l.InterestRate).Div(twelve)
	l.CurrentBalance = l.CurrentBalance.Sub(amount.Sub(interest))
	l.History = append(l.History, fmt.Sprintf("Payment: %s", FormatMoney(amount)))
	return true
}

func (l *Loan) PaidOff() bool {
	return !l.CurrentBalance.IsPositive()
}
