package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CreditPolicy is how a failed payment hits the credit score.
type CreditPolicy struct {
	Penalty int
	Clamp   bool
}

// Rules collects the tunable constants of the simulation.
type Rules struct {
	StartingAge         int             `json:"starting_age"`
	StartingCash        decimal.Decimal `json:"starting_cash"`
	StartingCreditScore int             `json:"starting_credit_score"`
	StartingEducation   string          `json:"starting_education"`

	AutoDepositShare decimal.Decimal `json:"auto_deposit_share"`

	MissedLoanPenalty   int  `json:"missed_loan_penalty"`
	MissedCardPenalty   int  `json:"missed_card_penalty"`
	UnpaidEventPenalty  int  `json:"unpaid_event_penalty"`
	CreditScoreFloor    int  `json:"credit_score_floor"`
	ClampMissedPayments bool `json:"clamp_missed_payments"`

	CardMinimumPayment decimal.Decimal `json:"card_minimum_payment"`
	CardMinimumShare   decimal.Decimal `json:"card_minimum_share"`
	// CapCardMinimum limits the card minimum to the outstanding balance.
	// Off, a minimum above the balance is still collected and the card
	// refuses the overpayment, so the money is lost.
	CapCardMinimum bool `json:"cap_card_minimum"`

	// SkipPaidOffLoans stops billing loans whose balance has reached zero.
	SkipPaidOffLoans bool `json:"skip_paid_off_loans"`

	EventChance       float64 `json:"event_chance"`
	PositiveEventOdds float64 `json:"positive_event_odds"`

	RetirementAge int `json:"retirement_age"`

	CreditCardMinAge   int `json:"credit_card_min_age"`
	CreditCardMinScore int `json:"credit_card_min_score"`
}

func DefaultRules() Rules {
	return Rules{
		StartingAge:         16,
		StartingCash:        decimal.NewFromInt(50),
		StartingCreditScore: 650,
		StartingEducation:   "High School",
		AutoDepositShare:    decimal.RequireFromString("0.8"),
		MissedLoanPenalty:   20,
		MissedCardPenalty:   30,
		UnpaidEventPenalty:  15,
		CreditScoreFloor:    300,
		CardMinimumPayment:  decimal.NewFromInt(25),
		CardMinimumShare:    decimal.RequireFromString("0.03"),
		EventChance:         0.3,
		PositiveEventOdds:   0.5,
		RetirementAge:       65,
		CreditCardMinAge:    18,
		CreditCardMinScore:  600,
	}
}

func (r Rules) Validate() error {
	if r.StartingAge < 0 || r.StartingAge >= r.RetirementAge {
		return fmt.Errorf("starting age must be between 0 and retirement age %d, got %d", r.RetirementAge, r.StartingAge)
	}
	if r.AutoDepositShare.IsNegative() || r.AutoDepositShare.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("auto deposit share must be within [0, 1], got %s", r.AutoDepositShare)
	}
	if r.EventChance < 0 || r.EventChance > 1 {
		return fmt.Errorf("event chance must be within [0, 1], got %v", r.EventChance)
	}
	if r.PositiveEventOdds < 0 || r.PositiveEventOdds > 1 {
		return fmt.Errorf("positive event odds must be within [0, 1], got %v", r.PositiveEventOdds)
	}
	if r.MissedLoanPenalty < 0 || r.MissedCardPenalty < 0 || r.UnpaidEventPenalty < 0 {
		return fmt.Errorf("credit penalties cannot be negative")
	}
	return nil
}

func (r Rules) loanPolicy() CreditPolicy {
	return CreditPolicy{Penalty: r.MissedLoanPenalty, Clamp: r.ClampMissedPayments}
}

func (r Rules) cardPolicy() CreditPolicy {
	return CreditPolicy{Penalty: r.MissedCardPenalty, Clamp: r.ClampMissedPayments}
}

func (r Rules) eventPolicy() CreditPolicy {
	return CreditPolicy{Penalty: r.UnpaidEventPenalty, Clamp: true}
}
