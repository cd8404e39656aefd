package game

import (
	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

type PaymentSource string

const (
	SourceNone       PaymentSource = ""
	SourceCash       PaymentSource = "cash"
	SourceBank       PaymentSource = "bank"
	SourceCreditCard PaymentSource = "credit_card"
)

func (s PaymentSource) String() string {
	switch s {
	case SourceCash:
		return "cash"
	case SourceBank:
		return "bank account"
	case SourceCreditCard:
		return "credit card"
	default:
		return "nothing"
	}
}

// FundingSource pays an amount in full or not at all.
type FundingSource interface {
	Source() PaymentSource
	Cover(amount decimal.Decimal) bool
}

type cashSource struct{ p *Player }

func (c cashSource) Source() PaymentSource { return SourceCash }

func (c cashSource) Cover(amount decimal.Decimal) bool {
	if c.p.Cash.LessThan(amount) {
		return false
	}
	c.p.Cash = c.p.Cash.Sub(amount)
	return true
}

type bankSource struct{ acct *finance.BankAccount }

func (b bankSource) Source() PaymentSource { return SourceBank }

func (b bankSource) Cover(amount decimal.Decimal) bool {
	return b.acct.Withdraw(amount)
}

type creditSource struct{ card *finance.Card }

func (c creditSource) Source() PaymentSource { return SourceCreditCard }

func (c creditSource) Cover(amount decimal.Decimal) bool {
	return c.card.Charge(amount)
}

// payFrom tries each source in order and stops at the first that covers the
// whole amount. SourceNone means nothing was charged.
func payFrom(amount decimal.Decimal, sources ...FundingSource) PaymentSource {
	for _, s := range sources {
		if s.Cover(amount) {
			return s.Source()
		}
	}
	return SourceNone
}

// installmentSources is cash then bank, used for scheduled payments.
func (p *Player) installmentSources() []FundingSource {
	sources := []FundingSource{cashSource{p: p}}
	if p.BankAccount != nil {
		sources = append(sources, bankSource{acct: p.BankAccount})
	}
	return sources
}

// expenseSources extends installmentSources with the credit card.
func (p *Player) expenseSources() []FundingSource {
	sources := p.installmentSources()
	if p.CreditCard != nil {
		sources = append(sources, creditSource{card: p.CreditCard})
	}
	return sources
}

// sourceByName resolves a single named source for purchases.
func (p *Player) sourceByName(source PaymentSource) (FundingSource, error) {
	switch source {
	case SourceCash:
		return cashSource{p: p}, nil
	case SourceBank:
		if p.BankAccount == nil {
			return nil, ErrNoBankAccount
		}
		return bankSource{acct: p.BankAccount}, nil
	case SourceCreditCard:
		if p.CreditCard == nil {
			return nil, ErrNoCreditCard
		}
		return creditSource{card: p.CreditCard}, nil
	default:
		return nil, ErrUnknownSource
	}
}
