package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type CardType string

const (
	CardCredit CardType = "Credit"
	CardDebit  CardType = "Debit"
)

// Card is either a credit line with its own balance or a debit card whose
// money movements happen against the linked bank account.
type Card struct {
	Type    CardType        `json:"type"`
	Limit   decimal.Decimal `json:"limit"`
	Balance decimal.Decimal `json:"balance"`
	History []string        `json:"history,omitempty"`
}

func NewCreditCard(limit decimal.Decimal) *Card {
	return &Card{Type: CardCredit, Limit: limit, Balance: decimal.Zero}
}

func NewDebitCard() *Card {
	return &Card{Type: CardDebit, Limit: decimal.Zero, Balance: decimal.Zero}
}

// Available is the unused credit line. Debit cards report zero.
func (c *Card) Available() decimal.Decimal {
	if c.Type != CardCredit {
		return decimal.Zero
	}
	return c.Limit.Sub(c.Balance)
}

func (c *Card) CanCharge(amount decimal.Decimal) bool {
	if c.Type != CardCredit {
		return true
	}
	return c.Balance.Add(amount).LessThanOrEqual(c.Limit)
}

func (c *Card) Charge(amount decimal.Decimal) bool {
	if c.Type != CardCredit {
		c.log("Charge: %s", FormatMoney(amount))
		return true
	}
	if !c.CanCharge(amount) {
		return false
	}
	c.Balance = c.Balance.Add(amount)
	c.log("Charge: %s", FormatMoney(amount))
	return true
}

func (c *Card) Pay(amount decimal.Decimal) bool {
	if c.Type != CardCredit {
		return true
	}
	if amount.GreaterThan(c.Balance) {
		return false
	}
	c.Balance = c.Balance.Sub(amount)
	c.log("Payment: %s", FormatMoney(amount))
	return true
}

func (c *Card) log(format string, args ...any) {
	c.History = append(c.History, fmt.Sprintf(format, args...))
}
