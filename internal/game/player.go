package game

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

type FamilyMember struct {
	Relation string `json:"relation"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
}

// Player owns every account, card, loan and asset it references.
type Player struct {
	Name        string               `json:"name"`
	Age         int                  `json:"age"`
	Education   string               `json:"education"`
	Job         string               `json:"job,omitempty"`
	Salary      decimal.Decimal      `json:"salary"`
	Cash        decimal.Decimal      `json:"cash"`
	BankAccount *finance.BankAccount `json:"bank_account,omitempty"`
	CreditCard  *finance.Card        `json:"credit_card,omitempty"`
	DebitCard   *finance.Card        `json:"debit_card,omitempty"`
	CreditScore int                  `json:"credit_score"`
	Assets      []*finance.Asset     `json:"assets,omitempty"`
	Loans       []*finance.Loan      `json:"loans,omitempty"`
	Family      []FamilyMember       `json:"family,omitempty"`
	LifeEvents  []string             `json:"life_events,omitempty"`
}

func NewPlayer(name string, rules Rules) *Player {
	return &Player{
		Name:        name,
		Age:         rules.StartingAge,
		Education:   rules.StartingEducation,
		Salary:      decimal.Zero,
		Cash:        rules.StartingCash,
		CreditScore: rules.StartingCreditScore,
	}
}

func (p *Player) HasJob() bool {
	return p.Job != ""
}

func (p *Player) OwnsAsset(assetType finance.AssetType) bool {
	for _, a := range p.Assets {
		if a.Type == assetType {
			return true
		}
	}
	return false
}

func (p *Player) BankBalance() decimal.Decimal {
	if p.BankAccount == nil {
		return decimal.Zero
	}
	return p.BankAccount.Balance
}

func (p *Player) CardDebt() decimal.Decimal {
	if p.CreditCard == nil {
		return decimal.Zero
	}
	return p.CreditCard.Balance
}

func (p *Player) LoanDebt() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Loans {
		total = total.Add(l.CurrentBalance)
	}
	return total
}

func (p *Player) AssetValue() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Assets {
		total = total.Add(a.CurrentValue)
	}
	return total
}

// NetWorth is cash + bank + assets - card debt - loan balances.
func (p *Player) NetWorth() decimal.Decimal {
	return p.Cash.
		Add(p.BankBalance()).
		Sub(p.CardDebt()).
		Sub(p.LoanDebt()).
		Add(p.AssetValue())
}

// penalize lowers the credit score and reports the points actually lost.
func (p *Player) penalize(policy CreditPolicy, floor int) int {
	before := p.CreditScore
	p.CreditScore -= policy.Penalty
	if policy.Clamp {
		p.CreditScore = max(floor, p.CreditScore)
	}
	return before - p.CreditScore
}

func (p *Player) recordLifeEvent(year, month int, format string, args ...any) {
	p.LifeEvents = append(p.LifeEvents, fmt.Sprintf("Y%d M%02d: %s", year, month, fmt.Sprintf(format, args...)))
}

func (p *Player) findAsset(name string) (int, *finance.Asset) {
	for i, a := range p.Assets {
		if strings.EqualFold(a.Name, name) {
			return i, a
		}
	}
	return -1, nil
}
