package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking AccountType = "Checking"
	AccountSavings  AccountType = "Savings"
)

var savingsRate = decimal.RequireFromString("0.01")

type BankAccount struct {
	Type         AccountType     `json:"type"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	History      []string        `json:"history,omitempty"`
}

func NewBankAccount(accountType AccountType) *BankAccount {
	rate := decimal.Zero
	if accountType == AccountSavings {
		rate = savingsRate
	}
	return &BankAccount{
		Type:         accountType,
		Balance:      decimal.Zero,
		InterestRate: rate,
	}
}

// Deposit always succeeds. Amounts are not validated here.
func (a *BankAccount) Deposit(amount decimal.Decimal) bool {
	a.Balance = a.Balance.Add(amount)
	a.log("Deposit: %s", FormatMoney(amount))
	return true
}

func (a *BankAccount) Withdraw(amount decimal.Decimal) bool {
	if amount.GreaterThan(a.Balance) {
		return false
	}
	a.Balance = a.Balance.Sub(amount)
	a.log("Withdrawal: %s", FormatMoney(amount))
	return true
}

// ApplyInterest credits one year of interest on savings accounts.
func (a *BankAccount) ApplyInterest() decimal.Decimal {
	if a.Type != AccountSavings {
		return decimal.Zero
	}
	interest := a.Balance.Mul(a.InterestRate)
	a.Balance = a.Balance.Add(interest)
	a.log("Interest: %s", FormatMoney(interest))
	return interest
}

func (a *BankAccount) log(format string, args ...any) {
	a.History = append(a.History, fmt.Sprintf(format, args...))
}
