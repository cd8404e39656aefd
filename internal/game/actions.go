package game

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

// The actions below create entities on demand and attach them to the player.
// Each one records a life event on success.

func (g *Game) guard() error {
	if g.Over {
		return ErrGameOver
	}
	return nil
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return nil
}

func (g *Game) OpenBankAccount(accountType finance.AccountType) error {
	if err := g.guard(); err != nil {
		return err
	}
	switch accountType {
	case finance.AccountChecking, finance.AccountSavings:
	default:
		return fmt.Errorf("invalid account type: %s", accountType)
	}
	p := g.Player
	if p.BankAccount != nil {
		return ErrHasBankAccount
	}
	p.BankAccount = finance.NewBankAccount(accountType)
	p.recordLifeEvent(g.Year, g.Month, "Opened a %s account.", strings.ToLower(string(accountType)))
	return nil
}

func (g *Game) GetDebitCard() error {
	if err := g.guard(); err != nil {
		return err
	}
	p := g.Player
	if p.BankAccount == nil {
		return fmt.Errorf("debit card needs a bank account: %w", ErrNoBankAccount)
	}
	if p.DebitCard != nil {
		return ErrHasCard
	}
	p.DebitCard = finance.NewDebitCard()
	p.recordLifeEvent(g.Year, g.Month, "Got a debit card.")
	return nil
}

func (g *Game) ApplyForCreditCard(limit decimal.Decimal) error {
	if err := g.guard(); err != nil {
		return err
	}
	if err := requirePositive(limit); err != nil {
		return err
	}
	p := g.Player
	rules := g.Config.Rules
	if p.CreditCard != nil {
		return ErrHasCard
	}
	if p.Age < rules.CreditCardMinAge {
		return fmt.Errorf("%w: must be at least %d", ErrCreditDenied, rules.CreditCardMinAge)
	}
	if p.CreditScore < rules.CreditCardMinScore {
		return fmt.Errorf("%w: credit score %d below %d", ErrCreditDenied, p.CreditScore, rules.CreditCardMinScore)
	}
	p.CreditCard = finance.NewCreditCard(limit)
	p.recordLifeEvent(g.Year, g.Month, "Got a credit card with a %s limit.", finance.FormatMoney(limit))
	return nil
}

func (g *Game) TakeJob(title string, salary decimal.Decimal) error {
	if err := g.guard(); err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("job title is required")
	}
	if err := requirePositive(salary); err != nil {
		return err
	}
	p := g.Player
	p.Job = title
	p.Salary = salary
	p.recordLifeEvent(g.Year, g.Month, "Started working as %s for %s a year.", title, finance.FormatMoney(salary))
	return nil
}

func (g *Game) QuitJob() error {
	if err := g.guard(); err != nil {
		return err
	}
	p := g.Player
	if !p.HasJob() {
		return ErrNoJob
	}
	p.recordLifeEvent(g.Year, g.Month, "Quit working as %s.", p.Job)
	p.Job = ""
	p.Salary = decimal.Zero
	return nil
}

// Deposit moves cash into the bank account.
func (g *Game) Deposit(amount decimal.Decimal) error {
	if err := g.guard(); err != nil {
		return err
	}
	if err := requirePositive(amount); err != nil {
		return err
	}
	p := g.Player
	if p.BankAccount == nil {
		return ErrNoBankAccount
	}
	if p.Cash.LessThan(amount) {
		return ErrInsufficientFunds
	}
	p.Cash = p.Cash.Sub(amount)
	p.BankAccount.Deposit(amount)
	p.recordLifeEvent(g.Year, g.Month, "Deposited %s.", finance.FormatMoney(amount))
	return nil
}

// Withdraw moves money from the bank account to cash.
func (g *Game) Withdraw(amount decimal.Decimal) error {
	if err := g.guard(); err != nil {
		return err
	}
	if err := requirePositive(amount); err != nil {
		return err
	}
	p := g.Player
	if p.BankAccount == nil {
		return ErrNoBankAccount
	}
	if !p.BankAccount.Withdraw(amount) {
		return ErrInsufficientFunds
	}
	p.Cash = p.Cash.Add(amount)
	p.recordLifeEvent(g.Year, g.Month, "Withdrew %s.", finance.FormatMoney(amount))
	return nil
}

// PayCreditCard pays down the card from cash or the bank account. The amount
// is capped at the outstanding balance.
func (g *Game) PayCreditCard(amount decimal.Decimal, source PaymentSource) (decimal.Decimal, error) {
	if err := g.guard(); err != nil {
		return decimal.Zero, err
	}
	if err := requirePositive(amount); err != nil {
		return decimal.Zero, err
	}
	p := g.Player
	if p.CreditCard == nil {
		return decimal.Zero, ErrNoCreditCard
	}
	if source == SourceCreditCard {
		return decimal.Zero, fmt.Errorf("%w: cannot pay a card with itself", ErrUnknownSource)
	}
	amount = decimal.Min(amount, p.CreditCard.Balance)
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	fs, err := p.sourceByName(source)
	if err != nil {
		return decimal.Zero, err
	}
	if payFrom(amount, fs) == SourceNone {
		return decimal.Zero, ErrInsufficientFunds
	}
	p.CreditCard.Pay(amount)
	p.recordLifeEvent(g.Year, g.Month, "Paid %s toward the credit card from %s.", finance.FormatMoney(amount), source)
	return amount, nil
}

// TakeLoan disburses the principal as cash.
func (g *Game) TakeLoan(loanType string, amount, rate decimal.Decimal, years int) (*finance.Loan, error) {
	if err := g.guard(); err != nil {
		return nil, err
	}
	loan, err := finance.NewLoan(loanType, amount, rate, years)
	if err != nil {
		return nil, err
	}
	p := g.Player
	p.Loans = append(p.Loans, loan)
	p.Cash = p.Cash.Add(amount)
	p.recordLifeEvent(g.Year, g.Month, "Took a %s loan of %s at %s%% for %d years.",
		strings.ToLower(loanType), finance.FormatMoney(amount), rate.Mul(decimal.NewFromInt(100)).String(), years)
	return loan, nil
}

// EnrollInCollege pays tuition with a student loan that goes straight to the
// school.
func (g *Game) EnrollInCollege(tuition, rate decimal.Decimal, years int) (*finance.Loan, error) {
	if err := g.guard(); err != nil {
		return nil, err
	}
	p := g.Player
	if p.Education == "College" {
		return nil, fmt.Errorf("already graduated from college")
	}
	loan, err := finance.NewLoan(finance.LoanStudent, tuition, rate, years)
	if err != nil {
		return nil, err
	}
	p.Loans = append(p.Loans, loan)
	p.Education = "College"
	p.recordLifeEvent(g.Year, g.Month, "Enrolled in college with %s of student loans.", finance.FormatMoney(tuition))
	return loan, nil
}

func (g *Game) BuyAsset(assetType finance.AssetType, name string, price decimal.Decimal, source PaymentSource) (*finance.Asset, error) {
	if err := g.guard(); err != nil {
		return nil, err
	}
	if err := requirePositive(price); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = string(assetType)
	}
	p := g.Player
	fs, err := p.sourceByName(source)
	if err != nil {
		return nil, err
	}
	if payFrom(price, fs) == SourceNone {
		return nil, ErrInsufficientFunds
	}
	asset := finance.NewAsset(assetType, name, price)
	p.Assets = append(p.Assets, asset)
	p.recordLifeEvent(g.Year, g.Month, "Bought %s (%s) for %s with %s.", name, strings.ToLower(string(assetType)), finance.FormatMoney(price), source)
	return asset, nil
}

// FinanceAsset buys an asset entirely on credit: an auto loan for cars, a
// mortgage for anything else.
func (g *Game) FinanceAsset(assetType finance.AssetType, name string, price, rate decimal.Decimal, years int) (*finance.Asset, *finance.Loan, error) {
	if err := g.guard(); err != nil {
		return nil, nil, err
	}
	loanType := finance.LoanMortgage
	if assetType == finance.AssetCar {
		loanType = finance.LoanAuto
	}
	loan, err := finance.NewLoan(loanType, price, rate, years)
	if err != nil {
		return nil, nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = string(assetType)
	}
	p := g.Player
	asset := finance.NewAsset(assetType, name, price)
	p.Assets = append(p.Assets, asset)
	p.Loans = append(p.Loans, loan)
	p.recordLifeEvent(g.Year, g.Month, "Bought %s (%s) for %s with a %s loan.", name, strings.ToLower(string(assetType)), finance.FormatMoney(price), strings.ToLower(loanType))
	return asset, loan, nil
}

// SellAsset converts an asset to cash at its current value.
func (g *Game) SellAsset(name string) (decimal.Decimal, error) {
	if err := g.guard(); err != nil {
		return decimal.Zero, err
	}
	p := g.Player
	idx, asset := p.findAsset(name)
	if asset == nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	p.Assets = append(p.Assets[:idx], p.Assets[idx+1:]...)
	p.Cash = p.Cash.Add(asset.CurrentValue)
	p.recordLifeEvent(g.Year, g.Month, "Sold %s for %s.", asset.Name, finance.FormatMoney(asset.CurrentValue))
	return asset.CurrentValue, nil
}

// RepairAsset bills the repair through cash, bank and credit card. Unlike a
// random expense an unaffordable repair is simply refused.
func (g *Game) RepairAsset(name string, cost decimal.Decimal) (PaymentSource, error) {
	if err := g.guard(); err != nil {
		return SourceNone, err
	}
	if err := requirePositive(cost); err != nil {
		return SourceNone, err
	}
	p := g.Player
	_, asset := p.findAsset(name)
	if asset == nil {
		return SourceNone, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	source := payFrom(cost, p.expenseSources()...)
	if source == SourceNone {
		return SourceNone, ErrInsufficientFunds
	}
	bill := asset.Repair(cost)
	p.recordLifeEvent(g.Year, g.Month, "Repaired %s for %s.", asset.Name, finance.FormatMoney(bill))
	return source, nil
}

func (g *Game) AddFamilyMember(relation, name string, age int) error {
	if err := g.guard(); err != nil {
		return err
	}
	relation = strings.TrimSpace(strings.ToLower(relation))
	name = strings.TrimSpace(name)
	if relation == "" || name == "" {
		return fmt.Errorf("family member needs a relation and a name")
	}
	p := g.Player
	p.Family = append(p.Family, FamilyMember{Relation: relation, Name: name, Age: age})
	p.recordLifeEvent(g.Year, g.Month, "Welcomed %s (%s) to the family.", name, relation)
	return nil
}
