package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

// CommandResult is what a text command produced. Reports holds one entry per
// month the command advanced.
type CommandResult struct {
	Handled bool          `json:"handled"`
	Message string        `json:"message"`
	Reports []MonthReport `json:"reports,omitempty"`
}

const helpText = "Commands: status, next [months], open checking|savings, card credit <limit>, card debit, " +
	"job <salary> <title>, resign, deposit <amount>, withdraw <amount>, pay <amount> [cash|bank], " +
	"loan <type> <amount> <rate> <years>, college <tuition> <rate> <years>, " +
	"buy <car|house|type> <price> [cash|bank|credit] [name], finance <car|house|type> <price> <rate> <years> [name], " +
	"sell <name>, repair <cost> <name>, family <relation> <name> [age], assets, loans, history, networth, quit."

const maxMonthsPerCommand = 600

func (g *Game) ExecuteCommand(raw string) CommandResult {
	fields := strings.Fields(strings.TrimSpace(strings.ToLower(raw)))
	if len(fields) == 0 {
		return CommandResult{Handled: false}
	}
	args := fields[1:]

	switch fields[0] {
	case "help", "commands":
		return CommandResult{Handled: true, Message: helpText}
	case "status":
		return CommandResult{Handled: true, Message: g.statusText()}
	case "next":
		return g.executeNextCommand(args)
	case "open":
		return g.executeOpenCommand(args)
	case "card":
		return g.executeCardCommand(args)
	case "job":
		return g.executeJobCommand(args)
	case "resign":
		return handled("You left your job.", g.QuitJob())
	case "deposit", "withdraw":
		return g.executeTransferCommand(fields[0], args)
	case "pay":
		return g.executePayCommand(args)
	case "loan":
		return g.executeLoanCommand(args)
	case "college":
		return g.executeCollegeCommand(args)
	case "buy":
		return g.executeBuyCommand(args)
	case "finance":
		return g.executeFinanceCommand(args)
	case "sell":
		return g.executeSellCommand(args)
	case "repair":
		return g.executeRepairCommand(args)
	case "family":
		return g.executeFamilyCommand(args)
	case "assets":
		return CommandResult{Handled: true, Message: g.assetsText()}
	case "loans":
		return CommandResult{Handled: true, Message: g.loansText()}
	case "history":
		return CommandResult{Handled: true, Message: g.historyText()}
	case "networth":
		return CommandResult{Handled: true, Message: summaryText(g.Player.Summary())}
	case "quit":
		out, err := g.Quit()
		if err != nil {
			return handled("", err)
		}
		return CommandResult{Handled: true, Message: "You walked away from the game.\n" + summaryText(*out.Summary)}
	default:
		return CommandResult{Handled: false}
	}
}

// handled turns an action error into a user-facing message.
func handled(success string, err error) CommandResult {
	if err != nil {
		return CommandResult{Handled: true, Message: failureText(err)}
	}
	return CommandResult{Handled: true, Message: success}
}

func failureText(err error) string {
	switch {
	case errors.Is(err, ErrGameOver):
		return "The game is over. Start a new game to keep playing."
	case errors.Is(err, ErrInsufficientFunds):
		return "You can't afford that."
	case errors.Is(err, ErrNoBankAccount):
		return "You need a bank account first."
	case errors.Is(err, ErrNoCreditCard):
		return "You don't have a credit card."
	default:
		msg := err.Error()
		return strings.ToUpper(msg[:1]) + msg[1:] + "."
	}
}

func usage(text string) CommandResult {
	return CommandResult{Handled: true, Message: "Usage: " + text}
}

func (g *Game) executeNextCommand(args []string) CommandResult {
	months := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > maxMonthsPerCommand {
			return usage(fmt.Sprintf("next [1-%d]", maxMonthsPerCommand))
		}
		months = n
	}
	reports, err := g.AdvanceMonths(months)
	if err != nil && len(reports) == 0 {
		return handled("", err)
	}
	lines := make([]string, 0, len(reports)+1)
	for _, r := range reports {
		lines = append(lines, monthText(r))
	}
	return CommandResult{Handled: true, Message: strings.Join(lines, "\n"), Reports: reports}
}

func (g *Game) executeOpenCommand(args []string) CommandResult {
	if len(args) != 1 {
		return usage("open checking|savings")
	}
	var accountType finance.AccountType
	switch args[0] {
	case "checking":
		accountType = finance.AccountChecking
	case "savings":
		accountType = finance.AccountSavings
	default:
		return usage("open checking|savings")
	}
	return handled(fmt.Sprintf("Opened a %s account.", args[0]), g.OpenBankAccount(accountType))
}

func (g *Game) executeCardCommand(args []string) CommandResult {
	if len(args) == 0 {
		return usage("card credit <limit> | card debit")
	}
	switch args[0] {
	case "debit":
		return handled("You got a debit card linked to your bank account.", g.GetDebitCard())
	case "credit":
		if len(args) != 2 {
			return usage("card credit <limit>")
		}
		limit, err := finance.ParseMoney(args[1])
		if err != nil {
			return handled("", err)
		}
		return handled(fmt.Sprintf("Approved! Your credit limit is %s.", finance.FormatMoney(limit)), g.ApplyForCreditCard(limit))
	default:
		return usage("card credit <limit> | card debit")
	}
}

func (g *Game) executeJobCommand(args []string) CommandResult {
	if len(args) < 2 {
		return usage("job <salary> <title>")
	}
	salary, err := finance.ParseMoney(args[0])
	if err != nil {
		return handled("", err)
	}
	title := titleCase(strings.Join(args[1:], " "))
	return handled(fmt.Sprintf("You are now a %s earning %s a year.", title, finance.FormatMoney(salary)), g.TakeJob(title, salary))
}

func (g *Game) executeTransferCommand(verb string, args []string) CommandResult {
	if len(args) != 1 {
		return usage(verb + " <amount>")
	}
	amount, err := finance.ParseMoney(args[0])
	if err != nil {
		return handled("", err)
	}
	if verb == "deposit" {
		return handled(fmt.Sprintf("Deposited %s.", finance.FormatMoney(amount)), g.Deposit(amount))
	}
	return handled(fmt.Sprintf("Withdrew %s.", finance.FormatMoney(amount)), g.Withdraw(amount))
}

func (g *Game) executePayCommand(args []string) CommandResult {
	if len(args) < 1 || len(args) > 2 {
		return usage("pay <amount> [cash|bank]")
	}
	amount, err := finance.ParseMoney(args[0])
	if err != nil {
		return handled("", err)
	}
	source := SourceCash
	if len(args) == 2 {
		source = parseSource(args[1])
	}
	paid, err := g.PayCreditCard(amount, source)
	if err != nil {
		return handled("", err)
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("Paid %s toward your credit card. Balance: %s.",
		finance.FormatMoney(paid), finance.FormatMoney(g.Player.CardDebt()))}
}

func (g *Game) executeLoanCommand(args []string) CommandResult {
	if len(args) != 4 {
		return usage("loan <type> <amount> <rate> <years>")
	}
	amount, rate, years, err := parseLoanTerms(args[1], args[2], args[3])
	if err != nil {
		return handled("", err)
	}
	loan, err := g.TakeLoan(titleCase(args[0]), amount, rate, years)
	if err != nil {
		return handled("", err)
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("Loan approved. Monthly payment: %s.", finance.FormatMoney(loan.MonthlyPayment))}
}

func (g *Game) executeCollegeCommand(args []string) CommandResult {
	if len(args) != 3 {
		return usage("college <tuition> <rate> <years>")
	}
	tuition, rate, years, err := parseLoanTerms(args[0], args[1], args[2])
	if err != nil {
		return handled("", err)
	}
	loan, err := g.EnrollInCollege(tuition, rate, years)
	if err != nil {
		return handled("", err)
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("You enrolled in college. Student loan payment: %s a month.", finance.FormatMoney(loan.MonthlyPayment))}
}

func (g *Game) executeBuyCommand(args []string) CommandResult {
	if len(args) < 2 {
		return usage("buy <car|house|type> <price> [cash|bank|credit] [name]")
	}
	price, err := finance.ParseMoney(args[1])
	if err != nil {
		return handled("", err)
	}
	rest := args[2:]
	source := SourceCash
	if len(rest) > 0 {
		if s := parseSource(rest[0]); s != SourceNone {
			source = s
			rest = rest[1:]
		}
	}
	assetType := parseAssetType(args[0])
	asset, err := g.BuyAsset(assetType, titleCase(strings.Join(rest, " ")), price, source)
	if err != nil {
		return handled("", err)
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("You bought %s for %s.", asset.Name, finance.FormatMoney(price))}
}

func (g *Game) executeFinanceCommand(args []string) CommandResult {
	if len(args) < 4 {
		return usage("finance <car|house|type> <price> <rate> <years> [name]")
	}
	price, rate, years, err := parseLoanTerms(args[1], args[2], args[3])
	if err != nil {
		return handled("", err)
	}
	asset, loan, err := g.FinanceAsset(parseAssetType(args[0]), titleCase(strings.Join(args[4:], " ")), price, rate, years)
	if err != nil {
		return handled("", err)
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("You financed %s. Monthly payment: %s.", asset.Name, finance.FormatMoney(loan.MonthlyPayment))}
}

func (g *Game) executeSellCommand(args []string) CommandResult {
	if len(args) == 0 {
		return usage("sell <name>")
	}
	value, err := g.SellAsset(strings.Join(args, " "))
	if err != nil {
		return handled("", err)
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("Sold for %s.", finance.FormatMoney(value))}
}

func (g *Game) executeRepairCommand(args []string) CommandResult {
	if len(args) < 2 {
		return usage("repair <cost> <name>")
	}
	cost, err := finance.ParseMoney(args[0])
	if err != nil {
		return handled("", err)
	}
	source, err := g.RepairAsset(strings.Join(args[1:], " "), cost)
	if err != nil {
		return handled("", err)
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("Repaired for %s, paid with %s.", finance.FormatMoney(cost), source)}
}

func (g *Game) executeFamilyCommand(args []string) CommandResult {
	if len(args) < 2 {
		return usage("family <relation> <name> [age]")
	}
	age := 0
	nameTokens := args[1:]
	if len(nameTokens) > 1 {
		if n, err := strconv.Atoi(nameTokens[len(nameTokens)-1]); err == nil && n >= 0 {
			age = n
			nameTokens = nameTokens[:len(nameTokens)-1]
		}
	}
	name := titleCase(strings.Join(nameTokens, " "))
	return handled(fmt.Sprintf("%s joined your family.", name), g.AddFamilyMember(args[0], name, age))
}

func parseLoanTerms(amountRaw, rateRaw, yearsRaw string) (decimal.Decimal, decimal.Decimal, int, error) {
	amount, err := finance.ParseMoney(amountRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}
	rate, err := finance.ParseRate(rateRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}
	years, err := strconv.Atoi(yearsRaw)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, fmt.Errorf("invalid term %q", yearsRaw)
	}
	return amount, rate, years, nil
}

func parseSource(token string) PaymentSource {
	switch token {
	case "cash":
		return SourceCash
	case "bank", "account", "debit":
		return SourceBank
	case "credit", "card":
		return SourceCreditCard
	default:
		return SourceNone
	}
}

func parseAssetType(token string) finance.AssetType {
	switch token {
	case "car":
		return finance.AssetCar
	case "house", "home":
		return finance.AssetHouse
	default:
		return finance.AssetType(titleCase(token))
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
