package game

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/money-smartz/internal/finance"
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return "???"
	}
	return monthNames[m-1]
}

func (g *Game) statusText() string {
	p := g.Player
	var b strings.Builder
	fmt.Fprintf(&b, "%s, age %d. Year %d, %s.\n", p.Name, p.Age, g.Year, monthName(g.Month))
	job := "unemployed"
	if p.HasJob() {
		job = fmt.Sprintf("%s (%s/yr)", p.Job, finance.FormatMoney(p.Salary))
	}
	fmt.Fprintf(&b, "Education: %s. Job: %s.\n", p.Education, job)
	fmt.Fprintf(&b, "Cash: %s", finance.FormatMoney(p.Cash))
	if p.BankAccount != nil {
		fmt.Fprintf(&b, "  %s: %s", p.BankAccount.Type, finance.FormatMoney(p.BankAccount.Balance))
	}
	b.WriteString("\n")
	if p.CreditCard != nil {
		fmt.Fprintf(&b, "Credit card: %s of %s\n", finance.FormatMoney(p.CreditCard.Balance), finance.FormatMoney(p.CreditCard.Limit))
	}
	if p.DebitCard != nil {
		b.WriteString("Debit card: linked\n")
	}
	fmt.Fprintf(&b, "Credit score: %d. Loans: %d. Assets: %d.", p.CreditScore, len(p.Loans), len(p.Assets))
	return b.String()
}

func monthText(r MonthReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== Year %d, %s ==", r.Year, monthName(r.Month))
	if r.NewYear && r.Interest.IsPositive() {
		fmt.Fprintf(&b, "\nSavings interest: %s", finance.FormatMoney(r.Interest))
	}
	s := r.Settlement
	if s.Income.IsPositive() {
		fmt.Fprintf(&b, "\nIncome: %s", finance.FormatMoney(s.Income))
		if s.AutoDeposit.IsPositive() {
			fmt.Fprintf(&b, " (%s auto-deposited)", finance.FormatMoney(s.AutoDeposit))
		}
	}
	for _, inst := range s.Installments {
		if inst.Missed() {
			fmt.Fprintf(&b, "\nMissed %s payment of %s! Credit score -%d.", inst.Label, finance.FormatMoney(inst.Amount), inst.Penalty)
			continue
		}
		fmt.Fprintf(&b, "\nPaid %s %s from %s.", inst.Label, finance.FormatMoney(inst.Amount), inst.Source)
		if inst.Refused {
			b.WriteString(" The card refused the overpayment and the money is gone.")
		}
	}
	if r.Event != nil {
		fmt.Fprintf(&b, "\n%s: %s %s", r.Event.Draw.Name, r.Event.Draw.Description, r.Event.Message)
	}
	if r.Outcome.Finished() {
		fmt.Fprintf(&b, "\nThe game has ended (%s).\n%s", r.Outcome.Reason, summaryText(*r.Outcome.Summary))
	}
	return b.String()
}

func (g *Game) assetsText() string {
	if len(g.Player.Assets) == 0 {
		return "You don't own any assets."
	}
	lines := make([]string, 0, len(g.Player.Assets))
	for _, a := range g.Player.Assets {
		lines = append(lines, fmt.Sprintf("%s (%s): worth %s, bought for %s, %d years old, %s condition",
			a.Name, a.Type, finance.FormatMoney(a.CurrentValue), finance.FormatMoney(a.PurchaseValue), a.Age, strings.ToLower(a.Condition)))
	}
	return strings.Join(lines, "\n")
}

func (g *Game) loansText() string {
	if len(g.Player.Loans) == 0 {
		return "You don't have any loans."
	}
	lines := make([]string, 0, len(g.Player.Loans))
	for _, l := range g.Player.Loans {
		status := ""
		if l.PaidOff() {
			status = " (paid off)"
		}
		lines = append(lines, fmt.Sprintf("%s loan: %s remaining of %s, %s/month%s",
			l.Type, finance.FormatMoney(l.CurrentBalance), finance.FormatMoney(l.OriginalAmount), finance.FormatMoney(l.MonthlyPayment), status))
	}
	return strings.Join(lines, "\n")
}

func (g *Game) historyText() string {
	if len(g.Player.LifeEvents) == 0 {
		return "Nothing has happened yet."
	}
	return strings.Join(g.Player.LifeEvents, "\n")
}

func summaryText(s Summary) string {
	return fmt.Sprintf("Cash %s + bank %s + assets %s - card %s - loans %s = net worth %s (%s)",
		finance.FormatMoney(s.Cash), finance.FormatMoney(s.Bank), finance.FormatMoney(s.AssetValue),
		finance.FormatMoney(s.CardDebt), finance.FormatMoney(s.LoanDebt), finance.FormatMoney(s.NetWorth), s.Rating)
}
