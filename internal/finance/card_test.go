package finance

import "testing"

func TestCreditChargeRespectsLimit(t *testing.T) {
	card := NewCreditCard(Dollars(500))

	if !card.Charge(Dollars(450)) {
		t.Fatalf("expected charge within limit to succeed")
	}
	if card.Charge(Dollars(50.01)) {
		t.Fatalf("expected charge over limit to fail")
	}
	if !card.Balance.Equal(Dollars(450)) {
		t.Fatalf("failed charge mutated balance: %s", card.Balance)
	}
	if !card.Charge(Dollars(50)) {
		t.Fatalf("expected charge reaching the limit exactly to succeed")
	}
	if !card.Available().IsZero() {
		t.Fatalf("expected no available credit, got %s", card.Available())
	}
}

func TestCreditPayCannotExceedBalance(t *testing.T) {
	card := NewCreditCard(Dollars(1000))
	card.Charge(Dollars(100))

	if card.Pay(Dollars(150)) {
		t.Fatalf("expected overpayment to fail")
	}
	if !card.Pay(Dollars(40)) {
		t.Fatalf("expected partial payment to succeed")
	}
	if !card.Balance.Equal(Dollars(60)) {
		t.Fatalf("balance = %s, want 60", card.Balance)
	}
}

func TestDebitCardNeverFails(t *testing.T) {
	card := NewDebitCard()
	for _, amount := range []float64{1, 1000, 1e9} {
		if !card.Charge(Dollars(amount)) {
			t.Fatalf("debit charge of %v failed", amount)
		}
		if !card.Pay(Dollars(amount)) {
			t.Fatalf("debit pay of %v failed", amount)
		}
	}
	if !card.Balance.IsZero() {
		t.Fatalf("debit card balance should never move, got %s", card.Balance)
	}
	if len(card.History) != 3 {
		t.Fatalf("expected one log line per charge, got %d", len(card.History))
	}
}
