package parser

import "testing"

func TestNormalisationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  STATUS  ", want: "status"},
		{in: "status.", want: "status"},
		{in: "Deposit $1,200.50!!", want: "deposit $1,200.50"},
		{in: "loan auto 5000 4.5% 5", want: "loan auto 5000 4.5% 5"},
		{in: "quit-my   JOB", want: "quit my job"},
		{in: "sell mom's car", want: "sell mom s car"},
	}
	for _, tc := range tests {
		got := normaliseInput(tc.in)
		if got != tc.want {
			t.Fatalf("normaliseInput(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestQuantityTable(t *testing.T) {
	tests := []struct {
		in       string
		months   int
		consumed int
	}{
		{in: "3", months: 3, consumed: 1},
		{in: "3 months", months: 3, consumed: 2},
		{in: "2 years", months: 24, consumed: 2},
		{in: "2yr", months: 24, consumed: 1},
		{in: "a year", months: 12, consumed: 2},
		{in: "6m", months: 6, consumed: 1},
	}
	for _, tc := range tests {
		q, consumed := parseQuantity(tokenise(tc.in))
		if q == nil {
			t.Fatalf("parseQuantity(%q) returned nil", tc.in)
		}
		if q.Months != tc.months || consumed != tc.consumed {
			t.Fatalf("parseQuantity(%q) = %d months, %d consumed; want %d, %d", tc.in, q.Months, consumed, tc.months, tc.consumed)
		}
	}
	if q, _ := parseQuantity([]string{"soon"}); q != nil {
		t.Fatalf("expected no quantity for soon, got %+v", q)
	}
}

func TestAliasNetWorth(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "net worth")
	if intent.Verb != "networth" {
		t.Fatalf("expected networth verb, got %q", intent.Verb)
	}
	if intent.Kind != Query {
		t.Fatalf("expected query kind, got %v", intent.Kind)
	}
	if intent.Clarify != nil {
		t.Fatalf("did not expect clarify: %+v", intent.Clarify)
	}
}

func TestTypoMapsToStatus(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "stauts")
	if intent.Verb != "status" {
		t.Fatalf("expected status verb, got %q", intent.Verb)
	}
	if intent.Confidence < 0.6 {
		t.Fatalf("expected decent confidence for typo correction, got %.2f", intent.Confidence)
	}
}

func TestLongerAliasBeatsShorterCommand(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "quit my job")
	if intent.Verb != "resign" {
		t.Fatalf("expected resign verb, got %q", intent.Verb)
	}
	if intent.Clarify != nil {
		t.Fatalf("did not expect clarify: %+v", intent.Clarify)
	}
	if got := p.Parse(ParseContext{}, "quit").Verb; got != "quit" {
		t.Fatalf("expected quit verb, got %q", got)
	}
}

func TestNextWithYears(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "skip 2 years")
	if intent.Verb != "next" {
		t.Fatalf("expected next verb, got %q", intent.Verb)
	}
	if intent.Quantity == nil || intent.Quantity.Months != 24 {
		t.Fatalf("expected 24 months, got %+v", intent.Quantity)
	}
	if got := IntentToCommandString(intent); got != "next 24" {
		t.Fatalf("command = %q, want next 24", got)
	}
}

func TestAssetNameResolvesTypo(t *testing.T) {
	p := New()
	ctx := ParseContext{Assets: []string{"Civic", "House"}}
	intent := p.Parse(ctx, "sell civc")
	if intent.Verb != "sell" {
		t.Fatalf("expected sell verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "Civic" {
		t.Fatalf("expected Civic, got %+v", intent.Args)
	}

	repair := p.Parse(ctx, "fix 300 hous")
	if got := IntentToCommandString(repair); got != "repair 300 House" {
		t.Fatalf("command = %q", got)
	}
}

func TestSellWithoutTargetOffersAssets(t *testing.T) {
	p := New()
	ctx := ParseContext{Assets: []string{"Civic", "House"}}
	intent := p.Parse(ctx, "sell")
	if intent.Clarify == nil {
		t.Fatalf("expected clarify for target-less sell")
	}
	if len(intent.Clarify.Options) != 2 {
		t.Fatalf("expected 2 clarify options, got %d", len(intent.Clarify.Options))
	}
}

func TestAmbiguousPrefixReturnsClarify(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "lo")
	if intent.Clarify == nil || len(intent.Clarify.Options) < 2 {
		t.Fatalf("expected clarify with options, got %+v", intent.Clarify)
	}
}

func TestPaymentSourceIsNormalised(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "buy car $5,000 savings beater")
	if got := IntentToCommandString(intent); got != "buy car $5,000 bank beater" {
		t.Fatalf("command = %q", got)
	}
	pay := p.Parse(ParseContext{}, "pay off 100 wallet")
	if got := IntentToCommandString(pay); got != "pay 100 cash" {
		t.Fatalf("command = %q", got)
	}
}

func TestFreeTextInference(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "how much money do i have", want: "status"},
		{in: "how much do i owe", want: "loans"},
		{in: "put $200 in the bank", want: "deposit $200"},
		{in: "i want to wait 2 years", want: "next 24"},
	}
	p := New()
	for _, tc := range tests {
		intent := p.Parse(ParseContext{}, tc.in)
		if got := IntentToCommandString(intent); got != tc.want {
			t.Fatalf("Parse(%q) -> %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPronounResolutionSellIt(t *testing.T) {
	p := New()
	ctx := ParseContext{
		Assets:     []string{"Civic"},
		LastEntity: "Civic",
	}
	intent := p.Parse(ctx, "sell it")
	if intent.Clarify != nil {
		t.Fatalf("unexpected clarify: %+v", intent.Clarify)
	}
	if len(intent.Args) == 0 || intent.Args[0] != "Civic" {
		t.Fatalf("expected pronoun to resolve to Civic, got %+v", intent.Args)
	}

	if got := p.Parse(ParseContext{}, "sell it"); got.Clarify == nil {
		t.Fatalf("expected clarify without a last entity")
	}
}

func TestHandlerKey(t *testing.T) {
	p := New()
	if got := p.HandlerKey("save"); got != "save" {
		t.Fatalf("HandlerKey(save) = %q", got)
	}
	if got := p.HandlerKey("dance"); got != "" {
		t.Fatalf("HandlerKey(dance) = %q", got)
	}
}
