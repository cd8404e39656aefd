package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

// normaliseInput lowercases and strips punctuation, keeping the characters
// that make up amounts: "$1,200.50" and "4.5%" survive intact.
func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	runes := []rune(raw)
	digitAt := func(i int) bool {
		return i >= 0 && i < len(runes) && runes[i] >= '0' && runes[i] <= '9'
	}
	var b strings.Builder
	lastSpace := false
	for i, r := range runes {
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		switch r {
		case '.', ',':
			keep = digitAt(i+1) && (digitAt(i-1) || r == '.')
		case '$':
			keep = digitAt(i+1) || (i+1 < len(runes) && runes[i+1] == '.')
		case '%':
			keep = digitAt(i - 1)
		}
		if keep {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// parseQuantity reads a span of time from the front of tokens: "3", "3 months",
// "2 years", "2y", "a year". It returns how many tokens it consumed.
func parseQuantity(tokens []string) (*Quantity, int) {
	if len(tokens) == 0 {
		return nil, 0
	}
	first := tokens[0]
	n, unit, ok := splitCount(first)
	if !ok {
		return nil, 0
	}
	consumed := 1
	if unit == "" && len(tokens) > 1 {
		if u := timeUnit(tokens[1]); u != "" {
			unit = u
			consumed = 2
		}
	}
	raw := strings.Join(tokens[:consumed], " ")
	switch unit {
	case "", "months":
		return &Quantity{Raw: raw, Months: n}, consumed
	case "years":
		return &Quantity{Raw: raw, Months: n * 12}, consumed
	}
	return nil, 0
}

// splitCount understands "3", "3m", "2yr" and the articles "a"/"one".
func splitCount(token string) (int, string, bool) {
	switch token {
	case "a", "an", "one":
		return 1, "", true
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return n, "", true
	}
	for i := len(token); i > 0; i-- {
		n, err := strconv.Atoi(token[:i])
		if err != nil || n < 0 {
			continue
		}
		if unit := timeUnit(token[i:]); unit != "" {
			return n, unit, true
		}
		return 0, "", false
	}
	return 0, "", false
}

func timeUnit(token string) string {
	switch token {
	case "m", "mo", "mon", "month", "months":
		return "months"
	case "y", "yr", "yrs", "year", "years":
		return "years"
	default:
		return ""
	}
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "them", "this", "those":
		return true
	default:
		return false
	}
}

// mapSource folds the ways a player names a payment source.
func mapSource(token string) string {
	switch token {
	case "cash", "wallet":
		return "cash"
	case "bank", "account", "checking", "savings", "debit":
		return "bank"
	case "credit", "card":
		return "credit"
	default:
		return ""
	}
}
