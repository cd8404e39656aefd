package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Parser turns loose player input into an Intent naming one registered
// command. Typos are corrected with edit distance and close calls come back
// as a ClarifyQuestion instead of a guess.
type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

// HandlerKey reports which handler owns a canonical verb.
func (p *Parser) HandlerKey(verb string) string {
	def, ok := p.registry.command(verb)
	if !ok {
		return ""
	}
	return def.HandlerKey
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command. Type help for the list."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised)
		if inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, status, next, open, job, buy, sell, pay, loan.",
		}
		return intent
	}

	fuzzy := cmdMatch.Source != "exact" && cmdMatch.Source != "alias"
	if fuzzy && len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		options := []Intent{
			{
				Raw:        raw,
				Normalised: cmdMatch.Canonical,
				Kind:       commandKind(cmdMatch.Canonical),
				Verb:       cmdMatch.Canonical,
				Confidence: cmdMatch.Score,
			},
			{
				Raw:        raw,
				Normalised: alternates[0].Canonical,
				Kind:       commandKind(alternates[0].Canonical),
				Verb:       alternates[0].Canonical,
				Confidence: alternates[0].Score,
			},
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt:  "Did you mean:",
			Options: options,
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	if intent.Verb == "next" {
		q, consumed := parseQuantity(argsTokens)
		intent.Quantity = q
		argsTokens = argsTokens[consumed:]
	}

	def, _ := p.registry.command(intent.Verb)
	resolvedArgs, clarify, argScore := p.resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if intent.Kind == Command && len(intent.Args) < def.MinArgs {
		if def.Canonical == "sell" {
			options := buildAssetOptions(ctx, def.Canonical, 5)
			if len(options) > 0 {
				intent.Clarify = &ClarifyQuestion{
					Prompt:  fmt.Sprintf("What should I %s?", def.Canonical),
					Options: options,
				}
				intent.Confidence = 0.46
				return intent
			}
		}
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)}
		intent.Confidence = 0.42
		return intent
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "status", "assets", "loans", "history", "networth":
		return Query
	default:
		return Command
	}
}

// assetArgStart is the position where a verb's asset name begins. The name
// runs to the end of the input.
func assetArgStart(verb string) (int, bool) {
	switch verb {
	case "sell":
		return 0, true
	case "repair":
		return 1, true
	default:
		return 0, false
	}
}

func sourceArgPos(verb string) int {
	switch verb {
	case "pay":
		return 1
	case "buy":
		return 2
	default:
		return -1
	}
}

func (p *Parser) resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	start, hasAsset := assetArgStart(def.Canonical)
	for i := 0; i < len(args); i++ {
		token := args[i]
		if hasAsset && i == start {
			name := strings.Join(args[i:], " ")
			if isPronoun(name) {
				if strings.TrimSpace(ctx.LastEntity) == "" {
					return nil, &ClarifyQuestion{Prompt: "What does that pronoun refer to?"}, 0.4
				}
				return append(resolved, ctx.LastEntity), nil, clampScore(score - 0.08)
			}
			matches, confidence, tie := resolveAsset(name, ctx)
			if tie && len(matches) >= 2 {
				options := make([]Intent, 0, 2)
				for idx := 0; idx < 2; idx++ {
					optionArgs := append(append([]string(nil), resolved...), matches[idx])
					options = append(options, Intent{
						Kind:       commandKind(def.Canonical),
						Verb:       def.Canonical,
						Args:       optionArgs,
						Confidence: confidence - float64(idx)*0.01,
					})
				}
				return nil, &ClarifyQuestion{
					Prompt:  fmt.Sprintf("Which one should I %s?", def.Canonical),
					Options: options,
				}, 0.52
			}
			if len(matches) == 1 {
				return append(resolved, matches[0]), nil, clampScore(minScore(score, confidence))
			}
			return append(resolved, name), nil, clampScore(score - 0.02)
		}
		if i == sourceArgPos(def.Canonical) {
			if source := mapSource(token); source != "" {
				resolved = append(resolved, source)
				continue
			}
		}
		resolved = append(resolved, token)
		score -= 0.02
	}
	return resolved, nil, clampScore(score)
}

// resolveAsset fuzzy-matches a name against the player's assets and returns
// the names as the player wrote them.
func resolveAsset(name string, ctx ParseContext) ([]string, float64, bool) {
	n := normaliseInput(name)
	if n == "" {
		return nil, 0, false
	}
	originals := make(map[string]string, len(ctx.Assets))
	owned := make([]string, 0, len(ctx.Assets))
	for _, asset := range ctx.Assets {
		v := normaliseInput(asset)
		if v == "" {
			continue
		}
		if _, seen := originals[v]; seen {
			continue
		}
		originals[v] = asset
		owned = append(owned, v)
	}
	matches, confidence, tie := bestMatches(n, owned)
	for i, m := range matches {
		matches[i] = originals[m]
	}
	return matches, confidence, tie
}

func bestMatches(token string, all []string) ([]string, float64, bool) {
	if len(all) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func buildAssetOptions(ctx ParseContext, verb string, maxOptions int) []Intent {
	seen := map[string]bool{}
	options := make([]Intent, 0, maxOptions)
	for _, asset := range ctx.Assets {
		n := normaliseInput(asset)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		options = append(options, Intent{
			Kind:       commandKind(verb),
			Verb:       verb,
			Args:       []string{asset},
			Confidence: 0.88,
		})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n, "how much money", "how am i doing", "my balance", "how much cash") {
		return makeIntent(Query, "status", nil, 0.9)
	}
	if containsAnyPhrase(n, "what do i own", "what i own", "my stuff", "my things") {
		return makeIntent(Query, "assets", nil, 0.88)
	}
	if containsAnyPhrase(n, "how much do i owe", "what do i owe", "my debt", "in debt") {
		return makeIntent(Query, "loans", nil, 0.86)
	}
	if containsAnyPhrase(n, "what happened", "my life so far", "life story") {
		return makeIntent(Query, "history", nil, 0.84)
	}
	if containsAnyPhrase(n, "am i rich", "what am i worth", "how rich") {
		return makeIntent(Query, "networth", nil, 0.84)
	}

	if containsAnyPhrase(n, "fast forward", "skip ahead", "let time pass", "skip", "wait") {
		tokens := tokenise(n)
		for i := range tokens {
			if q, consumed := parseQuantity(tokens[i:]); q != nil && consumed > 0 {
				intent := makeIntent(Command, "next", nil, 0.82)
				intent.Quantity = q
				return intent
			}
		}
		return makeIntent(Command, "next", nil, 0.78)
	}

	if containsAnyPhrase(n, "quit my job", "leave my job", "hate my job") {
		return makeIntent(Command, "resign", nil, 0.84)
	}

	// "put $200 in the bank" and "take 50 out of the bank".
	if containsWord(n, "bank") || containsWord(n, "account") || containsWord(n, "savings") {
		amount := firstAmount(n)
		switch {
		case amount == "":
		case containsAnyPhrase(n, "take", "get", "pull"):
			return makeIntent(Command, "withdraw", []string{amount}, 0.8)
		case containsAnyPhrase(n, "put", "save", "stash", "move"):
			return makeIntent(Command, "deposit", []string{amount}, 0.8)
		}
	}

	if containsAnyPhrase(n, "get rid of", "sell off", "sell my") {
		tokens := tokenise(n)
		for i, token := range tokens {
			if token != "of" && token != "off" && token != "my" {
				continue
			}
			name := strings.Join(tokens[i+1:], " ")
			name = strings.TrimPrefix(name, "my ")
			if name == "" {
				continue
			}
			m, confidence, tie := resolveAsset(name, ctx)
			if tie && len(m) >= 2 {
				return &Intent{
					Raw:        raw,
					Normalised: normalised,
					Kind:       Command,
					Verb:       "sell",
					Confidence: 0.52,
					Clarify: &ClarifyQuestion{
						Prompt: "Did you mean:",
						Options: []Intent{
							{Kind: Command, Verb: "sell", Args: []string{m[0]}, Confidence: confidence},
							{Kind: Command, Verb: "sell", Args: []string{m[1]}, Confidence: confidence - 0.01},
						},
					},
				}
			}
			if len(m) == 1 {
				return makeIntent(Command, "sell", []string{m[0]}, confidence)
			}
			return makeIntent(Command, "sell", []string{name}, 0.62)
		}
	}

	return nil
}

// firstAmount returns the first token that reads as money.
func firstAmount(normalised string) string {
	for _, token := range tokenise(normalised) {
		s := strings.TrimSuffix(strings.TrimPrefix(token, "$"), "k")
		s = strings.ReplaceAll(s, ",", "")
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return token
		}
	}
	return ""
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders a resolved intent as the plain command the
// game understands.
func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	if intent.Quantity != nil {
		args = append(args, strconv.Itoa(intent.Quantity.Months))
	}
	for _, arg := range intent.Args {
		if a := strings.TrimSpace(arg); a != "" {
			args = append(args, a)
		}
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
