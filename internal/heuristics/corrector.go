package heuristics

import (
	"sync"

	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/correctocr/correctocr/internal/token"
)

// AnnotatorFunc resolves a needs-annotation token to a final string. It
// is given the original string, the bin number, and the candidate
// strings in k-best order.
type AnnotatorFunc func(original string, bin int, candidates []string) string

// Corrector classifies tokens into bins and resolves each to a final
// selection per the configured policy (spec §4.4), memoizing annotator
// decisions by original string within a scope (normally one document).
type Corrector struct {
	Policy     PolicyMap
	Dictionary *dictionary.Dictionary
	Annotate   AnnotatorFunc

	mu       sync.Mutex
	memo     map[string]string // original -> annotator-resolved selection
	memoBins map[string]int
}

// New builds a Corrector. memorized pre-seeds the annotator memoization
// table (spec §4.4's "global memorised corrections table"); pass nil
// for an empty table.
func New(policy PolicyMap, dict *dictionary.Dictionary, annotate AnnotatorFunc, memorized map[string]string) *Corrector {
	memo := make(map[string]string, len(memorized))
	for k, v := range memorized {
		memo[k] = v
	}
	return &Corrector{
		Policy:     policy,
		Dictionary: dict,
		Annotate:   annotate,
		memo:       memo,
		memoBins:   make(map[string]int),
	}
}

// Classify evaluates predicates and assigns a bin for a single token,
// without resolving a selection.
func (c *Corrector) Classify(original string, candidates []string) (Predicates, int) {
	p := EvaluatePredicates(original, candidates, c.Dictionary.Contains)
	return p, Bin(p)
}

// Resolve classifies and resolves a single token in isolation (no
// hyphenation propagation); BinTokens drives a full document.
func (c *Corrector) Resolve(t *token.Token) {
	candidates := candidateStrings(t.KBest)
	_, bin := c.Classify(t.Original, candidates)
	t.Bin = bin

	action := c.Policy[bin]
	heuristic, selection, resolved := c.applyAction(action, t.Original, bin, candidates)
	t.Heuristic = heuristic
	t.Selection = selection
	t.Resolved = resolved
}

func candidateStrings(kbest []token.KBest) []string {
	out := make([]string, len(kbest))
	for i, k := range kbest {
		out[i] = k.Candidate
	}
	return out
}

// applyAction resolves one bin's policy action into a (heuristic,
// selection, resolved) triple. The "d" action falls back to "a" when no
// candidate is in the dictionary (spec §4.4); the annotator call itself
// is memoized by original string.
func (c *Corrector) applyAction(action Action, original string, bin int, candidates []string) (token.Heuristic, string, bool) {
	switch action {
	case ActionOriginal:
		return token.HeuristicOriginal, original, true
	case ActionKBest:
		top := ""
		if len(candidates) > 0 {
			top = candidates[0]
		}
		return token.HeuristicKBest, top, true
	case ActionDictBest:
		for _, cand := range candidates {
			if c.Dictionary.Contains(cand) {
				return token.HeuristicKDict, cand, true
			}
		}
		return c.resolveAnnotator(original, bin, candidates)
	case ActionAnnotator:
		return c.resolveAnnotator(original, bin, candidates)
	default:
		return c.resolveAnnotator(original, bin, candidates)
	}
}

// resolveAnnotator consults the memoization table, falling back to the
// configured Annotate callback (or leaving the token unresolved, as a
// needs-annotation marker, when no callback is configured).
func (c *Corrector) resolveAnnotator(original string, bin int, candidates []string) (token.Heuristic, string, bool) {
	c.mu.Lock()
	if sel, ok := c.memo[original]; ok {
		c.mu.Unlock()
		return token.HeuristicAnnotator, sel, true
	}
	c.mu.Unlock()

	if c.Annotate == nil {
		return token.HeuristicAnnotator, "", false
	}

	sel := c.Annotate(original, bin, candidates)

	c.mu.Lock()
	c.memo[original] = sel
	c.memoBins[original] = bin
	c.mu.Unlock()

	return token.HeuristicAnnotator, sel, true
}

// BinTokens classifies and resolves every word token in list, skipping
// tokens already resolved unless force is true. Hyphenated tokens
// propagate their bin/heuristic/selection to the immediately following
// token (spec §9.11, grounded on heuristics.py's bin_tokens hyphenation
// handling); a token that received propagated values is not classified
// again in the same call. Returns the number of tokens (re)classified
// this call, propagated ones included.
func (c *Corrector) BinTokens(list *token.List, force bool) int {
	modified := 0
	propagated := -1
	for i, t := range list.Tokens {
		if i == propagated || t.IsPunctuation() || t.IsDiscarded {
			continue
		}
		if !force && t.Resolved {
			continue
		}
		c.Resolve(t)
		modified++

		if t.IsHyphenated && i+1 < len(list.Tokens) {
			next := list.Tokens[i+1]
			next.Bin = t.Bin
			next.Heuristic = t.Heuristic
			next.Selection = t.Selection
			next.Resolved = t.Resolved
			propagated = i + 1
			modified++
		}
	}
	return modified
}
