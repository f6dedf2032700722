package heuristics

import (
	"testing"

	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/correctocr/correctocr/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDict(words ...string) *dictionary.Dictionary {
	d := dictionary.New(true)
	for _, w := range words {
		d.Add(w)
	}
	return d
}

func tokenWithKBest(original string, candidates ...string) *token.Token {
	kb := make([]token.KBest, len(candidates))
	for i, c := range candidates {
		kb[i] = token.KBest{Candidate: c, LogProb: -float64(i)}
	}
	return &token.Token{Original: original, Type: token.Word, KBest: kb}
}

func TestCorrector_Bin1_Original(t *testing.T) {
	dict := newTestDict("the", "thc")
	c := New(DefaultPolicy(), dict, nil, nil)
	tok := tokenWithKBest("the", "the", "thc")
	c.Resolve(tok)
	assert.Equal(t, 1, tok.Bin)
	assert.Equal(t, token.HeuristicOriginal, tok.Heuristic)
	assert.Equal(t, "the", tok.Selection)
	assert.True(t, tok.Resolved)
}

func TestCorrector_Bin3_DictBestFallsBackThroughLowerCandidate(t *testing.T) {
	dict := newTestDict("Wagon")
	policy := DefaultPolicy()
	policy[3] = ActionDictBest
	c := New(policy, dict, nil, nil)
	tok := tokenWithKBest("Wagor", "Wagor", "Vagor", "Wagon")
	c.Resolve(tok)
	assert.Equal(t, 3, tok.Bin)
	assert.Equal(t, token.HeuristicKDict, tok.Heuristic)
	assert.Equal(t, "Wagon", tok.Selection)
}

func TestCorrector_DictBestFallsBackToAnnotatorWhenNoneInDict(t *testing.T) {
	dict := newTestDict()
	policy := DefaultPolicy()
	policy[5] = ActionDictBest
	called := false
	annotate := func(original string, bin int, candidates []string) string {
		called = true
		return "manual"
	}
	c := New(policy, dict, annotate, nil)
	tok := tokenWithKBest("xyzzy", "xyzzy2")
	c.Resolve(tok)
	assert.Equal(t, 5, tok.Bin)
	assert.True(t, called)
	assert.Equal(t, token.HeuristicAnnotator, tok.Heuristic)
	assert.Equal(t, "manual", tok.Selection)
}

func TestCorrector_AnnotatorMemoization(t *testing.T) {
	dict := newTestDict()
	policy := DefaultPolicy()
	calls := 0
	annotate := func(original string, bin int, candidates []string) string {
		calls++
		return "fixed"
	}
	c := New(policy, dict, annotate, nil)

	tok1 := tokenWithKBest("zzz", "zzz2")
	tok2 := tokenWithKBest("zzz", "zzz3")
	c.Resolve(tok1)
	c.Resolve(tok2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "fixed", tok1.Selection)
	assert.Equal(t, "fixed", tok2.Selection)
}

func TestCorrector_PreseededMemoization(t *testing.T) {
	dict := newTestDict()
	policy := DefaultPolicy()
	c := New(policy, dict, nil, map[string]string{"zzz": "seeded"})
	tok := tokenWithKBest("zzz", "zzz2")
	c.Resolve(tok)
	assert.Equal(t, "seeded", tok.Selection)
	assert.True(t, tok.Resolved)
}

func TestCorrector_NoAnnotatorLeavesUnresolved(t *testing.T) {
	dict := newTestDict()
	c := New(DefaultPolicy(), dict, nil, nil)
	tok := tokenWithKBest("xyzzy", "xyzzy2")
	c.Resolve(tok)
	assert.False(t, tok.Resolved)
	assert.Equal(t, "", tok.Selection)
}

func TestCorrector_BinTokens_HyphenationPropagation(t *testing.T) {
	dict := newTestDict("the")
	c := New(DefaultPolicy(), dict, nil, nil)

	list := token.New("doc1")
	first := tokenWithKBest("the", "the")
	first.IsHyphenated = true
	second := tokenWithKBest("whatever-else", "somethingelse")
	list.Append(first)
	list.Append(second)

	modified := c.BinTokens(list, false)
	require.Equal(t, 2, modified)
	assert.Equal(t, first.Bin, second.Bin)
	assert.Equal(t, first.Heuristic, second.Heuristic)
	assert.Equal(t, first.Selection, second.Selection)
}

func TestCorrector_BinTokens_SkipsAlreadyResolvedUnlessForced(t *testing.T) {
	dict := newTestDict("the")
	c := New(DefaultPolicy(), dict, nil, nil)

	list := token.New("doc1")
	tok := tokenWithKBest("the", "the")
	tok.Resolved = true
	tok.Bin = 99
	list.Append(tok)

	modified := c.BinTokens(list, false)
	assert.Equal(t, 0, modified)
	assert.Equal(t, 99, tok.Bin)

	modified = c.BinTokens(list, true)
	assert.Equal(t, 1, modified)
	assert.Equal(t, 1, tok.Bin)
}

func TestCorrector_SkipsPunctuationAndDiscarded(t *testing.T) {
	dict := newTestDict()
	c := New(DefaultPolicy(), dict, nil, nil)

	list := token.New("doc1")
	punct := &token.Token{Original: ".", Type: token.Punctuation}
	discarded := tokenWithKBest("gone", "gone2")
	discarded.IsDiscarded = true
	list.Append(punct)
	list.Append(discarded)

	modified := c.BinTokens(list, true)
	assert.Equal(t, 0, modified)
}
