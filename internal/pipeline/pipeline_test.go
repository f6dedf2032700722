package pipeline

import (
	"context"
	"testing"

	"github.com/correctocr/correctocr/internal/align"
	"github.com/correctocr/correctocr/internal/decode"
	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/correctocr/correctocr/internal/heuristics"
	"github.com/correctocr/correctocr/internal/model"
	"github.com/correctocr/correctocr/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTrivialHMM(t *testing.T) *model.HMM {
	t.Helper()
	pairs := []GoldNoisyPair{
		{Gold: "the", Noisy: "the"},
		{Gold: "the", Noisy: "thc"},
		{Gold: "cat", Noisy: "cat"},
	}
	hmm, err := Train(context.Background(), pairs, align.DefaultConfig(), model.DefaultConfig(), 2)
	require.NoError(t, err)
	return hmm
}

func TestAlignCorpus_MergesAcrossPairs(t *testing.T) {
	pairs := []GoldNoisyPair{
		{Gold: "the", Noisy: "thc"},
		{Gold: "the", Noisy: "thc"},
	}
	merged, err := AlignCorpus(context.Background(), pairs, align.DefaultConfig(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, merged['e']['c'])
}

func TestProcessDocument_DecodesAndBinsWords(t *testing.T) {
	hmm := buildTrivialHMM(t)
	dict := dictionary.New(true)
	dict.Add("the")
	dict.Add("cat")

	dec := decode.New(hmm, nil, 3, nil)
	corrector := heuristics.New(heuristics.DefaultPolicy(), dict, nil, nil)
	p := New(hmm, dec, corrector, Config{MaxWorkers: 2})

	list := token.New("doc1")
	list.Append(&token.Token{Original: "the", Type: token.Word})
	list.Append(&token.Token{Original: " ", Type: token.Whitespace})
	list.Append(&token.Token{Original: "cat", Type: token.Word})

	require.NoError(t, p.ProcessDocument(context.Background(), list))

	for _, tok := range list.Words() {
		assert.NotEmpty(t, tok.KBest)
		assert.True(t, tok.Bin >= 1 && tok.Bin <= 9)
	}
}

func TestProcessCorpus_MultipleDocuments(t *testing.T) {
	hmm := buildTrivialHMM(t)
	dict := dictionary.New(true)
	dict.Add("the")

	dec := decode.New(hmm, nil, 3, nil)
	corrector := heuristics.New(heuristics.DefaultPolicy(), dict, nil, nil)
	p := New(hmm, dec, corrector, Config{MaxWorkers: 2})

	var lists []*token.List
	for i := 0; i < 4; i++ {
		l := token.New("doc")
		l.Append(&token.Token{Original: "the", Type: token.Word})
		lists = append(lists, l)
	}

	require.NoError(t, p.ProcessCorpus(context.Background(), lists))
	for _, l := range lists {
		for _, tok := range l.Words() {
			assert.NotEmpty(t, tok.KBest)
		}
	}
}
