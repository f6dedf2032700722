package heuristics

import (
	"strings"
	"testing"

	"github.com/correctocr/correctocr/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_AddAndRender(t *testing.T) {
	r := NewReport()

	list := token.New("doc1")

	resolvedGold := tokenWithKBest("the", "the", "thc")
	resolvedGold.Bin = 1
	resolvedGold.Heuristic = token.HeuristicOriginal
	resolvedGold.Gold = "the"
	list.Append(resolvedGold)

	annotated := tokenWithKBest("teh", "the", "teh")
	annotated.Bin = 9
	annotated.Heuristic = token.HeuristicAnnotator
	annotated.Gold = "the"
	list.Append(annotated)

	punct := &token.Token{Original: ".", Type: token.Punctuation, Gold: "."}
	list.Append(punct)

	r.Add(list)

	require.Equal(t, 3, r.totalCount)
	assert.Equal(t, 1, r.punctuationCt)
	assert.Equal(t, 2, r.tokenCount)
	assert.Equal(t, 1, r.bins[1].total)
	assert.Equal(t, 1, r.bins[9].total)
	assert.Equal(t, 1, r.bins[1].categories["(A) gold == original"])
	assert.Equal(t, 1, r.bins[9].categories["(B) gold == top candidate"])
	assert.Equal(t, 1, r.bins[9].categories["(E) annotator chose the top candidate"])

	out := r.String()
	assert.True(t, strings.Contains(out, "BIN 1"))
	assert.True(t, strings.Contains(out, "BIN 9"))
}

func TestReport_SegmentationCounters(t *testing.T) {
	r := NewReport()
	list := token.New("doc1")

	under := tokenWithKBest("", "")
	under.Gold = "ran together"
	list.Append(under)

	over := tokenWithKBest("splitapart", "splitapart")
	over.Gold = ""
	list.Append(over)

	r.Add(list)

	assert.Equal(t, 1, r.underSegmented)
	assert.Equal(t, 1, r.overSegmented)
	assert.Equal(t, 0, r.tokenCount)
}
