package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign_Identical(t *testing.T) {
	alignment, counts := Align("hello", "hello", DefaultConfig())

	require.Len(t, alignment, 5)
	for _, p := range alignment {
		assert.Equal(t, p.Gold, p.Noisy)
	}
	assert.Equal(t, "hello", alignment.Gold())
	assert.Equal(t, "hello", alignment.Noisy())

	assert.Equal(t, 1, counts['h']['h'])
	assert.Equal(t, 1, counts['e']['e'])
	assert.Equal(t, 2, counts['l']['l'])
	assert.Equal(t, 1, counts['o']['o'])
}

func TestAlign_SubstitutionTieBreak(t *testing.T) {
	// G = "rn", N = "m": diagonal > up > left means the aligner prefers
	// pairing (r,m) over a gap, and deleting the trailing 'n'.
	alignment, counts := Align("rn", "m", DefaultConfig())

	require.Len(t, alignment, 2)
	assert.Equal(t, Pair{Gold: 'r', Noisy: 'm'}, alignment[0])
	assert.Equal(t, Pair{Gold: 'n', Noisy: GapRune}, alignment[1])

	assert.Equal(t, "rn", alignment.Gold())
	assert.Equal(t, "m", alignment.Noisy())

	assert.Equal(t, 1, counts['r']['m'])
	assert.Equal(t, 1, counts['n'][GapRune])
}

func TestAlign_EmptyBoth(t *testing.T) {
	alignment, counts := Align("", "", DefaultConfig())
	assert.Empty(t, alignment)
	assert.Empty(t, counts)
}

func TestAlign_OneSideEmpty(t *testing.T) {
	alignment, _ := Align("abc", "", DefaultConfig())
	require.Len(t, alignment, 3)
	for _, p := range alignment {
		assert.Equal(t, GapRune, p.Noisy)
	}

	alignment, _ = Align("", "xyz", DefaultConfig())
	require.Len(t, alignment, 3)
	for _, p := range alignment {
		assert.Equal(t, GapRune, p.Gold)
	}
}

func TestAlign_RoundTrip(t *testing.T) {
	cases := []struct{ gold, noisy string }{
		{"hello", "hello"},
		{"rn", "m"},
		{"modern", "modem"},
		{"the quick", "tlie qnick"},
		{"", "abc"},
		{"abc", ""},
	}
	for _, c := range cases {
		alignment, _ := Align(c.gold, c.noisy, DefaultConfig())
		assert.Equal(t, c.gold, alignment.Gold())
		assert.Equal(t, c.noisy, alignment.Noisy())
	}
}

func TestAlign_ChunkedMatchesFull(t *testing.T) {
	gold := "the quick brown fox jumps over the lazy dog repeatedly through the forest"
	noisy := "tlie qnick brown fox jurnps over the lazy clog repeatedly tlirough the forest"

	full, fullCounts := Align(gold, noisy, Config{AnchorLength: 5, CellBudget: 1 << 30})
	chunked, chunkedCounts := Align(gold, noisy, Config{AnchorLength: 3, CellBudget: 1})

	assert.Equal(t, gold, chunked.Gold())
	assert.Equal(t, noisy, chunked.Noisy())
	assert.Equal(t, gold, full.Gold())
	assert.Equal(t, noisy, full.Noisy())
	assert.Equal(t, sum(fullCounts), sum(chunkedCounts))
}

func sum(m MisreadCount) int {
	total := 0
	for _, row := range m {
		for _, c := range row {
			total += c
		}
	}
	return total
}
