package align

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestAlign_RoundTripsGoldAndNoisy verifies spec §8's alignment
// round-trip invariant: stripping ε from each coordinate of the
// alignment reproduces the original gold/noisy strings exactly.
func TestAlign_RoundTripsGoldAndNoisy(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("alignment strips back to the original strings", prop.ForAll(
		func(gold, noisy string) bool {
			alignment, _ := Align(gold, noisy, DefaultConfig())
			return alignment.Gold() == gold && alignment.Noisy() == noisy
		},
		gen.RegexMatch(`[a-zA-Z]{0,12}`),
		gen.RegexMatch(`[a-zA-Z]{0,12}`),
	))

	properties.TestingRun(t)
}

// TestAlign_NeverBothGap verifies spec §3's Pair invariant: no column
// of an alignment has both coordinates equal to the gap rune.
func TestAlign_NeverBothGap(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no alignment column is (gap, gap)", prop.ForAll(
		func(gold, noisy string) bool {
			alignment, _ := Align(gold, noisy, DefaultConfig())
			for _, p := range alignment {
				if p.Gold == GapRune && p.Noisy == GapRune {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`[a-zA-Z]{0,12}`),
		gen.RegexMatch(`[a-zA-Z]{0,12}`),
	))

	properties.TestingRun(t)
}

// TestFromAlignment_MisreadCountMatchesColumnCount verifies the misread
// tally derived from one alignment always sums to the alignment's
// column count, i.e. every column is counted exactly once.
func TestFromAlignment_MisreadCountMatchesColumnCount(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("misread counts sum to the alignment length", prop.ForAll(
		func(gold, noisy string) bool {
			alignment, _ := Align(gold, noisy, DefaultConfig())
			counts := FromAlignment(alignment)

			total := 0
			for _, row := range counts {
				for _, c := range row {
					total += c
				}
			}
			return total == len(alignment)
		},
		gen.RegexMatch(`[a-zA-Z]{0,12}`),
		gen.RegexMatch(`[a-zA-Z]{0,12}`),
	))

	properties.TestingRun(t)
}
