package model

import (
	"math"
	"testing"

	"github.com/correctocr/correctocr/internal/align"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestBuild_TransitionRowsSumToOne verifies spec §4.2/§8's invariant
// that every row of A (and of B) is a probability distribution, for
// HMMs built from randomly generated gold/noisy corpora, not just the
// fixed fixtures in builder_test.go.
func TestBuild_TransitionRowsSumToOne(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every row of A and B sums to 1 within tolerance", prop.ForAll(
		func(words []string) bool {
			goldWords := make([]string, 0, len(words))
			misreads := make(align.MisreadCount)
			for _, w := range words {
				if w == "" {
					continue
				}
				goldWords = append(goldWords, w)
				a, _ := align.Align(w, w, align.DefaultConfig())
				misreads.Merge(align.FromAlignment(a))
			}
			if len(goldWords) == 0 {
				return true
			}

			hmm, err := Build(DefaultConfig(), misreads, goldWords)
			if err != nil {
				return false
			}

			n := hmm.N()
			for i := 0; i < n; i++ {
				sumA, sumB := 0.0, 0.0
				for j := 0; j < n; j++ {
					sumA += math.Exp(hmm.LogA(i, j))
					sumB += math.Exp(hmm.LogB(i, j))
				}
				if math.Abs(sumA-1) > 1e-6 || math.Abs(sumB-1) > 1e-6 {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.RegexMatch(`[a-z]{1,6}`)),
	))

	properties.TestingRun(t)
}
