package decode

import (
	"math"
	"testing"

	"github.com/correctocr/correctocr/internal/alphabet"
	"github.com/correctocr/correctocr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityHMM builds Π(a)=1, A(a,a)=1, B(a,a)=0.9, B(a,b)=0.1, as in
// spec §8 scenario 4.
func identityHMM(t *testing.T) *model.HMM {
	t.Helper()
	b := alphabet.NewBuilder()
	b.Add('a')
	b.Add('b')
	alpha := b.Freeze()

	ai, bi := alpha.Index('a'), alpha.Index('b')
	n := alpha.Len()

	pi := make([]float64, n)
	pi[ai] = 1

	a := make([]float64, n*n)
	a[ai*n+ai] = 1
	if bi != ai {
		// B state needs a transition row too, even if unused by "a"-only words.
		a[bi*n+bi] = 1
	}

	bMat := make([]float64, n*n)
	bMat[ai*n+ai] = 0.9
	bMat[ai*n+bi] = 0.1
	bMat[bi*n+ai] = 0.5
	bMat[bi*n+bi] = 0.5

	hmm, err := model.New(alpha, pi, a, bMat)
	require.NoError(t, err)
	return hmm
}

func TestKBestViterbi_IdentityHMM(t *testing.T) {
	hmm := identityHMM(t)

	cands := KBestViterbi(hmm, "aaab", 2)
	require.Len(t, cands, 2)

	assert.Equal(t, "aaaa", cands[0].String)
	expected := 3*math.Log(0.9) + math.Log(0.1)
	assert.InDelta(t, expected, cands[0].LogProb, 1e-9)
}

func TestKBestViterbi_Deterministic(t *testing.T) {
	hmm := identityHMM(t)
	first := KBestViterbi(hmm, "aaab", 3)
	second := KBestViterbi(hmm, "aaab", 3)
	assert.Equal(t, first, second)
}

func TestKBestViterbi_Monotonic(t *testing.T) {
	hmm := identityHMM(t)
	cands := KBestViterbi(hmm, "aaab", 4)
	for i := 1; i < len(cands); i++ {
		assert.GreaterOrEqual(t, cands[i-1].LogProb, cands[i].LogProb)
	}
}

func TestKBestViterbi_PadsWithEmptyWhenFewerPaths(t *testing.T) {
	hmm := identityHMM(t)
	cands := KBestViterbi(hmm, "a", 5)
	require.Len(t, cands, 5)
	for _, c := range cands[2:] {
		assert.Equal(t, "", c.String)
		assert.True(t, math.IsInf(c.LogProb, -1))
	}
}

func TestKBestViterbi_UnknownCharacterUsesUniformFallback(t *testing.T) {
	hmm := identityHMM(t)
	cands := KBestViterbi(hmm, "ax", 2)
	require.NotEmpty(t, cands)
	assert.False(t, math.IsInf(cands[0].LogProb, -1))
}

// denseHMM builds a 3-state HMM where every Π/A/B entry is nonzero, so
// every state is a live competitor at every time step: the true k-best
// paths through it can only be found by tracking the best paths ending
// in *each* state, not by pruning to a single global top-k pool.
func denseHMM(t *testing.T) *model.HMM {
	t.Helper()
	b := alphabet.NewBuilder()
	b.Add('a')
	b.Add('b')
	b.Add('c')
	alpha := b.Freeze()

	pi := []float64{0.5, 0.3, 0.2}
	a := []float64{
		0.6, 0.3, 0.1,
		0.2, 0.5, 0.3,
		0.3, 0.3, 0.4,
	}
	bMat := []float64{
		0.7, 0.2, 0.1,
		0.1, 0.6, 0.3,
		0.2, 0.2, 0.6,
	}

	hmm, err := model.New(alpha, pi, a, bMat)
	require.NoError(t, err)
	return hmm
}

// bruteForceKBest enumerates every state sequence of length len(obs)
// directly, dedupes by reconstructed string keeping the best
// log-probability, and returns the top k sorted the same way
// KBestViterbi promises to: descending log-probability, ties broken
// lexicographically.
func bruteForceKBest(h *model.HMM, obs []int, k int) []Candidate {
	n := h.N()
	best := make(map[string]float64)

	var walk func(states []int, logProb float64)
	walk = func(states []int, logProb float64) {
		t := len(states)
		if t == len(obs) {
			s := statesToString(h.Alphabet, states)
			if existing, ok := best[s]; !ok || logProb > existing {
				best[s] = logProb
			}
			return
		}
		for s := 0; s < n; s++ {
			next := append(append([]int{}, states...), s)
			var lp float64
			if t == 0 {
				lp = logProb + h.LogPi(s) + h.LogB(s, obs[0])
			} else {
				lp = logProb + h.LogA(states[t-1], s) + h.LogB(s, obs[t])
			}
			walk(next, lp)
		}
	}
	walk(nil, 0)

	cands := make([]Candidate, 0, len(best))
	for s, lp := range best {
		cands = append(cands, Candidate{String: s, LogProb: lp})
	}
	sortCandidates(cands)
	return padTo(cands, k)
}

// TestKBestViterbi_MatchesBruteForceOverAllPaths guards against pruning
// the k-best beam to a single pool shared across all states: with three
// live states and a four-symbol observation, a predecessor that fails
// to make a pooled top-k can still be required to reach the true best
// path through a different state at the next step.
func TestKBestViterbi_MatchesBruteForceOverAllPaths(t *testing.T) {
	hmm := denseHMM(t)
	obs := []int{0, 1, 2, 0} // "abca"

	const k = 3
	got := KBestViterbi(hmm, "abca", k)
	want := bruteForceKBest(hmm, obs, k)

	require.Len(t, got, k)
	for i := range want {
		assert.Equal(t, want[i].String, got[i].String, "rank %d", i)
		assert.InDelta(t, want[i].LogProb, got[i].LogProb, 1e-9, "rank %d", i)
	}
}
