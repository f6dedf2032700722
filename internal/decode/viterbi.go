// Package decode implements k-best Viterbi decoding over the
// character HMM, multi-character substitution expansion, and a
// content-addressed decode cache (spec §4.3).
package decode

import (
	"math"
	"sort"

	"github.com/correctocr/correctocr/internal/alphabet"
	"github.com/correctocr/correctocr/internal/model"
)

// Candidate is a single decoded hypothesis: a candidate gold string
// and its log-probability under the HMM.
type Candidate struct {
	String  string
	LogProb float64
}

// path is one entry of a per-state k-best beam: the states visited so
// far (used only to reconstruct the candidate string) and its
// log-probability.
type path struct {
	states  []int // state indices visited, length = current t+1
	logProb float64
}

// KBestViterbi runs the spec §4.3.1 k-best Viterbi decoder over w,
// returning exactly k candidates sorted by descending log-probability,
// ties broken lexicographically by candidate string. If fewer than k
// distinct strings exist, the result is padded with ("", -Inf) per
// spec §9(c).
func KBestViterbi(h *model.HMM, w string, k int) []Candidate {
	obs := observationIndices(h.Alphabet, w)
	if len(obs) == 0 {
		return padTo([]Candidate{{String: "", LogProb: 0}}, k)
	}

	n := h.N()
	k = max(k, 1)

	// beam[s] holds the k best paths ending in state s (spec §4.3.1's
	// δ[t,s,r]), not a single pool pruned across all states combined: a
	// state that doesn't make a global top-k can still be the correct
	// predecessor of the eventual best path through a different final
	// state at the next time step.
	beam := initBeam(h, obs[0], n, k)

	for t := 1; t < len(obs); t++ {
		beam = stepBeam(h, beam, obs[t], n, k)
	}

	candidates := make([]Candidate, 0, n*k)
	for _, paths := range beam {
		for _, p := range paths {
			candidates = append(candidates, Candidate{
				String:  statesToString(h.Alphabet, p.states),
				LogProb: p.logProb,
			})
		}
	}
	candidates = dedupeBest(candidates)
	sortCandidates(candidates)
	return padTo(candidates, k)
}

// observationIndices maps each rune of w to its alphabet index, or
// alphabet.UnknownIndex if unseen (spec §4.3.1's unknown-symbol rule).
func observationIndices(alpha *alphabet.Alphabet, w string) []int {
	rs := []rune(w)
	idx := make([]int, len(rs))
	for i, r := range rs {
		idx[i] = alpha.Index(r)
	}
	return idx
}

// initBeam seeds δ[0,s,·]: at t=0 there is exactly one path ending in
// each state s, so each state's beam is a single entry.
func initBeam(h *model.HMM, obs0 int, n, k int) [][]path {
	beam := make([][]path, n)
	for s := 0; s < n; s++ {
		lp := h.LogPi(s) + h.LogB(s, obs0)
		beam[s] = []path{{states: []int{s}, logProb: lp}}
	}
	return beam
}

// stepBeam computes δ[t,·,·] from δ[t-1,·,·]: for every state s, it
// considers extending every surviving path ending in every predecessor
// state into s, then keeps only the k best among those candidates
// (spec §4.3.1). Pruning happens per destination state, not pooled
// across all of them, so a predecessor that ranks poorly overall but
// is the unique route into some state s is never discarded before it
// gets the chance to compete for s's own beam.
func stepBeam(h *model.HMM, beam [][]path, obsT int, n, k int) [][]path {
	next := make([][]path, n)
	for s := 0; s < n; s++ {
		cands := make([]path, 0, n*k)
		for prev := 0; prev < n; prev++ {
			for _, p := range beam[prev] {
				lp := p.logProb + h.LogA(prev, s) + h.LogB(s, obsT)
				states := make([]int, len(p.states)+1)
				copy(states, p.states)
				states[len(p.states)] = s
				cands = append(cands, path{states: states, logProb: lp})
			}
		}
		sortPathsWithAlphabet(h.Alphabet, cands)
		if len(cands) > k {
			cands = cands[:k]
		}
		next[s] = cands
	}
	return next
}

func sortPathsWithAlphabet(alpha *alphabet.Alphabet, paths []path) {
	sort.SliceStable(paths, func(i, j int) bool {
		if paths[i].logProb != paths[j].logProb {
			return paths[i].logProb > paths[j].logProb
		}
		return statesToString(alpha, paths[i].states) < statesToString(alpha, paths[j].states)
	})
}

func sortCandidates(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].LogProb != c[j].LogProb {
			return c[i].LogProb > c[j].LogProb
		}
		return c[i].String < c[j].String
	})
}

// dedupeBest keeps, for each distinct candidate string, only its
// highest-log-probability occurrence (two beam entries can reconstruct
// the same string via different state paths when B is not injective).
func dedupeBest(cands []Candidate) []Candidate {
	best := make(map[string]float64, len(cands))
	for _, c := range cands {
		if existing, ok := best[c.String]; !ok || c.LogProb > existing {
			best[c.String] = c.LogProb
		}
	}
	out := make([]Candidate, 0, len(best))
	for s, lp := range best {
		out = append(out, Candidate{String: s, LogProb: lp})
	}
	return out
}

func statesToString(alpha *alphabet.Alphabet, states []int) string {
	rs := make([]rune, len(states))
	for i, s := range states {
		rs[i] = alpha.Rune(s)
	}
	return string(rs)
}

// padTo pads cands with ("", -Inf) entries until it has exactly k
// elements (spec §9(c)), or truncates if it has more.
func padTo(cands []Candidate, k int) []Candidate {
	if len(cands) >= k {
		return cands[:k]
	}
	out := make([]Candidate, k)
	copy(out, cands)
	for i := len(cands); i < k; i++ {
		out[i] = Candidate{String: "", LogProb: math.Inf(-1)}
	}
	return out
}
