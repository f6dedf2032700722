package decode

import (
	"strings"

	"github.com/correctocr/correctocr/internal/align"
	"github.com/correctocr/correctocr/internal/alphabet"
	"github.com/correctocr/correctocr/internal/model"
)

// Rules is the multi-character substitution rule set M from spec §3:
// a gold substring mapped to the list of noisy substrings it may
// surface as (e.g. "m" -> ["im", "rn"]).
type Rules map[string][]string

// expandSubstitutions generates substitution-candidate gold strings
// for w under rules M (spec §4.3.2): for every rule and every
// occurrence of a noisy substring in w, one hypothesis is produced
// with that single occurrence rewritten to the gold substring. Rules
// are applied at most once per occurrence; occurrences are not
// re-scanned after a rewrite (no cascading).
func expandSubstitutions(w string, rules Rules) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(candidate string) {
		if candidate == w {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}

	for goldSub, noisySubs := range rules {
		if goldSub == "" {
			continue
		}
		for _, noisySub := range noisySubs {
			if noisySub == "" {
				continue
			}
			for _, pos := range occurrences(w, noisySub) {
				add(w[:pos] + goldSub + w[pos+len(noisySub):])
			}
		}
	}
	return out
}

// occurrences returns the start byte offsets of every non-overlapping,
// left-to-right occurrence of sub in s.
func occurrences(s, sub string) []int {
	var positions []int
	start := 0
	for {
		idx := strings.Index(s[start:], sub)
		if idx < 0 {
			break
		}
		pos := start + idx
		positions = append(positions, pos)
		start = pos + len(sub)
	}
	return positions
}

// scoreHypothesis computes the log-probability that hypothesis gold
// string g produced observed noisy string w under the HMM (spec
// §4.3.2). When g and w are the same length, this is a direct
// character-by-character score along the fixed state sequence g. When
// lengths differ (a substitution rule changed the string length), g
// and w are first globally aligned with the same Needleman–Wunsch
// scoring used by the aligner (spec §4.1), and the HMM score is
// accumulated along that alignment: insertions (gold gap) and
// deletions (noisy gap) are charged the unknown-symbol uniform
// emission in place of a real B lookup, since the HMM has no state to
// emit from or into across a gap. This is the implementation's chosen
// resolution of spec §9's open question (a).
func scoreHypothesis(h *model.HMM, g, w string) float64 {
	gr, wr := []rune(g), []rune(w)
	if len(gr) == len(wr) {
		return scoreAligned(h, gr, wr)
	}
	alignment, _ := align.Align(g, w, align.DefaultConfig())
	return scoreAlignment(h, alignment)
}

// scoreAligned scores a hypothesis of equal length to the observation:
// no gaps are possible, so every position contributes a transition and
// an emission.
func scoreAligned(h *model.HMM, g, w []rune) float64 {
	if len(g) == 0 {
		return 0
	}
	prev := h.Alphabet.Index(g[0])
	logProb := h.LogPi(prev) + h.LogB(prev, h.Alphabet.Index(w[0]))
	for i := 1; i < len(g); i++ {
		cur := h.Alphabet.Index(g[i])
		logProb += h.LogA(prev, cur) + h.LogB(cur, h.Alphabet.Index(w[i]))
		prev = cur
	}
	return logProb
}

// scoreAlignment scores a gapped alignment between a hypothesis gold
// string and the observed noisy string.
func scoreAlignment(h *model.HMM, alignment align.Alignment) float64 {
	logProb := 0.0
	prevState := alphabet.UnknownIndex
	first := true

	for _, p := range alignment {
		switch {
		case p.IsInsertion():
			// Noisy character with no corresponding gold state: charge
			// the uniform fallback, HMM state does not advance.
			logProb += model.UnknownLogEmission(h.N())
		case p.IsDeletion():
			// Gold character consumed with no noisy emission: advance
			// the transition, charge the uniform fallback in place of
			// a real emission.
			cur := h.Alphabet.Index(p.Gold)
			if first {
				logProb += h.LogPi(cur)
				first = false
			} else {
				logProb += h.LogA(prevState, cur)
			}
			logProb += model.UnknownLogEmission(h.N())
			prevState = cur
		default:
			cur := h.Alphabet.Index(p.Gold)
			obs := h.Alphabet.Index(p.Noisy)
			if first {
				logProb += h.LogPi(cur)
				first = false
			} else {
				logProb += h.LogA(prevState, cur)
			}
			logProb += h.LogB(cur, obs)
			prevState = cur
		}
	}
	return logProb
}
