package decode

import (
	"sort"

	"github.com/correctocr/correctocr/internal/model"
)

// Decoder wraps k-best Viterbi decoding, multi-character substitution
// expansion and a content-addressed cache behind the single entry
// point used by the correction pipeline (spec §4.3).
type Decoder struct {
	HMM   *model.HMM
	Rules Rules
	K     int

	cache *Cache
}

// New returns a Decoder. cache may be nil, in which case decoding is
// never cached (useful for tests).
func New(h *model.HMM, rules Rules, k int, cache *Cache) *Decoder {
	if k <= 0 {
		k = 4
	}
	return &Decoder{HMM: h, Rules: rules, K: k, cache: cache}
}

// Decode returns the k-best candidates for w, merging the 1-to-1
// Viterbi result with multi-character substitution candidates (spec
// §4.3.1/§4.3.2), consulting and populating the cache if one is
// configured (spec §4.3.3). Decode is deterministic: repeated calls
// with the same (w, HMM, Rules, K) return bit-identical results (spec
// §8's determinism property).
func (d *Decoder) Decode(w string) []Candidate {
	if d.cache != nil {
		key := Fingerprint(w, d.HMM.Fingerprint(), FingerprintRules(d.Rules), d.K)
		return d.cache.GetOrCompute(key, func() []Candidate {
			return d.decodeUncached(w)
		})
	}
	return d.decodeUncached(w)
}

func (d *Decoder) decodeUncached(w string) []Candidate {
	if w == "" {
		return KBestViterbi(d.HMM, w, d.K)
	}

	base := KBestViterbi(d.HMM, w, d.K)
	if len(d.Rules) == 0 {
		return base
	}

	variants := expandSubstitutions(w, d.Rules)
	if len(variants) == 0 {
		return base
	}

	merged := make([]Candidate, 0, len(base)+len(variants))
	merged = append(merged, base...)
	for _, v := range variants {
		merged = append(merged, Candidate{String: v, LogProb: scoreHypothesis(d.HMM, v, w)})
	}
	merged = dedupeBest(merged)
	sortCandidates(merged)
	return padTo(merged, d.K)
}

// DecodeBatch decodes every token string in ws sequentially, preserving
// order. The pipeline package does not use it: its worker pool calls
// Decode once per token.
func (d *Decoder) DecodeBatch(ws []string) [][]Candidate {
	out := make([][]Candidate, len(ws))
	for i, w := range ws {
		out[i] = d.Decode(w)
	}
	return out
}

// TopInDictionary scans k (in rank order, starting at index `from`)
// and returns the first candidate whose string is a dictionary member
// according to contains, along with its rank (1-based). ok is false if
// none match.
func TopInDictionary(k []Candidate, from int, contains func(string) bool) (candidate Candidate, rank int, ok bool) {
	for i := from; i < len(k); i++ {
		if contains(k[i].String) {
			return k[i], i + 1, true
		}
	}
	return Candidate{}, 0, false
}

// SortedRuleKeys returns the gold substrings of rules in deterministic
// (sorted) order, useful for callers that need repeatable iteration
// (map iteration order is not stable in Go).
func SortedRuleKeys(rules Rules) []string {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
