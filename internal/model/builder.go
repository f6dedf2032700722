package model

import (
	"github.com/correctocr/correctocr/internal/align"
	"github.com/correctocr/correctocr/internal/alphabet"
)

// DefaultLambda is the additive emission-smoothing parameter from
// spec §6 ("λ — emission smoothing (default 10⁻⁶)").
const DefaultLambda = 1e-6

// Config controls HMM estimation (spec §4.2).
type Config struct {
	// Lambda is the Lidstone smoothing parameter added to every (g, n)
	// emission cell before normalization.
	Lambda float64
	// Extension is an additional character set E injected as extra
	// HMM states even when absent from the training data; rows for
	// these states receive Lidstone smoothing only, so they emit
	// uniformly until trained (spec §4.2).
	Extension []rune
	// DictionaryWords optionally folds a word list into the Π/A
	// frequency counts alongside the gold corpus, the way
	// original_source/CorrectOCR/model.py's init_tran_probabilities
	// mixes in the dictionary to widen character-bigram coverage.
	DictionaryWords []string
}

// DefaultConfig returns Config with the spec's default λ and no
// extension characters.
func DefaultConfig() Config {
	return Config{Lambda: DefaultLambda}
}

// Build estimates Π, A, B from accumulated misread counts and a gold
// corpus (spec §4.2). goldWords is the tokenized gold text (not raw
// documents); misreads is the aggregated output of the aligner across
// the training corpus.
func Build(cfg Config, misreads align.MisreadCount, goldWords []string) (*HMM, error) {
	if cfg.Lambda <= 0 {
		cfg.Lambda = DefaultLambda
	}

	alpha := buildAlphabet(misreads, goldWords, cfg.Extension)

	pi := estimateInitial(alpha, goldWords, cfg.DictionaryWords)
	a := estimateTransition(alpha, goldWords, cfg.DictionaryWords)
	b := estimateEmission(alpha, misreads, cfg.Lambda)

	return New(alpha, pi, a, b)
}

// buildAlphabet derives Σ from the gold and noisy characters observed
// in misreads and goldWords, plus the extension set E (spec §4.2
// "(iii) the base alphabet Σ (derived from keys of MisreadCount)").
func buildAlphabet(misreads align.MisreadCount, goldWords []string, extension []rune) *alphabet.Alphabet {
	b := alphabet.NewBuilder()
	for g, row := range misreads {
		if g != align.GapRune {
			b.Add(g)
		}
		for n := range row {
			if n != align.GapRune {
				b.Add(n)
			}
		}
	}
	for _, w := range goldWords {
		b.AddString(w)
	}
	b.AddExtension(extension)
	return b.Freeze()
}

// estimateInitial computes Π(c) = (1 + count of tokens starting with
// c) / (|Σ| + total tokens), Laplace-smoothed (spec §4.2).
func estimateInitial(alpha *alphabet.Alphabet, goldWords, dictionaryWords []string) []float64 {
	n := alpha.Len()
	counts := make([]float64, n)
	total := 0

	addWord := func(w string) {
		rs := []rune(w)
		if len(rs) == 0 {
			return
		}
		if i := alpha.Index(rs[0]); i != alphabet.UnknownIndex {
			counts[i]++
		}
		total++
	}
	for _, w := range goldWords {
		addWord(w)
	}
	for _, w := range dictionaryWords {
		addWord(w)
	}

	pi := make([]float64, n)
	denom := float64(n) + float64(total)
	for i := range pi {
		pi[i] = (1 + counts[i]) / denom
	}
	return pi
}

// estimateTransition computes A(c1, c2) = (1 + bigram count) / (|Σ| +
// count of c1), Laplace-smoothed (spec §4.2).
func estimateTransition(alpha *alphabet.Alphabet, goldWords, dictionaryWords []string) []float64 {
	n := alpha.Len()
	counts := make([]float64, n*n)
	rowTotal := make([]float64, n)

	addWord := func(w string) {
		rs := []rune(w)
		for k := 0; k+1 < len(rs); k++ {
			i := alpha.Index(rs[k])
			j := alpha.Index(rs[k+1])
			if i == alphabet.UnknownIndex || j == alphabet.UnknownIndex {
				continue
			}
			counts[i*n+j]++
			rowTotal[i]++
		}
	}
	for _, w := range goldWords {
		addWord(w)
	}
	for _, w := range dictionaryWords {
		addWord(w)
	}

	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		denom := float64(n) + rowTotal[i]
		for j := 0; j < n; j++ {
			a[i*n+j] = (1 + counts[i*n+j]) / denom
		}
	}
	return a
}

// estimateEmission computes B(g, n) by seeding every cell with λ,
// adding observed MisreadCount, then normalizing each row (spec §4.2).
// A state with no observed misreads at all (e.g. an extension
// character) ends up with every cell equal to λ, which normalizes to a
// uniform row — the "emit uniformly until trained" invariant.
func estimateEmission(alpha *alphabet.Alphabet, misreads align.MisreadCount, lambda float64) []float64 {
	n := alpha.Len()
	b := make([]float64, n*n)

	for i := 0; i < n; i++ {
		g := alpha.Rune(i)
		row := misreads[g]
		rowSum := 0.0
		for j := 0; j < n; j++ {
			noisy := alpha.Rune(j)
			v := lambda
			if row != nil {
				v += float64(row[noisy])
			}
			b[i*n+j] = v
			rowSum += v
		}
		for j := 0; j < n; j++ {
			b[i*n+j] /= rowSum
		}
	}
	return b
}
