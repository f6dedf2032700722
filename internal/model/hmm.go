// Package model builds and represents the character-level HMM (Π, A,
// B) described in spec §3/§4.2: states are gold characters, and B
// models how each gold character is misread as a noisy one.
package model

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/correctocr/correctocr/internal/alphabet"
)

// UnknownLogEmission is the log-probability assigned to any observed
// character that is not a member of the HMM's alphabet (spec §4.3.1):
// a uniform emission of 1/|Σ|.
func UnknownLogEmission(sigmaSize int) float64 {
	if sigmaSize <= 0 {
		return 0
	}
	return -math.Log(float64(sigmaSize))
}

// HMM holds Π, A, B as dense arrays indexed through a shared Alphabet,
// plus their natural-log equivalents so that Viterbi never has to take
// a log in its inner loop.
type HMM struct {
	Alphabet *alphabet.Alphabet

	pi []float64 // [n]
	a  []float64 // [n*n], row-major: a[i*n+j] = A(state i, state j)
	b  []float64 // [n*n], row-major: b[i*n+j] = B(gold i, noisy j)

	logPi []float64
	logA  []float64
	logB  []float64
}

// New builds an HMM from raw probability tables. pi, a and b must
// already be normalized (see builder.go); New does not smooth or
// normalize, only checks the invariants in spec §4.2 and §8.
func New(alpha *alphabet.Alphabet, pi, a, b []float64) (*HMM, error) {
	n := alpha.Len()
	if len(pi) != n || len(a) != n*n || len(b) != n*n {
		return nil, fmt.Errorf("model: dimension mismatch: |Σ|=%d pi=%d a=%d b=%d", n, len(pi), len(a), len(b))
	}

	h := &HMM{Alphabet: alpha, pi: pi, a: a, b: b}
	if err := h.checkInvariants(); err != nil {
		return nil, err
	}
	h.precomputeLogs()
	return h, nil
}

const invariantTolerance = 1e-9

// checkInvariants verifies spec §4.2's post-build invariant: every row
// of A and B sums to 1 within 1e-9, and Π sums to 1. A failure here is
// a model-inconsistency error (spec §7), fatal at model load.
func (h *HMM) checkInvariants() error {
	n := h.Alphabet.Len()

	sum := 0.0
	for _, p := range h.pi {
		sum += p
	}
	if math.Abs(sum-1) > invariantTolerance {
		return fmt.Errorf("model: Π sums to %v, want 1", sum)
	}

	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			rowSum += h.a[i*n+j]
		}
		if math.Abs(rowSum-1) > invariantTolerance {
			return fmt.Errorf("model: A row %d (%q) sums to %v, want 1", i, h.Alphabet.Rune(i), rowSum)
		}
	}

	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			rowSum += h.b[i*n+j]
		}
		if math.Abs(rowSum-1) > invariantTolerance {
			return fmt.Errorf("model: B row %d (%q) sums to %v, want 1", i, h.Alphabet.Rune(i), rowSum)
		}
	}
	return nil
}

func (h *HMM) precomputeLogs() {
	h.logPi = make([]float64, len(h.pi))
	for i, p := range h.pi {
		h.logPi[i] = math.Log(p)
	}
	h.logA = make([]float64, len(h.a))
	for i, p := range h.a {
		h.logA[i] = math.Log(p)
	}
	h.logB = make([]float64, len(h.b))
	for i, p := range h.b {
		h.logB[i] = math.Log(p)
	}
}

// N returns |Σ|.
func (h *HMM) N() int { return h.Alphabet.Len() }

// LogPi returns log Π(state).
func (h *HMM) LogPi(state int) float64 { return h.logPi[state] }

// LogA returns log A(from, to).
func (h *HMM) LogA(from, to int) float64 { return h.logA[from*h.N()+to] }

// LogB returns log B(state, observed), or the unknown-symbol uniform
// fallback if observed is alphabet.UnknownIndex.
func (h *HMM) LogB(state, observed int) float64 {
	if observed == alphabet.UnknownIndex {
		return UnknownLogEmission(h.N())
	}
	return h.logB[state*h.N()+observed]
}

// Fingerprint deterministically hashes Π, A, B in canonical (sorted)
// character order, per the design note in spec §9: the result is the
// decode cache's content address for this model.
func (h *HMM) Fingerprint() string {
	n := h.N()
	hasher := sha256.New()
	buf := make([]byte, 8)

	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
		hasher.Write(buf)
	}

	for i := 0; i < n; i++ {
		hasher.Write([]byte(string(h.Alphabet.Rune(i))))
		writeFloat(h.pi[i])
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			writeFloat(h.a[i*n+j])
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			writeFloat(h.b[i*n+j])
		}
	}
	return fmt.Sprintf("%x", hasher.Sum(nil))
}
