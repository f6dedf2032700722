package model

import (
	"encoding/json"
	"fmt"

	"github.com/correctocr/correctocr/internal/alphabet"
)

// wireHMM is the on-disk shape of an HMM: three nested mappings keyed
// by single-character strings, matching spec §4.2's serialization
// contract. They are written as one JSON object under the keys
// "initial", "transition" and "emission", not as a three-element list.
type wireHMM struct {
	Initial    map[string]float64            `json:"initial"`
	Transition map[string]map[string]float64 `json:"transition"`
	Emission   map[string]map[string]float64 `json:"emission"`
}

// MarshalJSON renders the HMM in the wire format.
func (h *HMM) MarshalJSON() ([]byte, error) {
	n := h.N()
	w := wireHMM{
		Initial:    make(map[string]float64, n),
		Transition: make(map[string]map[string]float64, n),
		Emission:   make(map[string]map[string]float64, n),
	}
	for i := 0; i < n; i++ {
		key := string(h.Alphabet.Rune(i))
		w.Initial[key] = h.pi[i]

		tranRow := make(map[string]float64, n)
		emisRow := make(map[string]float64, n)
		for j := 0; j < n; j++ {
			other := string(h.Alphabet.Rune(j))
			tranRow[other] = h.a[i*n+j]
			emisRow[other] = h.b[i*n+j]
		}
		w.Transition[key] = tranRow
		w.Emission[key] = emisRow
	}
	return json.Marshal(w)
}

// ParseJSON reconstructs an HMM from the wire format produced by
// MarshalJSON. The alphabet's index assignment is re-derived from the
// sorted key set, so a byte-identical reload reproduces the same
// decoding decisions (spec §4.2).
func ParseJSON(data []byte) (*HMM, error) {
	var w wireHMM
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("model: parse HMM: %w", err)
	}

	b := alphabet.NewBuilder()
	for key := range w.Initial {
		for _, r := range key {
			b.Add(r)
		}
	}
	alpha := b.Freeze()
	n := alpha.Len()

	pi := make([]float64, n)
	a := make([]float64, n*n)
	bm := make([]float64, n*n)

	for i := 0; i < n; i++ {
		key := string(alpha.Rune(i))
		p, ok := w.Initial[key]
		if !ok {
			return nil, fmt.Errorf("model: missing initial probability for %q", key)
		}
		pi[i] = p

		tranRow, ok := w.Transition[key]
		if !ok {
			return nil, fmt.Errorf("model: missing transition row for %q", key)
		}
		emisRow, ok := w.Emission[key]
		if !ok {
			return nil, fmt.Errorf("model: missing emission row for %q", key)
		}
		for j := 0; j < n; j++ {
			other := string(alpha.Rune(j))
			tp, ok := tranRow[other]
			if !ok {
				return nil, fmt.Errorf("model: missing transition %q -> %q", key, other)
			}
			ep, ok := emisRow[other]
			if !ok {
				return nil, fmt.Errorf("model: missing emission %q -> %q", key, other)
			}
			a[i*n+j] = tp
			bm[i*n+j] = ep
		}
	}

	return New(alpha, pi, a, bm)
}
