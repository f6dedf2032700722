// Package alphabet maps the character alphabet Σ used by the aligner,
// model builder and decoder onto a dense integer index space, so that
// Π/A/B can live in flat arrays instead of string-keyed maps.
package alphabet

import "sort"

// GapRune is the alignment gap symbol ε. It is never a member of Σ
// proper; the aligner uses it to mark insertions and deletions.
const GapRune = rune(0)

// UnknownIndex is the reserved index for any rune that is not a member
// of the alphabet at decode time. It is backed by a uniform emission
// fallback (see the decode package) rather than a learned row.
const UnknownIndex = -1

// Alphabet is an immutable, dense encoding of Σ. Build one with
// NewBuilder, then Freeze it; the index assignment is deterministic
// (sorted rune order) so that two builds from the same character set
// produce byte-identical HMM serializations.
type Alphabet struct {
	runes   []rune
	indexOf map[rune]int
}

// Builder accumulates runes (from training data and an explicit
// extension set) before the alphabet's index assignment is finalized.
type Builder struct {
	seen map[rune]struct{}
}

// NewBuilder returns an empty alphabet builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[rune]struct{})}
}

// Add records r as a member of Σ.
func (b *Builder) Add(r rune) {
	if r == GapRune {
		return
	}
	b.seen[r] = struct{}{}
}

// AddString records every rune in s.
func (b *Builder) AddString(s string) {
	for _, r := range s {
		b.Add(r)
	}
}

// AddExtension merges an extension character set E into the alphabet
// under construction. Extension characters get the same treatment as
// training characters; model.Build gives any character without
// training counts a λ-only emission row.
func (b *Builder) AddExtension(extension []rune) {
	for _, r := range extension {
		b.Add(r)
	}
}

// Freeze assigns each accumulated rune a stable, sorted index and
// returns the resulting Alphabet.
func (b *Builder) Freeze() *Alphabet {
	runes := make([]rune, 0, len(b.seen))
	for r := range b.seen {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	indexOf := make(map[rune]int, len(runes))
	for i, r := range runes {
		indexOf[r] = i
	}
	return &Alphabet{runes: runes, indexOf: indexOf}
}

// Len returns |Σ|.
func (a *Alphabet) Len() int { return len(a.runes) }

// Rune returns the character assigned to index i.
func (a *Alphabet) Rune(i int) rune { return a.runes[i] }

// Runes returns the alphabet in canonical (sorted) order. The returned
// slice must not be mutated.
func (a *Alphabet) Runes() []rune { return a.runes }

// Index returns the dense index for r, or UnknownIndex if r ∉ Σ.
func (a *Alphabet) Index(r rune) int {
	if i, ok := a.indexOf[r]; ok {
		return i
	}
	return UnknownIndex
}

// Contains reports whether r ∈ Σ.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.indexOf[r]
	return ok
}
