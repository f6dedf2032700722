package align

// GapRune is the alignment gap symbol ε (see spec §3). It has the same
// value as alphabet.GapRune so that both packages agree on what "not a
// real character" means.
const GapRune = rune(0)

// Pair is one column of an alignment: (g, n) with g, n ∈ Σ ∪ {ε}, and
// never both ε at once.
type Pair struct {
	Gold  rune
	Noisy rune
}

// IsInsertion reports whether this pair represents a character
// inserted in the noisy string with no corresponding gold character.
func (p Pair) IsInsertion() bool { return p.Gold == GapRune }

// IsDeletion reports whether this pair represents a gold character
// that was dropped entirely from the noisy string.
func (p Pair) IsDeletion() bool { return p.Noisy == GapRune }

// Alignment is the ordered column sequence produced by Align.
type Alignment []Pair

// Gold reconstructs G by stripping ε from the first coordinate.
func (a Alignment) Gold() string {
	rs := make([]rune, 0, len(a))
	for _, p := range a {
		if p.Gold != GapRune {
			rs = append(rs, p.Gold)
		}
	}
	return string(rs)
}

// Noisy reconstructs N by stripping ε from the second coordinate.
func (a Alignment) Noisy() string {
	rs := make([]rune, 0, len(a))
	for _, p := range a {
		if p.Noisy != GapRune {
			rs = append(rs, p.Noisy)
		}
	}
	return string(rs)
}

// MisreadCount is a (gold, noisy) → count tally, as described in
// spec §3. Both gold and noisy may be GapRune, representing insertions
// and deletions respectively.
type MisreadCount map[rune]map[rune]int

// Add increments the tally for (g, n) by delta.
func (m MisreadCount) Add(g, n rune, delta int) {
	row, ok := m[g]
	if !ok {
		row = make(map[rune]int)
		m[g] = row
	}
	row[n] += delta
}

// Merge folds other into m in place.
func (m MisreadCount) Merge(other MisreadCount) {
	for g, row := range other {
		for n, c := range row {
			m.Add(g, n, c)
		}
	}
}

// FromAlignment tallies the (gold, noisy) pairs of a single alignment.
func FromAlignment(a Alignment) MisreadCount {
	counts := make(MisreadCount)
	for _, p := range a {
		counts.Add(p.Gold, p.Noisy, 1)
	}
	return counts
}
