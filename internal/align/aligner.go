package align

// Scoring constants for the Needleman–Wunsch global alignment, fixed
// by spec §4.1.
const (
	scoreMatch    = 2
	scoreMismatch = -1
	scoreGap      = -1
)

// Config bounds the cost of aligning very large documents.
type Config struct {
	// AnchorLength is the minimum run length of identical characters
	// used to split the strings into independently-aligned chunks.
	// Default 5.
	AnchorLength int
	// CellBudget is the largest |G|·|N| the aligner will run a single
	// Needleman–Wunsch matrix over before chunking on anchors.
	CellBudget int
}

// DefaultConfig returns the spec's default anchor length (5) and a
// cell budget generous enough for single-paragraph alignment.
func DefaultConfig() Config {
	return Config{AnchorLength: 5, CellBudget: 4_000_000}
}

// Align computes the optimal global alignment of gold G against noisy
// N under the fixed scoring scheme in spec §4.1, chunking on anchors
// when the full DP matrix would exceed cfg.CellBudget. It never fails:
// empty inputs produce an empty or all-gap alignment.
func Align(gold, noisy string, cfg Config) (Alignment, MisreadCount) {
	g := []rune(gold)
	n := []rune(noisy)

	if len(g) == 0 && len(n) == 0 {
		return Alignment{}, make(MisreadCount)
	}

	var alignment Alignment
	if cfg.AnchorLength <= 0 {
		cfg.AnchorLength = DefaultConfig().AnchorLength
	}
	if cfg.CellBudget <= 0 {
		cfg.CellBudget = DefaultConfig().CellBudget
	}

	if len(g)*len(n) > cfg.CellBudget {
		alignment = alignChunked(g, n, cfg)
	} else {
		alignment = alignFull(g, n)
	}

	return alignment, FromAlignment(alignment)
}

// subCost returns the Needleman–Wunsch substitution cost for aligning
// gold rune a against noisy rune b.
func subCost(a, b rune) int {
	if a == b {
		return scoreMatch
	}
	return scoreMismatch
}

// alignFull runs unchunked Needleman–Wunsch over the full strings.
func alignFull(g, n []rune) Alignment {
	rows, cols := len(g)+1, len(n)+1

	// score[i][j] is the best score for aligning the suffixes g[i:] and
	// n[j:], so score[0][0] is the optimal global alignment score.
	score := make([][]int, rows)
	for i := range score {
		score[i] = make([]int, cols)
	}

	for i := rows - 2; i >= 0; i-- {
		score[i][cols-1] = score[i+1][cols-1] + scoreGap
	}
	for j := cols - 2; j >= 0; j-- {
		score[rows-1][j] = score[rows-1][j+1] + scoreGap
	}

	for i := rows - 2; i >= 0; i-- {
		for j := cols - 2; j >= 0; j-- {
			diag := score[i+1][j+1] + subCost(g[i], n[j])
			up := score[i+1][j] + scoreGap
			left := score[i][j+1] + scoreGap

			best := diag
			if up > best {
				best = up
			}
			if left > best {
				best = left
			}
			score[i][j] = best
		}
	}

	// Trace forward from (0,0) over the suffix table: every step taken
	// keeps the rest of the alignment optimal, and preferring diagonal,
	// then up, then left resolves ties to the *earliest* diagonal, which
	// is spec §4.1's "diagonal > up > left" contract (see §8 scenario 2).
	// A backward traceback over a prefix table with the same preference
	// would resolve ties to the latest diagonal instead.
	out := make(Alignment, 0, rows+cols)
	i, j := 0, 0
	for i < rows-1 || j < cols-1 {
		switch {
		case i == rows-1:
			out = append(out, Pair{Gold: GapRune, Noisy: n[j]})
			j++
		case j == cols-1:
			out = append(out, Pair{Gold: g[i], Noisy: GapRune})
			i++
		case score[i][j] == score[i+1][j+1]+subCost(g[i], n[j]):
			out = append(out, Pair{Gold: g[i], Noisy: n[j]})
			i++
			j++
		case score[i][j] == score[i+1][j]+scoreGap:
			out = append(out, Pair{Gold: g[i], Noisy: GapRune})
			i++
		default:
			out = append(out, Pair{Gold: GapRune, Noisy: n[j]})
			j++
		}
	}
	return out
}

// alignChunked splits g and n on deterministic exact-match anchors and
// aligns the segments between (and the anchors themselves) independently.
func alignChunked(g, n []rune, cfg Config) Alignment {
	anchors := findAnchors(g, n, cfg.AnchorLength)

	out := make(Alignment, 0, len(g)+len(n))
	gPos, nPos := 0, 0
	for _, a := range anchors {
		// Align the gap before this anchor.
		out = append(out, alignSegment(g[gPos:a.gStart], n[nPos:a.nStart])...)
		// The anchor itself is an exact match, emitted as diagonal pairs.
		for k := 0; k < a.length; k++ {
			out = append(out, Pair{Gold: g[a.gStart+k], Noisy: n[a.nStart+k]})
		}
		gPos = a.gStart + a.length
		nPos = a.nStart + a.length
	}
	// Align the trailing gap after the last anchor.
	out = append(out, alignSegment(g[gPos:], n[nPos:])...)
	return out
}

func alignSegment(g, n []rune) Alignment {
	if len(g) == 0 && len(n) == 0 {
		return Alignment{}
	}
	return alignFull(g, n)
}

type anchor struct {
	gStart, nStart, length int
}

// findAnchors greedily scans g left to right; at each position it looks
// for the leftmost occurrence in n, at or after the previous anchor's
// end, of the minLen-rune run starting there, and extends that match
// for as long as g and n keep agreeing. This is deterministic: anchors
// are taken leftmost-in-g, then leftmost-in-n.
func findAnchors(g, n []rune, minLen int) []anchor {
	var anchors []anchor
	gi, nFloor := 0, 0
	for gi < len(g) {
		if gi+minLen > len(g) {
			break
		}
		needle := g[gi : gi+minLen]
		pos := indexOfRunes(n, needle, nFloor)
		if pos < 0 {
			gi++
			continue
		}
		length := minLen
		for gi+length < len(g) && pos+length < len(n) && g[gi+length] == n[pos+length] {
			length++
		}
		anchors = append(anchors, anchor{gStart: gi, nStart: pos, length: length})
		gi += length
		nFloor = pos + length
	}
	return anchors
}

// indexOfRunes returns the leftmost index at or after from where needle
// occurs in haystack, or -1.
func indexOfRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 || from < 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for k := range needle {
			if haystack[i+k] != needle[k] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
