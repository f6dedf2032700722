package heuristics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/correctocr/correctocr/internal/token"
)

// binCounts accumulates per-bin statistics for the report (spec §11
// supplemented feature, grounded on heuristics.py's Bin.counts and the
// (A)-(E) categories computed in add_to_report).
type binCounts struct {
	total      int
	categories map[string]int
}

// Report accumulates correction-tracking statistics across one or more
// token lists and renders a human-readable summary, grounded on the
// original Heuristics.add_to_report/report methods.
type Report struct {
	totalCount      int
	tokenCount      int
	punctuationCt   int
	hyphenatedCt    int
	noGoldCount     int
	overSegmented   int
	underSegmented  int
	documents       map[string]int
	bins            map[int]*binCounts
	malformedTokens []string
}

// NewReport returns an empty report accumulator.
func NewReport() *Report {
	r := &Report{
		documents: make(map[string]int),
		bins:      make(map[int]*binCounts),
	}
	for b := 1; b <= 9; b++ {
		r.bins[b] = &binCounts{categories: make(map[string]int)}
	}
	return r
}

// Add folds every consolidated (original, gold, token) pair of list
// into the running totals, mirroring add_to_report's per-token logic.
func (r *Report) Add(list *token.List) {
	if len(list.Tokens) == 0 {
		return
	}
	r.documents[list.DocID] = len(list.Tokens)

	for _, pair := range list.Consolidated() {
		t := pair.Token
		r.totalCount++

		if t.IsHyphenated {
			r.hyphenatedCt++
		}
		if t.IsPunctuation() {
			r.punctuationCt++
			continue
		}

		switch {
		case pair.Original == "" && pair.Gold != "":
			r.underSegmented++
			continue
		case pair.Gold == "" && pair.Original != "":
			r.overSegmented++
			continue
		}

		if pair.Gold == "" {
			r.noGoldCount++
		}
		r.tokenCount++

		if t.Bin < 1 || t.Bin > 9 {
			r.malformedTokens = append(r.malformedTokens, pair.Original)
			continue
		}
		bc := r.bins[t.Bin]
		bc.total++

		if pair.Original == pair.Gold {
			bc.categories["(A) gold == original"]++
		}
		if t.Top() == pair.Gold {
			bc.categories["(B) gold == top candidate"]++
		}
		for _, k := range t.KBest[min(1, len(t.KBest)):] {
			if k.Candidate == pair.Gold {
				bc.categories["(C) gold == lower-ranked candidate"]++
				break
			}
		}
		if t.Heuristic != "" {
			bc.categories[fmt.Sprintf("(D) heuristic was %s", t.Heuristic)]++
		}
		if t.Heuristic == token.HeuristicAnnotator {
			switch {
			case pair.Gold == pair.Original:
				bc.categories["(E) annotator accepted the original"]++
			case pair.Gold == t.Top():
				bc.categories["(E) annotator chose the top candidate"]++
			default:
				chosenLower := false
				for _, k := range t.KBest {
					if k.Candidate == pair.Gold {
						chosenLower = true
						break
					}
				}
				if chosenLower {
					bc.categories["(E) annotator chose a lower candidate"]++
				} else if pair.Gold != "" {
					bc.categories["(E) annotator made a novel correction"]++
				}
			}
		}
	}
}

// String renders the accumulated statistics as a plain-text report.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "CorrectOCR correction report\n\n")
	fmt.Fprintf(&b, "Documents evaluated: %d\n", len(r.documents))
	fmt.Fprintf(&b, "Total tokens: %d\n", r.totalCount)
	if r.totalCount > 0 {
		fmt.Fprintf(&b, "Without gold: %d (%.2f%%)\n", r.noGoldCount, pct(r.noGoldCount, r.totalCount))
		fmt.Fprintf(&b, "Oversegmented: %d (%.2f%%)\n", r.overSegmented, pct(r.overSegmented, r.totalCount))
		fmt.Fprintf(&b, "Undersegmented: %d (%.2f%%)\n", r.underSegmented, pct(r.underSegmented, r.totalCount))
		fmt.Fprintf(&b, "Hyphenated: %d (%.2f%%)\n", r.hyphenatedCt, pct(r.hyphenatedCt, r.totalCount))
		fmt.Fprintf(&b, "Punctuation: %d (%.2f%%)\n", r.punctuationCt, pct(r.punctuationCt, r.totalCount))
	}
	fmt.Fprintf(&b, "Tokens scored: %d\n\n", r.tokenCount)

	for bin := 1; bin <= 9; bin++ {
		bc := r.bins[bin]
		fmt.Fprintf(&b, "BIN %d: %d tokens", bin, bc.total)
		if r.tokenCount > 0 {
			fmt.Fprintf(&b, " (%.2f%% of scored)", pct(bc.total, r.tokenCount))
		}
		b.WriteString("\n")
		if bc.total == 0 {
			b.WriteString("  no tokens matched\n\n")
			continue
		}
		names := make([]string, 0, len(bc.categories))
		for name := range bc.categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			count := bc.categories[name]
			fmt.Fprintf(&b, "  %-40s %6d (%.2f%%)\n", name, count, pct(count, bc.total))
		}
		b.WriteString("\n")
	}

	if len(r.malformedTokens) > 0 {
		fmt.Fprintf(&b, "Malformed tokens (%d): %s\n", len(r.malformedTokens), strings.Join(r.malformedTokens, ", "))
	}

	return b.String()
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
