// Package dictionary loads and queries the word dictionary D used by
// the heuristic binner (spec §3/§4.4). Loading follows the same
// line-oriented convention as the teacher's recognizer.LoadCharset.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Dictionary is a finite set of words, with membership tests honoring
// a global case-sensitivity flag (spec §3).
type Dictionary struct {
	words         map[string]struct{}
	caseSensitive bool
	fold          cases.Caser
}

// New returns an empty dictionary.
func New(caseSensitive bool) *Dictionary {
	return &Dictionary{
		words:         make(map[string]struct{}),
		caseSensitive: caseSensitive,
		fold:          cases.Fold(),
	}
}

// normalize canonicalizes w the way the dictionary stores and compares
// words: NFC-normalize combining-character sequences so that
// visually-identical historical-text diacritics collapse to one form,
// then case-fold when the dictionary is case-insensitive.
func (d *Dictionary) normalize(w string) string {
	w = norm.NFC.String(w)
	if !d.caseSensitive {
		w = d.fold.String(w)
	}
	return w
}

// Add inserts w into the dictionary.
func (d *Dictionary) Add(w string) {
	d.words[d.normalize(w)] = struct{}{}
}

// Contains reports whether w ∈ D, honoring case sensitivity.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.words[d.normalize(w)]
	return ok
}

// Len returns the number of distinct (normalized) words.
func (d *Dictionary) Len() int { return len(d.words) }

// LoadFile loads a dictionary file where each non-empty, non-whitespace
// line is a word. Lines containing internal whitespace are malformed
// (spec §7) and are skipped, with the count of skipped lines returned
// alongside any fatal error.
func LoadFile(path string, caseSensitive bool) (*Dictionary, int, error) {
	if path == "" {
		return nil, 0, errors.New("dictionary: path cannot be empty")
	}
	f, err := os.Open(path) //nolint:gosec // caller-provided dictionary path is expected
	if err != nil {
		return nil, 0, fmt.Errorf("dictionary: open: %w", err)
	}
	defer f.Close()

	d := New(caseSensitive)
	skipped := 0

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			skipped++
			continue
		}
		d.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("dictionary: read: %w", err)
	}
	return d, skipped, nil
}

// Merge folds other's words into d.
func (d *Dictionary) Merge(other *Dictionary) {
	for w := range other.words {
		d.words[w] = struct{}{}
	}
}
