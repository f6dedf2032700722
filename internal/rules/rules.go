// Package rules loads the multi-character substitution rule set M and
// the extension character set E (spec §3/§6) from YAML files.
package rules

import (
	"fmt"
	"os"

	"github.com/correctocr/correctocr/internal/decode"
	"gopkg.in/yaml.v3"
)

// LoadSubstitutions reads a YAML mapping of gold substring to a list
// of noisy surface forms (spec §3's substitution rules M), e.g.:
//
//	m: [im, rn]
//	li: [h]
//
// Malformed entries (empty gold substring or an empty surface form)
// are reported and skipped (spec §7's malformed-input handling);
// skipped counts the number of entries dropped this way.
func LoadSubstitutions(path string) (decode.Rules, int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided rules path is expected
	if err != nil {
		return nil, 0, fmt.Errorf("rules: read %s: %w", path, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("rules: parse %s: %w", path, err)
	}

	out := make(decode.Rules, len(raw))
	skipped := 0
	for gold, noisyList := range raw {
		if gold == "" {
			skipped++
			continue
		}
		var kept []string
		for _, n := range noisyList {
			if n == "" {
				skipped++
				continue
			}
			kept = append(kept, n)
		}
		if len(kept) > 0 {
			out[gold] = kept
		}
	}
	return out, skipped, nil
}

// LoadExtension reads a YAML list of extension characters E (spec §3):
//
//	- "æ"
//	- "ſ"
//
// Entries that are not exactly one rune are malformed and skipped.
func LoadExtension(path string) ([]rune, int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided extension path is expected
	if err != nil {
		return nil, 0, fmt.Errorf("rules: read %s: %w", path, err)
	}

	var raw []string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("rules: parse %s: %w", path, err)
	}

	out := make([]rune, 0, len(raw))
	skipped := 0
	for _, entry := range raw {
		rs := []rune(entry)
		if len(rs) != 1 {
			skipped++
			continue
		}
		out = append(out, rs[0])
	}
	return out, skipped, nil
}
