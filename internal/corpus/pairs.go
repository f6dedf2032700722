package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/correctocr/correctocr/internal/pipeline"
)

// ReadGoldNoisyPairs parses a tab-separated gold\tnoisy training
// corpus, one pair per line, for pipeline.AlignCorpus/Train. Blank
// lines are skipped; malformed lines (wrong column count) are
// skipped and counted (spec §7's malformed-input rule).
func ReadGoldNoisyPairs(r io.Reader) ([]pipeline.GoldNoisyPair, int, error) {
	var pairs []pipeline.GoldNoisyPair
	skipped := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			skipped++
			continue
		}
		pairs = append(pairs, pipeline.GoldNoisyPair{Gold: fields[0], Noisy: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("corpus: read gold/noisy pairs: %w", err)
	}
	return pairs, skipped, nil
}

// GoldWords returns the gold side of every pair, in input order and
// with duplicates kept (one entry per pair), for use
// as the training-time dictionary-frequency signal in
// model.estimateInitial/estimateTransition.
func GoldWords(pairs []pipeline.GoldNoisyPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Gold
	}
	return out
}
