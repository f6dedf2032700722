package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/correctocr/correctocr/internal/heuristics"
)

// WriteBinSettings renders policy in the stable tab-separated layout
// named by spec §6: bin_id TAB action, one line per bin, in bin order.
func WriteBinSettings(w io.Writer, policy heuristics.PolicyMap) error {
	bw := bufio.NewWriter(w)
	for bin := 1; bin <= 9; bin++ {
		action, ok := policy[bin]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%d\t%c\n", bin, byte(action)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadBinSettings parses the layout WriteBinSettings produces.
// Malformed lines (wrong column count, bad bin number, invalid
// action) are skipped and counted, matching spec §7's "malformed
// input... reported; offending entry skipped" rule.
func ReadBinSettings(r io.Reader) (heuristics.PolicyMap, int, error) {
	policy := heuristics.PolicyMap{}
	skipped := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			skipped++
			continue
		}
		bin, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || bin < 1 || bin > 9 {
			skipped++
			continue
		}
		actionField := strings.TrimSpace(fields[1])
		if len(actionField) != 1 {
			skipped++
			continue
		}
		action := heuristics.Action(actionField[0])
		if !action.Valid() {
			skipped++
			continue
		}
		policy[bin] = action
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("corpus: read bin settings: %w", err)
	}
	return policy, skipped, nil
}
