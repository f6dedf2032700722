package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/correctocr/correctocr/internal/token"
)

// WriteKBestCSV renders list's word tokens in the stable layout named
// by spec §6: OriginalToken, k1Candidate, k1Probability, k2Candidate,
// k2Probability, ... Rows are padded with empty cells when a token's
// k-best list is shorter than the widest row in the list, so every
// row has the same column count.
func WriteKBestCSV(w io.Writer, list *token.List) error {
	words := list.Words()

	width := 0
	for _, t := range words {
		if len(t.KBest) > width {
			width = len(t.KBest)
		}
	}

	cw := csv.NewWriter(w)
	header := make([]string, 1+2*width)
	header[0] = "OriginalToken"
	for i := 0; i < width; i++ {
		header[1+2*i] = fmt.Sprintf("k%dCandidate", i+1)
		header[2+2*i] = fmt.Sprintf("k%dProbability", i+1)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, t := range words {
		row := make([]string, 1+2*width)
		row[0] = t.Original
		for i, kb := range t.KBest {
			row[1+2*i] = kb.Candidate
			row[2+2*i] = strconv.FormatFloat(kb.LogProb, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadKBestCSV parses the layout WriteKBestCSV produces back into a
// token.List of Word tokens populated with KBest.
func ReadKBestCSV(r io.Reader, docID string) (*token.List, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("corpus: read k-best csv: %w", err)
	}
	if len(rows) == 0 {
		return token.New(docID), nil
	}

	list := token.New(docID)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		t := &token.Token{Original: row[0], Type: token.Word}
		for i := 1; i+1 < len(row); i += 2 {
			candidate := row[i]
			if candidate == "" {
				continue
			}
			prob, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("corpus: parse probability for %q: %w", row[0], err)
			}
			t.KBest = append(t.KBest, token.KBest{Candidate: candidate, LogProb: prob})
		}
		list.Append(t)
	}
	return list, nil
}
