package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/correctocr/correctocr/internal/annotate"
	"github.com/correctocr/correctocr/internal/corpus"
	"github.com/correctocr/correctocr/internal/decode"
	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/correctocr/correctocr/internal/heuristics"
	"github.com/correctocr/correctocr/internal/pipeline"
	"github.com/correctocr/correctocr/internal/token"
	"github.com/spf13/cobra"
)

var correctCmd = &cobra.Command{
	Use:   "correct <input.txt>",
	Short: "Decode, bin, and resolve every word token of a text, deferring to a human annotator where needed",
	Long: `correct runs the full pipeline from spec §4-5 over a text file: tokenize,
k-best decode against a trained HMM, classify every token into one of the
nine bins, and resolve each according to the configured per-bin policy.
Tokens whose policy is "a" (annotator) or "d" (dictionary-best) with no
in-dictionary candidate are, by default, presented to an interactive
terminal annotator (--interactive=false to leave them unresolved).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		modelPath, _ := cmd.Flags().GetString("model")
		if modelPath == "" {
			return fmt.Errorf("correct: --model is required")
		}
		hmm, err := loadModel(modelPath)
		if err != nil {
			return err
		}

		dictPath, _ := cmd.Flags().GetString("dict")
		if dictPath == "" {
			dictPath = cfg.Dictionary.Path
		}
		if dictPath == "" {
			return fmt.Errorf("correct: --dict is required (or set dictionary.path in config)")
		}
		dict, skipped, err := dictionary.LoadFile(dictPath, cfg.Dictionary.CaseSensitive)
		if err != nil {
			return fmt.Errorf("correct: %w", err)
		}
		if skipped > 0 {
			slog.Warn("skipped malformed dictionary lines", "count", skipped)
		}

		policy := cfg.PolicyMap()
		if binsPath, _ := cmd.Flags().GetString("bins"); binsPath != "" {
			f, err := os.Open(binsPath) //nolint:gosec // operator-provided CLI path
			if err != nil {
				return fmt.Errorf("correct: open %s: %w", binsPath, err)
			}
			policy, _, err = corpus.ReadBinSettings(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("correct: %w", err)
			}
		}
		if err := policy.Validate(); err != nil {
			return fmt.Errorf("correct: %w", err)
		}

		k := cfg.Decode.K
		cache := decode.NewCache(cfg.Decode.CacheSize)
		dec := decode.New(hmm, nil, k, cache)

		interactive, _ := cmd.Flags().GetBool("interactive")
		var session *annotate.Session
		var corrector *heuristics.Corrector
		if interactive {
			session, err = annotate.NewSession(dict, annotate.DefaultPalette())
			if err != nil {
				return fmt.Errorf("correct: start annotator: %w", err)
			}
			defer session.Close()
			corrector = heuristics.New(policy, dict, session.Resolve, nil)
		} else {
			corrector = heuristics.New(policy, dict, nil, nil)
		}

		text, err := os.ReadFile(args[0]) //nolint:gosec // operator-provided CLI path
		if err != nil {
			return fmt.Errorf("correct: read %s: %w", args[0], err)
		}
		list := corpus.Tokenize(args[0], string(text))

		p := pipeline.New(hmm, dec, corrector, pipeline.Config{MaxWorkers: cfg.Pipeline.MaxWorkers})
		if err := p.ProcessDocument(context.Background(), list); err != nil {
			return fmt.Errorf("correct: %w", err)
		}

		if session != nil {
			tempDictPath, _ := cmd.Flags().GetString("temp-dict")
			if tempDictPath == "" {
				tempDictPath = dictPath + ".tmp"
			}
			if err := annotate.FlushTempDictionary(tempDictPath, session.NovelWords()); err != nil {
				return fmt.Errorf("correct: flush temp dictionary: %w", err)
			}
		}

		if err := maybeWriteReport(cmd, list); err != nil {
			return fmt.Errorf("correct: write report: %w", err)
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			return writeCorrected(cmd.OutOrStdout(), list)
		}
		out, err := os.Create(outPath) //nolint:gosec // operator-provided CLI path
		if err != nil {
			return fmt.Errorf("correct: create %s: %w", outPath, err)
		}
		defer out.Close()
		return writeCorrected(out, list)
	},
}

func init() {
	rootCmd.AddCommand(correctCmd)
	correctCmd.Flags().String("model", "", "path to a serialized HMM")
	correctCmd.Flags().String("dict", "", "path to the dictionary word list")
	correctCmd.Flags().String("bins", "", "path to a per-bin settings file (overrides config)")
	correctCmd.Flags().Bool("interactive", true, "present unresolved tokens to the terminal annotator")
	correctCmd.Flags().String("temp-dict", "", "path to append annotator-typed corrections not already in the dictionary")
	correctCmd.Flags().String("out", "", "output path for the corrected text (default: stdout)")
	correctCmd.Flags().String("report", "", "optional path to write a correction-tracking report")
}

// writeCorrected reconstructs the corrected text by walking list in
// order and substituting each word token's Selection (falling back to
// Original when it was never resolved), leaving whitespace and
// punctuation tokens untouched.
func writeCorrected(w io.Writer, list *token.List) error {
	var b strings.Builder
	for _, t := range list.Tokens {
		switch {
		case t.IsDiscarded:
			continue
		case t.IsPunctuation():
			b.WriteString(t.Original)
		case t.Resolved:
			b.WriteString(t.Selection)
		default:
			b.WriteString(t.Original)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func maybeWriteReport(cmd *cobra.Command, list *token.List) error {
	reportPath, _ := cmd.Flags().GetString("report")
	if reportPath == "" {
		return nil
	}
	r := heuristics.NewReport()
	r.Add(list)
	return os.WriteFile(reportPath, []byte(r.String()), 0o644) //nolint:gosec // operator-provided CLI path
}
