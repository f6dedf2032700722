package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/correctocr/correctocr/internal/align"
	"github.com/correctocr/correctocr/internal/corpus"
	"github.com/correctocr/correctocr/internal/model"
	"github.com/correctocr/correctocr/internal/pipeline"
	"github.com/correctocr/correctocr/internal/rules"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Build an HMM from a gold/noisy training corpus",
	Long: `train reads a tab-separated gold\tnoisy corpus, aligns every pair
(internal/align), aggregates the misread counts, and estimates the HMM
(internal/model) used by decode/correct.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		pairsPath, _ := cmd.Flags().GetString("pairs")
		outPath, _ := cmd.Flags().GetString("out")
		if pairsPath == "" || outPath == "" {
			return fmt.Errorf("train: --pairs and --out are required")
		}

		f, err := os.Open(pairsPath) //nolint:gosec // operator-provided CLI path
		if err != nil {
			return fmt.Errorf("train: open %s: %w", pairsPath, err)
		}
		defer f.Close()

		pairs, skipped, err := corpus.ReadGoldNoisyPairs(f)
		if err != nil {
			return err
		}
		if skipped > 0 {
			slog.Warn("skipped malformed training pairs", "count", skipped)
		}

		var extension []rune
		if cfg.Model.ExtensionPath != "" {
			ext, extSkipped, err := rules.LoadExtension(cfg.Model.ExtensionPath)
			if err != nil {
				return err
			}
			if extSkipped > 0 {
				slog.Warn("skipped malformed extension entries", "count", extSkipped)
			}
			extension = ext
		}

		alignCfg := align.Config{AnchorLength: cfg.Align.AnchorLength, CellBudget: cfg.Align.CellBudget}
		buildCfg := model.Config{Lambda: cfg.Model.Lambda, Extension: extension, DictionaryWords: corpus.GoldWords(pairs)}

		hmm, err := pipeline.Train(context.Background(), pairs, alignCfg, buildCfg, cfg.Pipeline.MaxWorkers)
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}

		data, err := json.MarshalIndent(hmm, "", "  ")
		if err != nil {
			return fmt.Errorf("train: marshal model: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil { //nolint:gosec // operator-provided CLI path
			return fmt.Errorf("train: write %s: %w", outPath, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "trained HMM over %d pairs (%d alphabet states) -> %s\n", len(pairs), hmm.N(), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().String("pairs", "", "tab-separated gold\\tnoisy training corpus")
	trainCmd.Flags().String("out", "", "output path for the serialized HMM")
}
