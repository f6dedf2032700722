package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/correctocr/correctocr/internal/corpus"
	"github.com/correctocr/correctocr/internal/decode"
	"github.com/correctocr/correctocr/internal/model"
	"github.com/correctocr/correctocr/internal/pipeline"
	"github.com/correctocr/correctocr/internal/rules"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <input.txt>",
	Short: "Decode a text file into k-best candidates per word token",
	Long: `decode tokenizes the input file (whitespace/punctuation-aware), runs
every word token through k-best Viterbi decoding against a trained
HMM, and writes the stable k-best CSV layout from spec §6.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		modelPath, _ := cmd.Flags().GetString("model")
		if modelPath == "" {
			return fmt.Errorf("decode: --model is required")
		}
		hmm, err := loadModel(modelPath)
		if err != nil {
			return err
		}

		var decodeRules decode.Rules
		if cfg.Decode.RulesPath != "" {
			decodeRules, _, err = rules.LoadSubstitutions(cfg.Decode.RulesPath)
			if err != nil {
				return err
			}
		}

		k := cfg.Decode.K
		if cmd.Flags().Changed("k") {
			k, _ = cmd.Flags().GetInt("k")
		}
		cache := decode.NewCache(cfg.Decode.CacheSize)
		dec := decode.New(hmm, decodeRules, k, cache)

		text, err := os.ReadFile(args[0]) //nolint:gosec // operator-provided CLI path
		if err != nil {
			return fmt.Errorf("decode: read %s: %w", args[0], err)
		}
		list := corpus.Tokenize(args[0], string(text))

		p := pipeline.New(hmm, dec, nil, pipeline.Config{MaxWorkers: cfg.Pipeline.MaxWorkers})
		if err := p.ProcessDocument(context.Background(), list); err != nil {
			return fmt.Errorf("decode: %w", err)
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			return corpus.WriteKBestCSV(cmd.OutOrStdout(), list)
		}
		out, err := os.Create(outPath) //nolint:gosec // operator-provided CLI path
		if err != nil {
			return fmt.Errorf("decode: create %s: %w", outPath, err)
		}
		defer out.Close()
		return corpus.WriteKBestCSV(out, list)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("model", "", "path to a serialized HMM")
	decodeCmd.Flags().Int("k", 0, "override the configured number of candidates")
	decodeCmd.Flags().String("out", "", "output CSV path (default: stdout)")
}

func loadModel(path string) (*model.HMM, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-provided CLI path
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	hmm, err := model.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	return hmm, nil
}
