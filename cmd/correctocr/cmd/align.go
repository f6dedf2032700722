package cmd

import (
	"fmt"
	"os"

	"github.com/correctocr/correctocr/internal/align"
	"github.com/spf13/cobra"
)

var alignCmd = &cobra.Command{
	Use:   "align <gold> <noisy>",
	Short: "Align a gold/noisy string pair and print the alignment and misread counts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		alignCfg := align.Config{AnchorLength: cfg.Align.AnchorLength, CellBudget: cfg.Align.CellBudget}

		goldFile, _ := cmd.Flags().GetString("gold-file")
		noisyFile, _ := cmd.Flags().GetString("noisy-file")
		gold, err := readFileOrArg(goldFile, args[0])
		if err != nil {
			return err
		}
		noisy, err := readFileOrArg(noisyFile, args[1])
		if err != nil {
			return err
		}

		alignment, misreads := align.Align(gold, noisy, alignCfg)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "gold:  %s\n", alignment.Gold())
		fmt.Fprintf(w, "noisy: %s\n", alignment.Noisy())
		fmt.Fprintln(w, "misread counts:")
		for g, row := range misreads {
			for n, count := range row {
				fmt.Fprintf(w, "  (%c -> %c) = %d\n", g, n, count)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alignCmd)
	alignCmd.Flags().String("gold-file", "", "read gold text from a file instead of the first argument")
	alignCmd.Flags().String("noisy-file", "", "read noisy text from a file instead of the second argument")
}

func readFileOrArg(path, arg string) (string, error) {
	if path == "" {
		return arg, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // operator-provided CLI path
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
