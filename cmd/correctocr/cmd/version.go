package cmd

import (
	"fmt"

	"github.com/correctocr/correctocr/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, commit, date := version.Info()
		fmt.Fprintf(cmd.OutOrStdout(), "correctocr %s\ncommit: %s\nbuilt: %s\n", v, commit, date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
