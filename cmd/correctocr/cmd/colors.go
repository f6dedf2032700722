package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Styles used by the colorized usage/help renderer below, one
// fatih/color style per role (the interactive annotator renders with
// its own tcell Palette instead).
var (
	titleStyle       = color.New(color.Bold, color.FgHiWhite)
	commandStyle     = color.New(color.FgHiGreen)
	descriptionStyle = color.New(color.FgHiCyan)
	flagStyle        = color.New(color.Bold, color.FgHiCyan)
)

// colorUsageFunc renders a minimal colorized usage block: command line,
// subcommands, and local flags. It replaces Cobra's default usage
// template entirely, so inherited (global) flags are not listed.
func colorUsageFunc(w io.Writer, cmd *cobra.Command) error {
	titleStyle.Fprintln(w, "Usage:")
	fmt.Fprint(w, "  ")
	commandStyle.Fprintln(w, cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w)
		titleStyle.Fprintln(w, "Available Commands:")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() {
				continue
			}
			fmt.Fprint(w, "  ")
			commandStyle.Fprintf(w, "%-14s", sub.Name())
			descriptionStyle.Fprintln(w, sub.Short)
		}
	}

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintln(w)
		titleStyle.Fprintln(w, "Flags:")
		flagStyle.Fprint(w, cmd.LocalFlags().FlagUsages())
	}
	return nil
}

func colorHelpFunc(cmd *cobra.Command, _ []string) {
	if cmd.Long != "" {
		fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), cmd.Short)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	_ = colorUsageFunc(cmd.OutOrStdout(), cmd)
}
