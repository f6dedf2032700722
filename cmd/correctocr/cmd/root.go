package cmd

import (
	"log/slog"
	"os"

	"github.com/correctocr/correctocr/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configLoader *config.Loader
	globalConfig *config.Config
	cfgFile      string
)

var rootCmd = &cobra.Command{
	Use:   "correctocr",
	Short: "Character-level HMM post-correction for noisy OCR output",
	Long: `correctocr learns a character-level HMM of OCR error behavior from a
small parallel corpus of noisy OCR output paired with human-corrected
gold text, then proposes ranked correction candidates for tokens in new
noisy texts and resolves them with a nine-bin heuristic, deferring to a
human annotator where the heuristic is not confident.

Examples:
  correctocr train --pairs corpus.tsv --out model.json
  correctocr decode --model model.json input.txt
  correctocr correct --model model.json --dict words.txt input.txt
  correctocr serve --model model.json --dict words.txt --port 8080`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error { return colorUsageFunc(cmd.OutOrStdout(), cmd) })
	rootCmd.SetHelpFunc(colorHelpFunc)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/correctocr, /etc/correctocr)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}

		level := slog.LevelInfo
		if globalConfig.Verbose {
			level = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				level = slog.LevelDebug
			case "warn":
				level = slog.LevelWarn
			case "error":
				level = slog.LevelError
			}
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	}
}

func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration, loading it first if
// necessary.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}
	return globalConfig
}
