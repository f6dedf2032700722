package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/correctocr/correctocr/internal/decode"
	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/correctocr/correctocr/internal/heuristics"
	"github.com/correctocr/correctocr/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP/websocket server exposing decode and correct",
	Long: `serve starts an HTTP server exposing the Decoder and Heuristic
Binner/Corrector over REST (/decode, /correct) plus a websocket endpoint
for interactive annotation (/ws/annotate), per spec §9.4.

Examples:
  correctocr serve --model model.json --dict words.txt
  correctocr serve --model model.json --dict words.txt --host 0.0.0.0 --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}
		corsOrigin, _ := cmd.Flags().GetString("cors-origin")
		maxUploadMB, _ := cmd.Flags().GetInt64("max-upload-size")
		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}
		shutdownTimeout := cfg.Server.ShutdownTimeout
		if cmd.Flags().Changed("shutdown-timeout") {
			shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
		}

		rateLimitEnabled, _ := cmd.Flags().GetBool("rate-limit-enabled")
		requestsPerMinute, _ := cmd.Flags().GetInt("requests-per-minute")
		requestsPerHour, _ := cmd.Flags().GetInt("requests-per-hour")
		maxRequestsPerDay, _ := cmd.Flags().GetInt("max-requests-per-day")
		maxDataPerDay, _ := cmd.Flags().GetInt64("max-data-per-day")

		modelPath, _ := cmd.Flags().GetString("model")
		if modelPath == "" {
			return fmt.Errorf("serve: --model is required")
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
			return fmt.Errorf("serve: --dict is required (or set dictionary.path in config)")
		}
		dict, skipped, err := dictionary.LoadFile(dictPath, cfg.Dictionary.CaseSensitive)
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		if skipped > 0 {
			slog.Warn("skipped malformed dictionary lines", "count", skipped)
		}

		policy := cfg.PolicyMap()
		if err := policy.Validate(); err != nil {
			return fmt.Errorf("serve: %w", err)
		}

		cache := decode.NewCache(cfg.Decode.CacheSize)
		dec := decode.New(hmm, nil, cfg.Decode.K, cache)
		corrector := heuristics.New(policy, dict, nil, nil)

		var rateLimiter *server.RateLimiter
		if rateLimitEnabled {
			rateLimiter = server.NewRateLimiter(requestsPerMinute, requestsPerHour, maxRequestsPerDay, maxDataPerDay)
		}

		srv := server.NewServer(server.Config{
			Host:            host,
			Port:            port,
			CORSOrigin:      corsOrigin,
			MaxUploadMB:     maxUploadMB,
			TimeoutSec:      timeout,
			ShutdownTimeout: shutdownTimeout,
			RateLimiter:     rateLimiter,
		}, dec, corrector)

		mux := http.NewServeMux()
		srv.SetupRoutes(mux)

		httpServer := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       time.Duration(timeout) * time.Second,
			WriteTimeout:      time.Duration(timeout) * time.Second,
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			slog.Info("starting correctocr server", "host", host, "port", port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			slog.Info("received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("context cancelled, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown error", "error", err)
		} else {
			slog.Info("http server shutdown completed")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origin")
	serveCmd.Flags().Int64("max-upload-size", 10, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
	serveCmd.Flags().String("model", "", "path to a serialized HMM")
	serveCmd.Flags().String("dict", "", "path to the dictionary word list")

	serveCmd.Flags().Bool("rate-limit-enabled", false, "enable rate limiting")
	serveCmd.Flags().Int("requests-per-minute", 60, "maximum requests per minute per client")
	serveCmd.Flags().Int("requests-per-hour", 1000, "maximum requests per hour per client")
	serveCmd.Flags().Int("max-requests-per-day", 5000, "maximum requests per day per client")
	serveCmd.Flags().Int64("max-data-per-day", 100*1024*1024, "maximum data processed per day per client (bytes)")
}
