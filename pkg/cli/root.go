// pkg/cli/root.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pixmeta/image-metadata-analyzer/internal/config"
	"github.com/pixmeta/image-metadata-analyzer/internal/logger"
)

// version is set at build time via -ldflags
var version = "dev"

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interruption signals
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		logger.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	rootCmd := &cobra.Command{
		Use:   "imgmeta",
		Short: "Extract and export image metadata",
		Long:  `A tool that extracts EXIF and IPTC metadata from images, resolves GPS coordinates to decimal degrees, optionally recognizes text with Tesseract OCR and detects its language, and exports the result as a JSON document.`,
	}

	// Global flags
	cfg := config.New()
	var cfgFile string
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default $HOME/.imgmeta.yaml)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add commands
	rootCmd.AddCommand(newAnalyzeCommand(cfg, &cfgFile))
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Error executing command: %v", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
