package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pixmeta/image-metadata-analyzer/internal/analyzer"
	"github.com/pixmeta/image-metadata-analyzer/internal/capability"
	"github.com/pixmeta/image-metadata-analyzer/internal/config"
	"github.com/pixmeta/image-metadata-analyzer/internal/logger"
	"github.com/pixmeta/image-metadata-analyzer/internal/progress"
	"github.com/pixmeta/image-metadata-analyzer/internal/report"
	"github.com/pixmeta/image-metadata-analyzer/pkg/s3client"
)

func newAnalyzeCommand(cfg *config.Config, cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [flags] <image> [<image>...]",
		Short: "Extract metadata from one or more images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(*cfgFile, cmd.Flags()); err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cfg, args)
		},
	}

	// Feature toggles
	cmd.Flags().BoolVar(&cfg.OCR.Enabled, "ocr", true, "Run OCR over the image (requires tesseract on PATH)")
	cmd.Flags().StringVar(&cfg.OCR.Language, "ocr-language", "eng", "Tesseract language model to use")
	cmd.Flags().BoolVar(&cfg.Language.Enabled, "lang-detect", true, "Detect the language of recognized text")

	// Output options
	cmd.Flags().StringVar(&cfg.Output.Dir, "output-dir", "", "Directory for exported JSON documents (default: alongside each image)")
	cmd.Flags().BoolVar(&cfg.Output.Stdout, "stdout", false, "Print the JSON document to stdout instead of writing a file")

	// Optional S3 export target
	cmd.Flags().StringVar(&cfg.S3.Endpoint, "s3-endpoint", "", "S3 endpoint URL for uploading exported documents")
	cmd.Flags().StringVar(&cfg.S3.Region, "s3-region", "us-east-1", "S3 region")
	cmd.Flags().StringVar(&cfg.S3.Bucket, "s3-bucket", "", "S3 bucket name")
	cmd.Flags().StringVar(&cfg.S3.AccessKey, "s3-access-key", "", "S3 access key")
	cmd.Flags().StringVar(&cfg.S3.SecretKey, "s3-secret-key", "", "S3 secret key")
	cmd.Flags().BoolVar(&cfg.S3.UseSSL, "s3-use-ssl", true, "Use SSL for the S3 connection")
	cmd.Flags().StringVar(&cfg.S3.Prefix, "s3-prefix", "", "Prefix for S3 object keys")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, args []string) error {
	logger.SetLevel(cfg.LogLevel)

	// Optional capabilities are resolved once and held for the session.
	caps := capability.Detect()
	an := analyzer.New(cfg, caps)

	var uploader *s3client.Client
	if cfg.S3.Endpoint != "" {
		client, err := s3client.New(ctx, s3client.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			if s3client.IsAuthError(err) || s3client.IsNotFoundError(err) {
				return fmt.Errorf("failed to initialize S3 client: %s", s3client.FormatError(err))
			}
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		uploader = client
	}

	reporter := progress.New()
	reporter.Start(len(args))

	for _, path := range args {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := analyzeOne(ctx, an, cfg, uploader, path); err != nil {
			logger.Error("Failed to analyze %s: %v", path, err)
			reporter.Error(path, err)
			continue
		}
		reporter.Complete(path)
	}

	reporter.Finish()
	return nil
}

func analyzeOne(ctx context.Context, an *analyzer.Analyzer, cfg *config.Config, uploader *s3client.Client, path string) error {
	result, err := an.Analyze(path)
	if err != nil {
		return err
	}

	// The human view is skipped in --stdout mode so the JSON stream
	// stays parseable.
	if !cfg.Output.Stdout {
		report.Render(os.Stdout, result.Record, result.Summary, result.Notices)
	}

	var buf bytes.Buffer
	if err := result.Record.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	outName := report.OutputName(result.Record.FileName)
	if cfg.Output.Stdout {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		dir := cfg.Output.Dir
		if dir == "" {
			dir = filepath.Dir(path)
		}
		outPath := filepath.Join(dir, outName)
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote %s", outPath)
	}

	if uploader != nil {
		exists, err := uploader.ObjectExists(ctx, outName)
		if err != nil {
			logger.Warn("Could not check for existing report %s: %s", outName, s3client.FormatError(err))
		}
		if exists {
			logger.Info("Report %s already exists in bucket %s, skipping upload", outName, uploader.GetBucketName())
			return nil
		}
		if err := uploader.UploadFile(ctx, bytes.NewReader(buf.Bytes()), outName, int64(buf.Len()), "application/json"); err != nil {
			return fmt.Errorf("failed to upload report: %s", s3client.FormatError(err))
		}
		logger.Info("Uploaded %s to %s/%s", outName, uploader.GetEndpoint(), uploader.GetBucketName())
	}

	return nil
}
