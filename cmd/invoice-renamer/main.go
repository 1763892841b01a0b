package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/cdoebler/rename-invoice-pdfs/constants"
	"github.com/cdoebler/rename-invoice-pdfs/internal/common"
	"github.com/cdoebler/rename-invoice-pdfs/internal/export"
	"github.com/cdoebler/rename-invoice-pdfs/internal/extract"
	"github.com/cdoebler/rename-invoice-pdfs/internal/ledger"
	"github.com/cdoebler/rename-invoice-pdfs/internal/llm"
	"github.com/cdoebler/rename-invoice-pdfs/internal/llm/anthropic"
	"github.com/cdoebler/rename-invoice-pdfs/internal/llm/ollama"
	"github.com/cdoebler/rename-invoice-pdfs/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir        = flag.String("dir", "", "directory containing PDF invoices to process (required)")
		reportPath = flag.String("report", "", "write an XLSX batch report to this path (optional)")
		ledgerPath = flag.String("ledger", "", "sqlite run-history file (optional, defaults to LEDGER_PATH)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; env vars win either way
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if *ledgerPath == "" {
		*ledgerPath = cfg.Ledger.Path
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Setup backends (a missing one is a valid state, not an error)
	var primary, secondary llm.DateExtractor
	if cfg.Ollama.Configured() {
		primary = ollama.NewClient(ollama.Config{
			BaseURL:      cfg.Ollama.BaseURL,
			Model:        cfg.Ollama.Model,
			Timeout:      cfg.Ollama.Timeout,
			ProbeTimeout: cfg.Ollama.ProbeTimeout,
		}, logger)
		logger.Info("ollama client initialized", "model", cfg.Ollama.Model)
	} else {
		logger.Warn("ollama not configured, local extraction will be skipped")
	}
	if cfg.Anthropic.Configured() {
		secondary = anthropic.NewClient(anthropic.Config{
			APIKey:    cfg.Anthropic.APIKey,
			BaseURL:   cfg.Anthropic.BaseURL,
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
			Timeout:   cfg.Anthropic.Timeout,
		}, logger)
		logger.Info("anthropic client initialized", "model", cfg.Anthropic.Model)
	} else {
		logger.Warn("anthropic API key not configured, hosted fallback disabled")
	}

	// Wire the pipeline
	stage := pipeline.NewExtractStage(logger, primary, secondary)
	processor := pipeline.NewProcessor(logger, extract.NewFitzExtractor(logger), stage)
	runner := pipeline.NewRunner(logger, processor)

	res, err := runner.Run(ctx, *dir)
	if err != nil {
		logger.Error("run failed", "dir", *dir, "error", err)
		os.Exit(1)
	}

	if *ledgerPath != "" {
		led, err := ledger.Open(ctx, *ledgerPath, logger)
		if err != nil {
			logger.Error("failed to open ledger", "error", err)
		} else {
			if err := led.RecordRun(ctx, res); err != nil {
				logger.Error("failed to record run", "error", err)
			}
			if err := led.Close(); err != nil {
				logger.Warn("failed to close ledger", "error", err)
			}
		}
	}

	if *reportPath != "" {
		report, err := export.WriteBatchReport(res, logger)
		if err != nil {
			logger.Error("failed to build report", "error", err)
		} else if err := os.WriteFile(*reportPath, report, 0644); err != nil {
			logger.Error("failed to write report", "path", *reportPath, "error", err)
		}
	}

	// Human summary
	if len(res.Outcomes) == 0 {
		fmt.Printf("No PDF files found in directory: %s\n", *dir)
		return
	}
	for _, out := range res.Outcomes {
		switch out.Status {
		case constants.StatusRenamed:
			fmt.Printf("Renamed: %s -> %s\n", out.Path, out.NewName)
		case constants.StatusSkipped:
			fmt.Printf("Skipped: %s (%s)\n", out.Path, out.Reason)
		default:
			fmt.Printf("Failed:  %s [%s/%s] %s\n", out.Path, out.Stage, out.Kind, out.Reason)
		}
	}
	fmt.Printf("\nProcessed %d files: %d renamed, %d skipped, %d failed\n",
		len(res.Outcomes), res.Renamed, res.Skipped, res.Failed)
}
