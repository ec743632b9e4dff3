// Package main implements the main entry point for the ROM text extractor
package main

import (
	"context"
	"errors"
	"os"

	"github.com/SophiaFrassetto/TransROM-IA/internal/cli"
	"github.com/SophiaFrassetto/TransROM-IA/internal/config"
	"github.com/SophiaFrassetto/TransROM-IA/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, extraction, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}
	if len(files) == 0 {
		logger.Warn("No files match the batch pattern", log.String("pattern", opts.Batch))
		return
	}

	scorer := fileprocessor.LoadScorer(logger, opts)
	if scorer != nil {
		defer func() { _ = scorer.Close() }()
	}

	var failed bool
	for _, file := range files {
		opts.Input = file

		if _, err := fileprocessor.ProcessFile(ctx, logger, opts, extraction, scorer); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Extracting text failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
