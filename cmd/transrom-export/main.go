// Package main implements a tool that exports all family definitions as JSON
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/SophiaFrassetto/TransROM-IA/internal/config"
	"github.com/SophiaFrassetto/TransROM-IA/internal/detector"
	"github.com/SophiaFrassetto/TransROM-IA/internal/export"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	output string
	quiet  bool
}

func main() {
	options := readArguments()
	logger := config.CreateLogger(false, options.quiet)

	if !options.quiet {
		logger.Info("transrom-export", log.String("version", buildinfo.Version(version, commit, date)))
	}

	if err := exportFamilies(options, logger); err != nil {
		logger.Fatal("Exporting families failed", log.Err(err))
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var options optionFlags

	flags.StringVar(&options.output, "o", "", "name of the output .json file, printed on console if no name given")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(os.Args[1:]); err != nil || flags.NArg() > 0 {
		fmt.Printf("usage: transrom-export [options]\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return options
}

func exportFamilies(options optionFlags, logger *log.Logger) error {
	families := detector.DefaultFamilies()

	var w io.Writer = os.Stdout
	if options.output != "" {
		f, err := os.Create(options.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := export.Families(w, families); err != nil {
		return err
	}

	if options.output != "" {
		logger.Info("Export completed",
			log.String("file", options.output),
			log.Int("families", len(families)))
	}
	return nil
}
