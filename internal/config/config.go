// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/options"
	"github.com/joho/godotenv"
	"github.com/retroenv/retrogolib/log"
)

// EnvPrefix is the prefix of all environment variables read by the program.
const EnvPrefix = "TRANSROM_"

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// LoadEnvironment loads the given .env files into the process environment
// and applies the TRANSROM_* variables to the options. Missing files are
// ignored, variables that are already set are not overwritten.
func LoadEnvironment(opts *options.Program, files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading environment file '%s': %w", file, err)
		}
	}
	return ApplyEnvironment(opts, os.LookupEnv)
}

// ApplyEnvironment sets the options that have a matching environment
// variable. The lookup function is usually os.LookupEnv.
func ApplyEnvironment(opts *options.Program, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"OUTPUT_DIR":     &opts.OutputDir,
		"QUALITY":        &opts.Quality,
		"STRATEGY":       &opts.Strategy,
		"NLP_MODEL":      &opts.Model,
		"NLP_AGG":        &opts.Aggregation,
		"NLP_MODEL_PATH": &opts.ModelPath,
		"NLP_TOKENIZER":  &opts.TokenizerPath,
		"ORT_LIB":        &opts.LibraryPath,
	}
	for name, target := range strs {
		if value, ok := lookupTrimmed(lookup, name); ok {
			*target = value
		}
	}

	ints := map[string]*int{
		"CHUNK_SIZE":      &opts.ChunkSize,
		"WORKERS":         &opts.Workers,
		"NLP_MIN_LENGTH":  &opts.MinLength,
		"NLP_WINDOW_SIZE": &opts.WindowSize,
		"NLP_STRIDE":      &opts.Stride,
	}
	for name, target := range ints {
		value, ok := lookupTrimmed(lookup, name)
		if !ok {
			continue
		}
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s%s: %w", EnvPrefix, name, err)
		}
		*target = i
	}

	if value, ok := lookupTrimmed(lookup, "NLP_THRESHOLD"); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parsing %sNLP_THRESHOLD: %w", EnvPrefix, err)
		}
		opts.Threshold = f
	}

	if value, ok := lookupTrimmed(lookup, "NLP"); ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %sNLP: %w", EnvPrefix, err)
		}
		opts.Enabled = b
	}
	return nil
}

func lookupTrimmed(lookup func(string) (string, bool), name string) (string, bool) {
	value, ok := lookup(EnvPrefix + name)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
