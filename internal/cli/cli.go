// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/SophiaFrassetto/TransROM-IA/internal/config"
	"github.com/SophiaFrassetto/TransROM-IA/internal/options"
)

// EnvFile is the environment file that is read before parsing the flags.
const EnvFile = ".env"

// ParseFlags parses command line flags and returns program and extraction
// options. Environment variables set the defaults, flags override them.
func ParseFlags() (options.Program, options.Extraction, error) {
	opts := options.NewProgram()
	if err := config.LoadEnvironment(&opts, EnvFile); err != nil {
		return opts, options.Extraction{}, fmt.Errorf("loading environment: %w", err)
	}

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Extraction{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Extraction{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	extraction, err := opts.Extraction()
	if err != nil {
		return opts, extraction, err
	}
	if err := validateOptionCombinations(opts); err != nil {
		return opts, extraction, err
	}
	return opts, extraction, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: transrom [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptionCombinations checks for options that can not be used
// together.
func validateOptionCombinations(opts options.Program) error {
	if !opts.Enabled {
		return nil
	}
	if opts.Stride > opts.WindowSize {
		return fmt.Errorf("perplexity stride %d must not exceed the window size %d", opts.Stride, opts.WindowSize)
	}
	if (opts.ModelPath == "") != (opts.TokenizerPath == "") {
		return fmt.Errorf("the model and tokenizer paths have to be set together")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.OutputDir, "o", opts.OutputDir, "directory to write the result files to")
	flags.StringVar(&opts.OutputDir, "output-dir", opts.OutputDir, "directory to write the result files to")
	flags.StringVar(&opts.Batch, "batch", opts.Batch, "process a batch of files matching the given pattern, for example *.sfc")

	flags.StringVar(&opts.Quality, "q", opts.Quality, "quality level of accepted candidates (low/medium/high/ultra)")
	flags.StringVar(&opts.Quality, "quality", opts.Quality, "quality level of accepted candidates (low/medium/high/ultra)")
	flags.IntVar(&opts.ChunkSize, "c", opts.ChunkSize, "chunk size in bytes")
	flags.IntVar(&opts.ChunkSize, "chunk-size", opts.ChunkSize, "chunk size in bytes")
	flags.StringVar(&opts.Strategy, "strategy", opts.Strategy, "scan strategy (chunk/window)")
	flags.IntVar(&opts.Workers, "workers", opts.Workers, "number of parallel filter workers")
	flags.BoolVar(&opts.Regions, "regions", opts.Regions, "print the decoded header regions of the ROM")
	flags.BoolVar(&opts.Debug, "debug", opts.Debug, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "quiet", opts.Quiet, "perform operations quietly")

	flags.Float64Var(&opts.MinEntropy, "min-entropy", opts.MinEntropy, "lower bound of the entropy filter")
	flags.Float64Var(&opts.MaxEntropy, "max-entropy", opts.MaxEntropy, "upper bound of the entropy filter")
	flags.Float64Var(&opts.MinPrintable, "min-printable", opts.MinPrintable, "minimum printable density")
	flags.Float64Var(&opts.MaxCompression, "max-compression", opts.MaxCompression, "maximum compression ratio")

	flags.BoolVar(&opts.Enabled, "nlp", opts.Enabled, "re-rank candidates by language model perplexity")
	flags.Float64Var(&opts.Threshold, "nlp-threshold", opts.Threshold, "maximum perplexity of accepted candidates")
	flags.IntVar(&opts.MinLength, "nlp-min-length", opts.MinLength, "minimum text length of re-ranked candidates")
	flags.StringVar(&opts.Model, "nlp-model", opts.Model, "name of the language model, used for output file naming")
	flags.IntVar(&opts.WindowSize, "nlp-window-size", opts.WindowSize, "tokens per perplexity window for long texts")
	flags.IntVar(&opts.Stride, "nlp-stride", opts.Stride, "tokens between perplexity windows, smaller than the window size to overlap")
	flags.StringVar(&opts.Aggregation, "nlp-agg", opts.Aggregation, "aggregation of window perplexities (mean/min/max)")
	flags.BoolVar(&opts.Strict, "nlp-strict", opts.Strict, "accept candidates with a high quality score without re-ranking")
	flags.StringVar(&opts.ModelPath, "nlp-model-path", opts.ModelPath, "ONNX file of the language model")
	flags.StringVar(&opts.TokenizerPath, "nlp-tokenizer", opts.TokenizerPath, "tokenizer.json file of the language model")
	flags.StringVar(&opts.LibraryPath, "ort-lib", opts.LibraryPath, "path of the onnxruntime shared library")
}
