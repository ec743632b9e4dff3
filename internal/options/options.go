// Package options contains the program options.
package options

import (
	"fmt"
	"time"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/SophiaFrassetto/TransROM-IA/internal/filter"
	"github.com/SophiaFrassetto/TransROM-IA/internal/perplexity"
	"github.com/SophiaFrassetto/TransROM-IA/internal/scanner"
)

// Default values of options that have no typed counterpart.
const (
	DefaultOutputDir = "output"
	DefaultModel     = "distilgpt2"
	DefaultQuality   = "medium"
)

// Parameters contains file path options.
type Parameters struct {
	Input     string `arg:"positional" usage:"ROM file to extract text from"`
	OutputDir string `flag:"o" usage:"output directory" default:"output"`
	Batch     string `flag:"batch" usage:"batch process files matching pattern (e.g. *.sfc)"`
}

// Flags contains behavior options.
type Flags struct {
	Quality   string `flag:"q" usage:"quality level: low, medium, high, ultra" default:"medium"`
	ChunkSize int    `flag:"c" usage:"chunk size in bytes" default:"32"`
	Strategy  string `flag:"strategy" usage:"scan strategy: chunk, window" default:"chunk"`
	Workers   int    `flag:"workers" usage:"number of filter workers" default:"1"`
	Regions   bool   `flag:"regions" usage:"print the decoded header regions"`
	Debug     bool   `flag:"debug" usage:"enable debug logging"`
	Quiet     bool   `flag:"quiet" usage:"quiet mode"`
}

// FilterFlags contains the thresholds of the statistical filters.
type FilterFlags struct {
	MinEntropy     float64 `flag:"min-entropy" usage:"lower entropy bound" default:"4.0"`
	MaxEntropy     float64 `flag:"max-entropy" usage:"upper entropy bound" default:"6.5"`
	MinPrintable   float64 `flag:"min-printable" usage:"minimum printable density" default:"0.9"`
	MaxCompression float64 `flag:"max-compression" usage:"maximum compression ratio" default:"0.75"`
}

// NLPFlags contains the options of the perplexity stage.
type NLPFlags struct {
	Enabled       bool    `flag:"nlp" usage:"enable perplexity re-ranking"`
	Threshold     float64 `flag:"nlp-threshold" usage:"maximum perplexity" default:"200"`
	MinLength     int     `flag:"nlp-min-length" usage:"minimum text length" default:"10"`
	Model         string  `flag:"nlp-model" usage:"language model name" default:"distilgpt2"`
	WindowSize    int     `flag:"nlp-window-size" usage:"tokens per window" default:"1024"`
	Stride        int     `flag:"nlp-stride" usage:"tokens between windows" default:"1024"`
	Aggregation   string  `flag:"nlp-agg" usage:"window aggregation: mean, min, max" default:"mean"`
	Strict        bool    `flag:"nlp-strict" usage:"accept high scoring candidates without re-ranking"`
	ModelPath     string  `flag:"nlp-model-path" usage:"ONNX model file"`
	TokenizerPath string  `flag:"nlp-tokenizer" usage:"tokenizer.json file"`
	LibraryPath   string  `flag:"ort-lib" usage:"onnxruntime shared library"`
}

// Program options of the extractor.
type Program struct {
	Parameters
	Flags
	FilterFlags
	NLPFlags
}

// NewProgram returns program options with the default values set.
func NewProgram() Program {
	th := filter.DefaultThresholds()
	pc := perplexity.DefaultConfig()
	return Program{
		Parameters: Parameters{
			OutputDir: DefaultOutputDir,
		},
		Flags: Flags{
			Quality:   DefaultQuality,
			ChunkSize: scanner.DefaultChunkSize,
			Strategy:  string(scanner.StrategyChunk),
			Workers:   1,
		},
		FilterFlags: FilterFlags{
			MinEntropy:     th.MinEntropy,
			MaxEntropy:     th.MaxEntropy,
			MinPrintable:   th.MinPrintable,
			MaxCompression: th.MaxCompression,
		},
		NLPFlags: NLPFlags{
			Threshold:   pc.Threshold,
			MinLength:   pc.MinLength,
			Model:       DefaultModel,
			WindowSize:  pc.WindowSize,
			Stride:      pc.Stride,
			Aggregation: string(pc.Aggregation),
		},
	}
}

// Extraction defines the typed options that control the text extraction.
type Extraction struct {
	Quality    candidate.QualityLevel
	Scanner    scanner.Options
	Thresholds filter.Thresholds
	Workers    int

	NLP        bool // run the perplexity stage
	Model      string
	Perplexity perplexity.Config
}

// NewExtraction returns extraction options with the default values set.
func NewExtraction() Extraction {
	return Extraction{
		Quality: candidate.QualityMedium,
		Scanner: scanner.Options{
			Strategy:       scanner.StrategyChunk,
			ChunkSize:      scanner.DefaultChunkSize,
			ChunkThreshold: scanner.DefaultChunkThreshold,
		},
		Thresholds: filter.DefaultThresholds(),
		Workers:    1,
		Model:      DefaultModel,
		Perplexity: perplexity.DefaultConfig(),
	}
}

// Extraction converts the program options to typed extraction options.
func (p Program) Extraction() (Extraction, error) {
	opts := NewExtraction()

	quality, err := candidate.ParseQualityLevel(p.Quality)
	if err != nil {
		return opts, fmt.Errorf("parsing quality: %w", err)
	}
	opts.Quality = quality

	strategy, err := scanner.ParseStrategy(p.Strategy)
	if err != nil {
		return opts, fmt.Errorf("parsing strategy: %w", err)
	}
	opts.Scanner.Strategy = strategy
	opts.Scanner.ChunkSize = p.ChunkSize

	aggregation, err := perplexity.ParseAggregation(p.Aggregation)
	if err != nil {
		return opts, fmt.Errorf("parsing aggregation: %w", err)
	}

	if p.MinEntropy >= p.MaxEntropy {
		return opts, fmt.Errorf("minimum entropy %.2f must be below maximum entropy %.2f", p.MinEntropy, p.MaxEntropy)
	}
	opts.Thresholds = filter.Thresholds{
		MinEntropy:     p.MinEntropy,
		MaxEntropy:     p.MaxEntropy,
		MinPrintable:   p.MinPrintable,
		MaxCompression: p.MaxCompression,
	}
	opts.Workers = max(p.Workers, 1)

	opts.NLP = p.Enabled
	opts.Model = p.Model
	opts.Perplexity = perplexity.Config{
		Threshold:   p.Threshold,
		MinLength:   p.MinLength,
		WindowSize:  p.WindowSize,
		Stride:      p.Stride,
		Aggregation: aggregation,
		Timeout:     30 * time.Second,
		CacheSize:   perplexity.DefaultConfig().CacheSize,
		Strict:      p.Strict,
	}
	return opts, nil
}
