// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/app"
	"github.com/SophiaFrassetto/TransROM-IA/internal/options"
	"github.com/SophiaFrassetto/TransROM-IA/internal/perplexity"
	"github.com/SophiaFrassetto/TransROM-IA/internal/perplexity/onnx"
	"github.com/SophiaFrassetto/TransROM-IA/internal/pipeline"
	"github.com/SophiaFrassetto/TransROM-IA/internal/rom"
	"github.com/SophiaFrassetto/TransROM-IA/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Outputs contains the paths of the files written for one input file.
type Outputs struct {
	Filtered string // candidates accepted by the filter chain
	NLP      string // candidates accepted by the perplexity stage, empty if disabled
	Rejected string // candidates rejected by the perplexity stage, empty if none
}

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	extraction options.Extraction, scorer perplexity.Scorer) (Outputs, error) {

	var pipelineOptions []pipeline.Option
	if scorer != nil {
		pipelineOptions = append(pipelineOptions, pipeline.WithScorer(scorer))
	}
	pipelineOptions = append(pipelineOptions, pipeline.WithProgress(func(e pipeline.Event) {
		logger.Debug("Stage completed",
			log.String("stage", e.Stage),
			log.Int("done", e.Done),
			log.Int("total", e.Total))
	}))

	p, err := pipeline.New(logger, extraction, pipelineOptions...)
	if err != nil {
		return Outputs{}, fmt.Errorf("creating pipeline: %w", err)
	}

	result, err := p.Process(ctx, opts.Input)
	if err != nil {
		return Outputs{}, fmt.Errorf("processing file: %w", err)
	}
	app.PrintInfo(logger, opts, result.Rom, result.Families)

	stem := rom.Stem(opts.Input)
	w := writer.New()

	var outputs Outputs
	suffix := OutputSuffix(extraction)
	outputs.Filtered, err = w.Save(opts.OutputDir, stem, suffix, result.Filtered)
	if err != nil {
		return outputs, fmt.Errorf("saving results: %w", err)
	}
	logger.Info("Saved results",
		log.String("file", outputs.Filtered),
		log.Int("candidates", len(result.Filtered)),
		log.Int("bypassed", result.Stats.Bypassed),
		log.Int("rejected", result.Stats.Rejected),
		log.Int("dropped", result.Stats.Dropped))

	if !extraction.NLP {
		return outputs, nil
	}

	nlpSuffix := NLPSuffix(extraction)
	outputs.NLP, err = w.Save(opts.OutputDir, stem, nlpSuffix, result.Accepted)
	if err != nil {
		return outputs, fmt.Errorf("saving re-ranked results: %w", err)
	}
	logger.Info("Saved re-ranked results",
		log.String("file", outputs.NLP),
		log.Int("candidates", len(result.Accepted)))

	if len(result.Rejected) > 0 {
		outputs.Rejected, err = w.Save(opts.OutputDir, stem, RejectedSuffix(extraction), result.Rejected)
		if err != nil {
			return outputs, fmt.Errorf("saving rejected results: %w", err)
		}
		logger.Info("Saved rejected candidates",
			log.String("file", outputs.Rejected),
			log.Int("candidates", len(result.Rejected)))
	}
	return outputs, nil
}

// LoadScorer loads the language model configured in the options. A model
// that can not be loaded results in a nil scorer and a warning, the
// perplexity stage then passes all candidates through.
func LoadScorer(logger *log.Logger, opts options.Program) perplexity.Scorer {
	if !opts.Enabled {
		return nil
	}

	scorer, err := onnx.Load(onnx.Config{
		ModelID:           opts.Model,
		ModelPath:         opts.ModelPath,
		TokenizerPath:     opts.TokenizerPath,
		SharedLibraryPath: opts.LibraryPath,
	})
	if err != nil {
		logger.Warn("Language model unavailable, skipping perplexity filter",
			log.String("model", opts.Model),
			log.Err(err))
		return nil
	}

	logger.Info("Loaded language model", log.String("model", scorer.ModelID()))
	return scorer
}

// OutputSuffix returns the file name suffix of the filter chain results.
func OutputSuffix(opts options.Extraction) string {
	return fmt.Sprintf("_%s_no_NLP", opts.Quality)
}

// NLPSuffix returns the file name suffix of the re-ranked results. It
// encodes the model and the perplexity settings.
func NLPSuffix(opts options.Extraction) string {
	model := strings.ReplaceAll(opts.Model, "/", "_")
	threshold := strconv.FormatFloat(opts.Perplexity.Threshold, 'f', -1, 64)
	return fmt.Sprintf("_%s_%s_%s_%d_NLP", opts.Quality, model, threshold, opts.Perplexity.MinLength)
}

// RejectedSuffix returns the file name suffix of the candidates rejected by
// the perplexity stage.
func RejectedSuffix(opts options.Extraction) string {
	return NLPSuffix(opts) + "_rejected"
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("transrom - ROM text extractor",
		log.String("version", buildinfo.Version(version, commit, date)))
}
