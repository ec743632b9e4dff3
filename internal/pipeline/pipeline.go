// Package pipeline orchestrates the text extraction workflow stages.
package pipeline

import (
	"context"
	"fmt"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/SophiaFrassetto/TransROM-IA/internal/detector"
	"github.com/SophiaFrassetto/TransROM-IA/internal/family"
	"github.com/SophiaFrassetto/TransROM-IA/internal/filter"
	"github.com/SophiaFrassetto/TransROM-IA/internal/loader"
	"github.com/SophiaFrassetto/TransROM-IA/internal/options"
	"github.com/SophiaFrassetto/TransROM-IA/internal/perplexity"
	"github.com/SophiaFrassetto/TransROM-IA/internal/rom"
	"github.com/SophiaFrassetto/TransROM-IA/internal/scanner"
	"github.com/retroenv/retrogolib/log"
)

// Stage names reported to the progress sink.
const (
	StageScanning  = "scanning"
	StageFiltering = "filtering"
	StageReranking = "reranking"
)

// Event is a progress notification of a pipeline stage.
type Event struct {
	Stage string
	Done  int
	Total int
}

// ProgressFunc receives progress events. It is called synchronously.
type ProgressFunc func(Event)

// Option configures a pipeline.
type Option func(*Pipeline)

// WithProgress sets the progress sink.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithScorer sets the language model used by the perplexity stage. Without
// a scorer the stage passes all candidates through.
func WithScorer(scorer perplexity.Scorer) Option {
	return func(p *Pipeline) {
		p.scorer = scorer
	}
}

// Pipeline orchestrates the complete extraction workflow. It holds all
// state of a run, nothing is shared between pipelines.
type Pipeline struct {
	logger   *log.Logger
	opts     options.Extraction
	loader   *loader.Loader
	detector *detector.Detector
	scanner  scanner.Scanner
	chain    *filter.Chain
	reranker *perplexity.Reranker // nil if the perplexity stage is disabled
	scorer   perplexity.Scorer
	progress ProgressFunc
}

// Statistics counts the candidates per outcome.
type Statistics struct {
	Candidates  int
	Accepted    int
	Bypassed    int
	Rejected    int
	Dropped     int
	Failed      int
	NLPRejected int
}

// Result is the outcome of a pipeline run.
type Result struct {
	Rom      *rom.Rom                   // nil for in-memory input
	Families []*family.Family           // families resolved for the ROM
	Filtered []*candidate.TextCandidate // accepted by the filter chain
	Accepted []*candidate.TextCandidate
	Rejected []*candidate.TextCandidate // rejected by the perplexity stage
	Stats    Statistics
}

// New creates a new extraction pipeline.
func New(logger *log.Logger, opts options.Extraction, pipelineOptions ...Option) (*Pipeline, error) {
	sc, err := scanner.New(opts.Scanner)
	if err != nil {
		return nil, fmt.Errorf("creating scanner: %w", err)
	}

	chain := filter.NewChain(logger, filter.New(opts.Thresholds)...)
	chain.SetWorkers(opts.Workers)

	p := &Pipeline{
		logger:   logger,
		opts:     opts,
		loader:   loader.New(),
		detector: detector.New(logger),
		scanner:  sc,
		chain:    chain,
	}
	for _, option := range pipelineOptions {
		option(p)
	}

	if opts.NLP {
		p.reranker, err = perplexity.New(logger, p.scorer, opts.Perplexity)
		if err != nil {
			return nil, fmt.Errorf("creating re-ranker: %w", err)
		}
	}
	return p, nil
}

// Process loads the ROM file, resolves its family and extracts the text
// candidates.
func (p *Pipeline) Process(ctx context.Context, path string) (*Result, error) {
	r, err := p.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	families := p.detector.Enrich(r)
	if len(families) == 0 {
		p.logger.Debug("No family matches the file extension",
			log.String("file", r.Path),
			log.String("extension", r.Extension))
	}

	result, err := p.ProcessData(ctx, r.Data)
	if err != nil {
		return nil, err
	}
	result.Rom = r
	result.Families = families
	return result, nil
}

// ProcessData extracts the text candidates from in-memory data.
func (p *Pipeline) ProcessData(ctx context.Context, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing data: %w", err)
	}

	candidates := p.scanner.Scan(data)
	p.report(StageScanning, len(data), len(data))
	p.logger.Debug("Scanned data",
		log.Int("bytes", len(data)),
		log.Int("candidates", len(candidates)))

	filtered, err := p.chain.Run(ctx, candidates, p.opts.Quality.Threshold())
	if err != nil {
		return nil, fmt.Errorf("filtering candidates: %w", err)
	}
	p.report(StageFiltering, len(candidates), len(candidates))

	result := &Result{
		Filtered: filtered.Accepted,
		Accepted: filtered.Accepted,
		Stats: Statistics{
			Candidates: len(candidates),
			Bypassed:   filtered.Bypassed,
			Rejected:   filtered.Rejected,
			Dropped:    filtered.Dropped,
			Failed:     filtered.Failed,
		},
	}

	if p.reranker != nil {
		accepted, rejected, err := p.reranker.Rerank(ctx, filtered.Accepted)
		if err != nil {
			return nil, fmt.Errorf("re-ranking candidates: %w", err)
		}
		result.Accepted = accepted
		result.Rejected = rejected
		result.Stats.NLPRejected = len(rejected)
		p.report(StageReranking, len(filtered.Accepted), len(filtered.Accepted))
	}

	result.Stats.Accepted = len(result.Accepted)
	return result, nil
}

func (p *Pipeline) report(stage string, done, total int) {
	if p.progress == nil {
		return
	}
	p.progress(Event{Stage: stage, Done: done, Total: total})
}

// Process runs a pipeline with the given options on a ROM file and returns
// the accepted candidates.
func Process(ctx context.Context, logger *log.Logger, path string, opts options.Extraction,
	pipelineOptions ...Option) ([]*candidate.TextCandidate, error) {

	p, err := New(logger, opts, pipelineOptions...)
	if err != nil {
		return nil, err
	}
	result, err := p.Process(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Accepted, nil
}
