package perplexity

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/SophiaFrassetto/TransROM-IA/internal/filter"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/retroenv/retrogolib/log"
)

// Reranker filters candidates by perplexity.
type Reranker struct {
	logger *log.Logger
	scorer Scorer
	cfg    Config
	cache  *lru.Cache[string, float64]
}

// New creates a re-ranker. The scorer can be nil, in which case Rerank
// passes all candidates through.
func New(logger *log.Logger, scorer Scorer, cfg Config) (*Reranker, error) {
	cfg.applyDefaults()
	if _, err := ParseAggregation(string(cfg.Aggregation)); err != nil {
		return nil, err
	}

	cache, err := lru.New[string, float64](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating perplexity cache: %w", err)
	}

	return &Reranker{
		logger: logger,
		scorer: scorer,
		cfg:    cfg,
		cache:  cache,
	}, nil
}

// Available returns whether a scorer is present.
func (r *Reranker) Available() bool {
	return r.scorer != nil
}

// Config returns the effective configuration.
func (r *Reranker) Config() Config {
	return r.cfg
}

// Rerank splits the candidates into accepted and rejected ones. Every
// successfully evaluated candidate gets its perplexity set. A failure or a
// timeout while scoring rejects only the affected candidate. The returned
// error is only set if the context was cancelled.
func (r *Reranker) Rerank(ctx context.Context, candidates []*candidate.TextCandidate) (accepted, rejected []*candidate.TextCandidate, err error) {
	if r.scorer == nil {
		r.logger.Warn("Perplexity stage skipped, no language model available")
		return candidates, nil, nil
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("re-ranking candidates: %w", err)
		}

		if r.cfg.Strict && c.QualityScore >= filter.BypassScore {
			accepted = append(accepted, c)
			continue
		}

		text := strings.TrimSpace(c.Text())
		if len(text) < r.cfg.MinLength {
			rejected = append(rejected, c)
			continue
		}

		value, err := r.evaluate(ctx, text)
		if err != nil {
			r.logger.Warn("Perplexity scoring failed",
				log.Hex("offset", c.Start),
				log.Err(err))
			rejected = append(rejected, c)
			continue
		}

		c.SetPerplexity(value)
		if value < r.cfg.Threshold {
			accepted = append(accepted, c)
		} else {
			rejected = append(rejected, c)
		}
	}
	return accepted, rejected, nil
}

func (r *Reranker) evaluate(ctx context.Context, text string) (float64, error) {
	if value, ok := r.cache.Get(text); ok {
		return value, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	value, err := r.windowedPerplexity(ctx, text)
	if err != nil {
		return 0, err
	}
	r.cache.Add(text, value)
	return value, nil
}

// windowedPerplexity scores the text at once if it fits into a window,
// otherwise every window of at least 10 tokens is scored and the results
// are aggregated. If no window could be scored the result is +Inf.
func (r *Reranker) windowedPerplexity(ctx context.Context, text string) (float64, error) {
	tokens, err := r.scorer.Tokenize(text)
	if err != nil {
		return 0, fmt.Errorf("tokenizing text: %w", err)
	}

	windowSize := r.cfg.WindowSize
	if size := r.scorer.ContextSize(); size > 0 {
		windowSize = min(windowSize, size)
	}

	if len(tokens) <= windowSize {
		return r.score(ctx, tokens)
	}

	var values []float64
	for i := 0; i < len(tokens); i += r.cfg.Stride {
		window := tokens[i:min(i+windowSize, len(tokens))]
		if len(window) < minWindowTokens {
			continue
		}
		value, err := r.score(ctx, window)
		if err != nil {
			return 0, err
		}
		values = append(values, value)
	}
	return Aggregate(r.cfg.Aggregation, values), nil
}

func (r *Reranker) score(ctx context.Context, tokens []int) (float64, error) {
	value, err := r.scorer.Perplexity(ctx, tokens)
	if err != nil {
		return 0, fmt.Errorf("scoring %d tokens: %w", len(tokens), err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("scoring %d tokens: %w", len(tokens), err)
	}
	return value, nil
}

// Aggregate combines window perplexities. An empty input results in +Inf.
func Aggregate(agg Aggregation, values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(1)
	}

	switch agg {
	case AggregationMin:
		result := values[0]
		for _, v := range values[1:] {
			result = min(result, v)
		}
		return result

	case AggregationMax:
		result := values[0]
		for _, v := range values[1:] {
			result = max(result, v)
		}
		return result

	default:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
}
