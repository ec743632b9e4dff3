// Package perplexity re-ranks accepted text candidates by the perplexity a
// causal language model assigns to their text. The language model is an
// optional dependency, without it the stage passes all candidates through.
package perplexity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrModelUnavailable is returned when the scorer could not be loaded.
var ErrModelUnavailable = errors.New("model unavailable")

// Scorer computes the perplexity of token sequences. Implementations wrap a
// tokenizer and a language model.
type Scorer interface {
	Tokenize(text string) ([]int, error)
	Perplexity(ctx context.Context, tokens []int) (float64, error)
	ContextSize() int
	ModelID() string
	Close() error
}

// Aggregation selects how the perplexities of multiple windows are
// combined.
type Aggregation string

// Supported aggregations.
const (
	AggregationMean Aggregation = "mean"
	AggregationMin  Aggregation = "min"
	AggregationMax  Aggregation = "max"
)

// ParseAggregation parses an aggregation name. An empty name selects the
// mean.
func ParseAggregation(s string) (Aggregation, error) {
	switch a := Aggregation(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AggregationMean, nil
	case AggregationMean, AggregationMin, AggregationMax:
		return a, nil
	default:
		return "", fmt.Errorf("unsupported aggregation '%s'", s)
	}
}

// minWindowTokens is the minimum number of tokens of a window to be scored.
const minWindowTokens = 10

// Config configures the re-ranker.
type Config struct {
	Threshold   float64 // candidates with a perplexity below are accepted
	MinLength   int     // minimum length of the trimmed text
	WindowSize  int     // tokens per window
	Stride      int     // tokens between window starts
	Aggregation Aggregation
	Timeout     time.Duration // per candidate
	CacheSize   int
	Strict      bool // accept bypass candidates without scoring
}

// DefaultConfig returns the default re-ranker configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:   200.0,
		MinLength:   10,
		WindowSize:  1024,
		Stride:      1024,
		Aggregation: AggregationMean,
		Timeout:     30 * time.Second,
		CacheSize:   1024,
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Threshold <= 0 {
		c.Threshold = def.Threshold
	}
	if c.MinLength < 0 {
		c.MinLength = def.MinLength
	}
	if c.WindowSize <= 0 {
		c.WindowSize = def.WindowSize
	}
	if c.Stride <= 0 {
		c.Stride = def.Stride
	}
	if c.Aggregation == "" {
		c.Aggregation = def.Aggregation
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.CacheSize <= 0 {
		c.CacheSize = def.CacheSize
	}
}
