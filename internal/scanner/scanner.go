// Package scanner finds byte spans that look like text. Two strategies are
// supported: fixed size chunking with stitching of consecutive text chunks
// and a sliding window that tracks rising and falling edges of the
// text-likeness score.
package scanner

import (
	"fmt"
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
)

// Strategy selects the scanning algorithm.
type Strategy string

// Supported strategies.
const (
	StrategyChunk  Strategy = "chunk"
	StrategyWindow Strategy = "window"
)

// Default scanner parameters.
const (
	DefaultChunkSize       = 32
	DefaultChunkThreshold  = 0.5
	DefaultWindowSize      = 16
	DefaultWindowThreshold = 0.8
	DefaultMinBlockSize    = 20
)

// Scanner finds text candidates in raw data. Candidate offsets are absolute
// within the scanned data.
type Scanner interface {
	Scan(data []byte) []*candidate.TextCandidate
}

// Options configures the scanner. Values that are not positive are
// replaced by the defaults.
type Options struct {
	Strategy Strategy

	ChunkSize      int
	ChunkThreshold float64

	WindowSize      int
	WindowThreshold float64
	MinBlockSize    int
}

// ParseStrategy parses a strategy name. An empty name selects the chunk
// strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyChunk:
		return StrategyChunk, nil
	case StrategyWindow:
		return StrategyWindow, nil
	default:
		return "", fmt.Errorf("unsupported scan strategy '%s'", s)
	}
}

// New creates the scanner for the configured strategy.
func New(opts Options) (Scanner, error) {
	switch opts.Strategy {
	case "", StrategyChunk:
		return NewChunk(opts.ChunkSize, opts.ChunkThreshold), nil
	case StrategyWindow:
		return NewWindow(opts.WindowSize, opts.WindowThreshold, opts.MinBlockSize), nil
	default:
		return nil, fmt.Errorf("unsupported scan strategy '%s'", opts.Strategy)
	}
}
