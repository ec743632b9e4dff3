// Package filter scores text candidates with a fixed set of independent
// quality filters and decides which candidates are accepted.
package filter

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// BypassScore is the total score at which a candidate is accepted
// regardless of the quality level and of the perplexity stage in strict mode.
const BypassScore = 3.5

// ErrScoringFailure is returned when a filter fails on a candidate.
var ErrScoringFailure = errors.New("scoring failure")

// Filter scores one quality aspect of a candidate. Filters have no shared
// state and do not modify the candidate.
type Filter interface {
	Name() string
	Score(c *candidate.TextCandidate) float64
}

// Decision is the outcome of evaluating a candidate.
type Decision int

// Decisions of the filter chain.
const (
	Dropped Decision = iota
	Rejected
	Accepted
	AcceptedBypass
)

func (d Decision) String() string {
	switch d {
	case Dropped:
		return "dropped"
	case Rejected:
		return "rejected"
	case Accepted:
		return "accepted"
	case AcceptedBypass:
		return "accepted_bypass"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// IsAccepted returns whether the decision accepts the candidate.
func (d Decision) IsAccepted() bool {
	return d == Accepted || d == AcceptedBypass
}

// Chain sums the scores of all filters.
type Chain struct {
	logger  *log.Logger
	filters []Filter
	workers int
}

// NewChain returns a chain of the given filters.
func NewChain(logger *log.Logger, filters ...Filter) *Chain {
	return &Chain{
		logger:  logger,
		filters: filters,
		workers: 1,
	}
}

// DefaultChain returns a chain of all filters with default thresholds.
func DefaultChain(logger *log.Logger) *Chain {
	return NewChain(logger, New(DefaultThresholds())...)
}

// SetWorkers sets the number of candidates that are scored concurrently.
func (c *Chain) SetWorkers(workers int) {
	c.workers = max(workers, 1)
}

// Filters returns the filters of the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}

// Score returns the sum of all filter scores. The individual scores are
// summed in sorted order so that the total does not depend on the filter
// order. A panicking filter results in ErrScoringFailure.
func (c *Chain) Score(cand *candidate.TextCandidate) (total float64, err error) {
	var current string
	defer func() {
		if r := recover(); r != nil {
			total = 0
			err = fmt.Errorf("filter '%s' at offset 0x%X: %v: %w", current, cand.Start, r, ErrScoringFailure)
		}
	}()

	scores := make([]float64, 0, len(c.filters))
	for _, f := range c.filters {
		current = f.Name()
		scores = append(scores, f.Score(cand))
	}
	slices.Sort(scores)

	for _, s := range scores {
		total += s
	}
	return total, nil
}

// Evaluate scores the candidate, stores the total as its quality score and
// decides whether it is accepted. Candidates without data are dropped
// without scoring.
func (c *Chain) Evaluate(cand *candidate.TextCandidate, minScore float64) (Decision, error) {
	if len(cand.Raw) == 0 {
		return Dropped, nil
	}

	total, err := c.Score(cand)
	if err != nil {
		return Rejected, err
	}
	cand.QualityScore = total

	switch {
	case total >= BypassScore:
		return AcceptedBypass, nil
	case total >= minScore:
		return Accepted, nil
	default:
		return Rejected, nil
	}
}

// Result contains the candidates that passed the chain in input order and
// counters for all other outcomes.
type Result struct {
	Accepted []*candidate.TextCandidate
	Bypassed int // accepted candidates with a score of at least BypassScore
	Rejected int
	Dropped  int
	Failed   int // rejected because a filter failed
}

// Run evaluates all candidates. Scoring failures reject the affected
// candidate without aborting the run. Only a cancelled context returns an
// error.
func (c *Chain) Run(ctx context.Context, candidates []*candidate.TextCandidate, minScore float64) (Result, error) {
	decisions := make([]Decision, len(candidates))
	failures := make([]error, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, cand := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("scoring candidates: %w", err)
			}
			decisions[i], failures[i] = c.Evaluate(cand, minScore)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var result Result
	for i, cand := range candidates {
		if failures[i] != nil {
			c.logger.Warn("Scoring candidate failed",
				log.Hex("offset", cand.Start),
				log.Err(failures[i]))
			result.Failed++
		}

		switch decisions[i] {
		case Dropped:
			result.Dropped++
		case Rejected:
			result.Rejected++
		case AcceptedBypass:
			result.Bypassed++
			result.Accepted = append(result.Accepted, cand)
		case Accepted:
			result.Accepted = append(result.Accepted, cand)
		}
	}
	return result, nil
}
