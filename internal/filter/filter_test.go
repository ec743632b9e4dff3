package filter

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func textCandidate(s string) *candidate.TextCandidate {
	return candidate.New(0, len(s), []byte(s))
}

// constant is a filter that always returns the same score.
type constant float64

func (c constant) Name() string                           { return "constant" }
func (c constant) Score(*candidate.TextCandidate) float64 { return float64(c) }

type panicking struct{}

func (panicking) Name() string                           { return "panicking" }
func (panicking) Score(*candidate.TextCandidate) float64 { panic("broken filter") }

func TestChainEvaluate(t *testing.T) {
	logger := log.NewTestLogger(t)

	tests := []struct {
		name     string
		filters  []Filter
		raw      string
		minScore float64
		want     Decision
		score    float64
	}{
		{name: "empty candidate", filters: []Filter{constant(5)}, raw: "", minScore: 2, want: Dropped},
		{name: "bypass", filters: []Filter{constant(2), constant(1.5)}, raw: "x", minScore: 100, want: AcceptedBypass, score: 3.5},
		{name: "accepted", filters: []Filter{constant(1), constant(1)}, raw: "x", minScore: 2, want: Accepted, score: 2},
		{name: "rejected", filters: []Filter{constant(1), constant(0.5)}, raw: "x", minScore: 2, want: Rejected, score: 1.5},
		{name: "negative scores", filters: []Filter{constant(3), constant(-1)}, raw: "x", minScore: 3, want: Rejected, score: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(logger, tt.filters...)
			c := textCandidate(tt.raw)

			decision, err := chain.Evaluate(c, tt.minScore)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, decision)
			assert.Equal(t, tt.score, c.QualityScore)
		})
	}
}

func TestChainRecoversPanic(t *testing.T) {
	chain := NewChain(log.NewTestLogger(t), constant(1), panicking{})

	decision, err := chain.Evaluate(textCandidate("text"), 1)
	assert.ErrorContains(t, err, "panicking")
	assert.True(t, errors.Is(err, ErrScoringFailure))
	assert.Equal(t, Rejected, decision)
}

func TestChainScoreOrderIndependent(t *testing.T) {
	logger := log.NewTestLogger(t)
	texts := []string{
		"The hero opened the door and found the key.",
		"ABABABABABABABABABABABABABABABABABABABAB",
		"ABCDEFGHIJKLMNOP",
		"Save your game before you continue!",
	}

	filters := append(New(DefaultThresholds()), SoftPrintableDensity())
	rng := rand.New(rand.NewSource(1))

	for _, text := range texts {
		want, err := NewChain(logger, filters...).Score(textCandidate(text))
		assert.NoError(t, err)

		for range 20 {
			shuffled := append([]Filter(nil), filters...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			got, err := NewChain(logger, shuffled...).Score(textCandidate(text))
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestChainRun(t *testing.T) {
	logger := log.NewTestLogger(t)
	text := "The king said: Welcome to our castle, brave hero. Take this sword and save the world!"

	candidates := []*candidate.TextCandidate{
		textCandidate(text),
		textCandidate(""),
		textCandidate(strings.Repeat("AB", 20)),
		textCandidate("You found a potion. Use it when your life is low."),
	}

	for _, workers := range []int{1, 4} {
		chain := DefaultChain(logger)
		chain.SetWorkers(workers)

		result, err := chain.Run(context.Background(), candidates, 2.0)
		assert.NoError(t, err)
		assert.Len(t, result.Accepted, 2)
		assert.Equal(t, candidates[0], result.Accepted[0])
		assert.Equal(t, candidates[3], result.Accepted[1])
		assert.Equal(t, 1, result.Dropped)
		assert.Equal(t, 1, result.Rejected)
	}
}

func TestChainRunFailureRejects(t *testing.T) {
	chain := NewChain(log.NewTestLogger(t), panicking{})

	result, err := chain.Run(context.Background(), []*candidate.TextCandidate{textCandidate("abc")}, 0)
	assert.NoError(t, err)
	assert.Empty(t, result.Accepted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Rejected)
}

func TestChainRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DefaultChain(log.NewTestLogger(t)).Run(ctx, []*candidate.TextCandidate{textCandidate("abc")}, 0)
	assert.Error(t, err)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "accepted_bypass", AcceptedBypass.String())
	assert.True(t, Accepted.IsAccepted())
	assert.False(t, Rejected.IsAccepted())
}
