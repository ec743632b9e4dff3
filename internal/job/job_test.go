package job

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/SophiaFrassetto/TransROM-IA/internal/options"
	"github.com/SophiaFrassetto/TransROM-IA/internal/pipeline"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusPending, false},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestJobTransition(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	j := New("1", "game.sfc", created)
	assert.Equal(t, StatusPending, j.Status)

	err := j.Transition(StatusCompleted, created.Add(time.Second))
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StatusPending, j.Status)
	assert.Equal(t, created, j.UpdatedAt)

	assert.NoError(t, j.Transition(StatusProcessing, created.Add(time.Second)))
	assert.Equal(t, created.Add(time.Second), j.UpdatedAt)
}

func TestRunnerRun(t *testing.T) {
	process := func(_ context.Context, path string) ([]*candidate.TextCandidate, error) {
		if path == "broken.sfc" {
			return nil, errors.New("file not found")
		}
		return []*candidate.TextCandidate{
			candidate.New(0, 4, []byte("text")),
			candidate.New(8, 12, []byte("more")),
		}, nil
	}
	runner := NewRunner(log.NewTestLogger(t), process)

	ok := New("ok", "game.sfc", time.Now())
	assert.NoError(t, runner.Run(context.Background(), ok))
	assert.Equal(t, StatusCompleted, ok.Status)
	assert.Equal(t, 2, ok.Candidates)
	assert.Empty(t, ok.Error)

	broken := New("broken", "broken.sfc", time.Now())
	err := runner.Run(context.Background(), broken)
	assert.ErrorContains(t, err, "file not found")
	assert.Equal(t, StatusFailed, broken.Status)
	assert.Equal(t, "file not found", broken.Error)

	err = runner.Run(context.Background(), ok)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestRunnerWithPipeline(t *testing.T) {
	logger := log.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "empty.gba")
	assert.NoError(t, os.WriteFile(path, make([]byte, 512), 0o600))

	opts := options.NewExtraction()
	runner := NewRunner(logger, func(ctx context.Context, path string) ([]*candidate.TextCandidate, error) {
		return pipeline.Process(ctx, logger, path, opts)
	})

	j := New("pipeline", path, time.Now())
	assert.NoError(t, runner.Run(context.Background(), j))
	assert.Equal(t, StatusCompleted, j.Status)
	assert.Equal(t, 0, j.Candidates)

	missing := New("missing", filepath.Join(t.TempDir(), "missing.gba"), time.Now())
	assert.Error(t, runner.Run(context.Background(), missing))
	assert.Equal(t, StatusFailed, missing.Status)
}
