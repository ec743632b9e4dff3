// Package job tracks the lifecycle of extraction jobs that are submitted by
// an outer service. Jobs are created with New and executed by a Runner,
// usually wrapping pipeline.Process:
//
//	runner := job.NewRunner(logger, func(ctx context.Context, path string) ([]*candidate.TextCandidate, error) {
//		return pipeline.Process(ctx, logger, path, opts)
//	})
//	err := runner.Run(ctx, job.New(id, path, time.Now()))
package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/retroenv/retrogolib/log"
)

// ErrInvalidTransition is returned for a status change that the lifecycle
// does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status is the processing status of a job.
type Status string

// Job statuses. A job starts as pending and ends as completed or failed.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

func (s Status) String() string { return string(s) }

// CanTransition returns whether the status can change to the target.
func (s Status) CanTransition(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal returns whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Job is a request to extract text from one ROM file.
type Job struct {
	ID     string
	Path   string
	Status Status

	Candidates int    // number of accepted candidates once completed
	Error      string // failure message once failed

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New returns a pending job.
func New(id, path string, now time.Time) *Job {
	return &Job{
		ID:        id,
		Path:      path,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Transition changes the status of the job.
func (j *Job) Transition(to Status, now time.Time) error {
	if !j.Status.CanTransition(to) {
		return fmt.Errorf("job '%s' from '%s' to '%s': %w", j.ID, j.Status, to, ErrInvalidTransition)
	}
	j.Status = to
	j.UpdatedAt = now
	return nil
}

// ProcessFunc extracts the text candidates of a ROM file.
type ProcessFunc func(ctx context.Context, path string) ([]*candidate.TextCandidate, error)

// Runner executes jobs.
type Runner struct {
	logger  *log.Logger
	process ProcessFunc
	now     func() time.Time
}

// NewRunner creates a runner that uses the given process function.
func NewRunner(logger *log.Logger, process ProcessFunc) *Runner {
	return &Runner{
		logger:  logger,
		process: process,
		now:     time.Now,
	}
}

// Run processes the job and records the outcome in it. A processing error
// marks the job as failed and is returned.
func (r *Runner) Run(ctx context.Context, j *Job) error {
	if err := j.Transition(StatusProcessing, r.now()); err != nil {
		return err
	}
	r.logger.Debug("Processing job", log.String("job", j.ID), log.String("file", j.Path))

	candidates, err := r.process(ctx, j.Path)
	if err != nil {
		j.Error = err.Error()
		if terr := j.Transition(StatusFailed, r.now()); terr != nil {
			return terr
		}
		r.logger.Warn("Job failed", log.String("job", j.ID), log.Err(err))
		return fmt.Errorf("processing job '%s': %w", j.ID, err)
	}

	j.Candidates = len(candidates)
	if err := j.Transition(StatusCompleted, r.now()); err != nil {
		return err
	}
	r.logger.Info("Job completed",
		log.String("job", j.ID),
		log.Int("candidates", j.Candidates))
	return nil
}
