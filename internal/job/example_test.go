package job_test

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/SophiaFrassetto/TransROM-IA/internal/job"
	"github.com/retroenv/retrogolib/log"
)

func ExampleRunner_Run() {
	cfg := log.DefaultConfig()
	cfg.Output = io.Discard
	logger := log.NewWithConfig(cfg)

	runner := job.NewRunner(logger, func(_ context.Context, _ string) ([]*candidate.TextCandidate, error) {
		return []*candidate.TextCandidate{{}, {}}, nil
	})

	j := job.New("job-1", "game.sfc", time.Now())
	if err := runner.Run(context.Background(), j); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(j.Status, j.Candidates)
	// Output: completed 2
}
