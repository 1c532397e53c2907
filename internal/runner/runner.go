package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"jobguard/internal/guard"
)

// NewCommandJob turns a configured shell command line into a guarded unit of
// work. Output goes to the logger; a non-zero exit is the job's error and is
// propagated by the gate after the lock is released.
func NewCommandJob(logger *slog.Logger, key, command string) guard.Job {
	return func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)

		out, err := cmd.CombinedOutput()
		if len(out) > 0 {
			logger.Info("Job command output",
				"key", key,
				"output", string(out),
			)
		}
		if err != nil {
			return fmt.Errorf("command %q: %w", command, err)
		}
		return nil
	}
}
