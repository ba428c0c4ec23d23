package ffmpegs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/strudoconfigs"
)

// Runner shells out to the external ffmpeg binary. All invocations overwrite
// outputs (-y) and surface the stderr tail in returned errors.
type Runner struct {
	path   string
	logger logs.Logger
}

func (Module) Runner(
	path strudoconfigs.FFmpegPath,
	logger logs.Logger,
) *Runner {
	return &Runner{
		path:   string(path),
		logger: logger,
	}
}

func (r *Runner) run(ctx context.Context, args ...string) error {
	args = append([]string{"-y"}, args...)
	cmd := exec.CommandContext(ctx, r.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.DebugContext(ctx, "running ffmpeg",
		"args", args,
	)

	err := cmd.Run()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("ffmpeg is required; install it or set ffmpeg_path: %w", err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("ffmpeg exited with %d: %s",
				exitErr.ExitCode(),
				stderrTail(stderr.String()),
			)
		}
		return err
	}
	return nil
}

func stderrTail(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "\n")
}
