package fetches

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/reusee/strudo/logs"
)

// DefaultSparseDirs are the upstream directories worth having locally for
// pattern reference and harness debugging.
var DefaultSparseDirs = []string{
	"packages/web",
	"packages/repl",
	"docs",
	"examples",
}

var DefaultIncludes = []string{
	"README.md",
}

const DefaultRepoDest = "vendor/strudel"

type RepoOptions struct {
	URL        string
	Dest       string
	SparseDirs []string
	Includes   []string
	Force      bool
}

// FetchRepo makes a shallow, blob-filtered sparse clone of the Strudel
// repository for local inspection.
type FetchRepo func(ctx context.Context, options RepoOptions) error

func (Module) FetchRepo(
	logger logs.Logger,
) FetchRepo {
	return func(ctx context.Context, options RepoOptions) error {

		if options.Dest == "" {
			options.Dest = DefaultRepoDest
		}
		if _, err := os.Stat(options.Dest); err == nil {
			if !options.Force {
				return fmt.Errorf("destination %s already exists; use -force to replace it", options.Dest)
			}
			if err := os.RemoveAll(options.Dest); err != nil {
				return err
			}
		}
		if err := os.MkdirAll(filepath.Dir(options.Dest), 0755); err != nil {
			return err
		}

		if err := runGit(ctx, "",
			"clone",
			"--depth", "1",
			"--filter=blob:none",
			"--sparse",
			options.URL,
			options.Dest,
		); err != nil {
			return err
		}

		// cone mode first, then the requested directories
		if err := runGit(ctx, options.Dest, "sparse-checkout", "set", "--cone"); err != nil {
			return err
		}
		if len(options.SparseDirs) > 0 {
			args := append([]string{"sparse-checkout", "set"}, options.SparseDirs...)
			if err := runGit(ctx, options.Dest, args...); err != nil {
				return err
			}
		}
		for _, include := range options.Includes {
			if err := runGit(ctx, options.Dest,
				"sparse-checkout", "add", "--skip-checks", include,
			); err != nil {
				return err
			}
		}

		logger.InfoContext(ctx, "strudel repository fetched",
			"url", options.URL,
			"dest", options.Dest,
		)
		return nil
	}
}

func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("git %v: %s", args, bytes.TrimSpace(stderr.Bytes()))
		}
		return fmt.Errorf("git %v: %w", args, err)
	}
	return nil
}
