package logs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reusee/strudo/cmds"
	"github.com/reusee/strudo/configs"
	"github.com/reusee/strudo/vars"
	slogmulti "github.com/samber/slog-multi"
)

var logDirFlag = cmds.Var[string]("-log-dir")

// RunLog is the per-run log file shared by the run logger and the final
// machine-readable report.
type RunLog struct {
	Path string

	mu   sync.Mutex
	file *os.File
}

func (r *RunLog) AppendReport(report any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return fmt.Errorf("run log already closed")
	}
	content, err := json.MarshalIndent(map[string]any{
		"report": report,
	}, "", "  ")
	if err != nil {
		return err
	}
	if _, err := r.file.Write(append(content, '\n')); err != nil {
		return err
	}
	return nil
}

func (r *RunLog) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

type NewRunLogger func(name string) (Logger, *RunLog, error)

func (Module) NewRunLogger(
	writer Writer,
	loader configs.Loader,
) NewRunLogger {
	return func(name string) (Logger, *RunLog, error) {
		dir := vars.FirstNonZero(
			*logDirFlag,
			configs.First[string](loader, "log_dir"),
			"logs",
		)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}

		timestamp := time.Now().UTC().Format("20060102T150405Z")
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.log", name, timestamp))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open run log: %w", err)
		}

		handlers := append(
			baseHandlers(writer),
			slog.NewJSONHandler(file, &slog.HandlerOptions{
				Level: level,
			}),
		)
		logger := slog.New(&Handler{
			Handler: slogmulti.Fanout(handlers...),
		})

		return logger, &RunLog{
			Path: path,
			file: file,
		}, nil
	}
}
