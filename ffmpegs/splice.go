package ffmpegs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Concat joins the inputs in order into one output file using the concat
// demuxer.
func (r *Runner) Concat(ctx context.Context, inputs []string, output string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files supplied for concat")
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}

	listPath := output + ".list"
	if err := os.WriteFile(listPath, []byte(concatList(inputs)), 0644); err != nil {
		return err
	}
	defer os.Remove(listPath)

	if err := r.run(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		output,
	); err != nil {
		return fmt.Errorf("concat audio: %w", err)
	}

	r.logger.InfoContext(ctx, "concatenated audio",
		"inputs", inputs,
		"output", output,
	)
	return nil
}

// Loop repeats input end to end and writes the result to output.
func (r *Runner) Loop(ctx context.Context, input string, repeats int, output string) error {
	if repeats < 1 {
		return fmt.Errorf("repeats must be >= 1")
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}

	var args []string
	for range repeats {
		args = append(args, "-i", input)
	}
	args = append(args,
		"-filter_complex", loopFiltergraph(repeats),
		"-map", "[out]",
		output,
	)

	if err := r.run(ctx, args...); err != nil {
		return fmt.Errorf("loop audio: %w", err)
	}

	r.logger.InfoContext(ctx, "looped audio",
		"input", input,
		"repeats", repeats,
		"output", output,
	)
	return nil
}

func concatList(inputs []string) string {
	var sb strings.Builder
	for _, input := range inputs {
		fmt.Fprintf(&sb, "file '%s'\n", input)
	}
	return sb.String()
}

func loopFiltergraph(repeats int) string {
	var sb strings.Builder
	for i := range repeats {
		fmt.Fprintf(&sb, "[%d:a]", i)
	}
	fmt.Fprintf(&sb, "concat=n=%d:v=0:a=1[out]", repeats)
	return sb.String()
}
