package ffmpegs

import (
	"context"
	"fmt"
	"strings"
)

// ConvertibleFormats are the formats Convert knows how to produce from a
// rendered webm capture.
var ConvertibleFormats = map[string]bool{
	"wav": true,
	"mp3": true,
}

// Convert transcodes src into the requested format next to it, returning the
// output path.
func (r *Runner) Convert(ctx context.Context, src string, format string) (string, error) {
	format = strings.ToLower(format)
	if !ConvertibleFormats[format] {
		return "", fmt.Errorf("unsupported audio format: %s", format)
	}

	output := strings.TrimSuffix(src, ".webm") + "." + format
	args := []string{
		"-i", src,
	}
	if format == "mp3" {
		args = append(args, "-codec:a", "libmp3lame", "-qscale:a", "2")
	}
	args = append(args, output)

	if err := r.run(ctx, args...); err != nil {
		return "", fmt.Errorf("convert %s to %s: %w", src, format, err)
	}
	return output, nil
}
