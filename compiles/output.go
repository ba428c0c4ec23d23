package compiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/tracks"
)

var supportedFormats = map[string]bool{
	"json": true,
	"md":   true,
	"raw":  true,
}

func validateFormats(formats []string) error {
	var unknown []string
	for _, format := range formats {
		if !supportedFormats[format] {
			unknown = append(unknown, format)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unsupported formats requested: %v", unknown)
	}
	return nil
}

type trackPayload struct {
	Slug     string         `json:"slug"`
	Path     string         `json:"path,omitempty"`
	Metadata map[string]any `json:"metadata"`
	Code     string         `json:"code"`
	Warnings []string       `json:"warnings"`
}

func writeOutputs(
	loaded []*tracks.Track,
	outDir string,
	formats []string,
	logger logs.Logger,
) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	wanted := make(map[string]bool)
	for _, format := range formats {
		wanted[format] = true
	}

	if wanted["json"] {
		if err := writeJSON(loaded, outDir); err != nil {
			return err
		}
	}
	if wanted["md"] {
		if err := writeMarkdown(loaded, outDir); err != nil {
			return err
		}
	}
	if wanted["raw"] {
		if err := writeRaw(loaded, outDir); err != nil {
			return err
		}
	}

	logger.Info("artifacts written",
		"out_dir", outDir,
		"formats", formats,
	)
	return nil
}

func writeJSON(loaded []*tracks.Track, outDir string) error {
	aggregate := struct {
		GeneratedAt string         `json:"generated_at"`
		Tracks      []trackPayload `json:"tracks"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, track := range loaded {
		aggregate.Tracks = append(aggregate.Tracks, trackPayload{
			Slug:     track.Slug(),
			Path:     track.Path,
			Metadata: track.Metadata,
			Code:     track.Code,
			Warnings: track.Warnings,
		})
	}
	content, err := json.MarshalIndent(aggregate, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "tracks.json"), content, 0644); err != nil {
		return err
	}

	for _, track := range loaded {
		if track.Slug() == "" {
			continue
		}
		content, err := json.MarshalIndent(trackPayload{
			Slug:     track.Slug(),
			Metadata: track.Metadata,
			Code:     track.Code,
			Warnings: track.Warnings,
		}, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(
			filepath.Join(outDir, track.Slug()+".json"),
			content,
			0644,
		); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdown(loaded []*tracks.Track, outDir string) error {
	for _, track := range loaded {
		if track.Slug() == "" {
			continue
		}

		metadataDisplay, err := json.MarshalIndent(track.Metadata, "", "  ")
		if err != nil {
			return err
		}

		var warningsDisplay string
		if len(track.Warnings) == 0 {
			warningsDisplay = "- none"
		} else {
			var lines []string
			for _, warning := range track.Warnings {
				lines = append(lines, "- "+warning)
			}
			warningsDisplay = strings.Join(lines, "\n")
		}

		markdown := fmt.Sprintf(`# %s

**Slug:** `+"`%s`"+`
**Source:** `+"`%s`"+`
**Warnings:**
%s

## Metadata

`+"```json\n%s\n```"+`

## Pattern

`+"```strudel\n%s\n```"+`
`,
			track.Title(),
			track.Slug(),
			track.Path,
			warningsDisplay,
			metadataDisplay,
			strings.TrimRight(track.Code, "\n"),
		)

		if err := os.WriteFile(
			filepath.Join(outDir, track.Slug()+".md"),
			[]byte(markdown),
			0644,
		); err != nil {
			return err
		}
	}
	return nil
}

func writeRaw(loaded []*tracks.Track, outDir string) error {
	for _, track := range loaded {
		if track.Slug() == "" {
			continue
		}
		if err := os.WriteFile(
			filepath.Join(outDir, track.Slug()+".strudel"),
			[]byte(track.Raw),
			0644,
		); err != nil {
			return err
		}
	}
	return nil
}
