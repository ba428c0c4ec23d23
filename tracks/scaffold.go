package tracks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const scaffoldTemplate = `---
slug: %s
title: "%s"
tempo: %d
mood: ""
tags: []
summary: |
  Describe the arrangement, instrumentation, and intended mood.
resources: []
---
setcpm(%d)
// Define shared resources (e.g., chords) here
stack(
  sound("bd hh sd hh").bank("RolandTR707").gain(0.8),
  sound("hh*16").gain("[0.4 1]*4"),
  n("<0 [2 4] 5>").scale("C:minor").sound("sawtooth")
)
`

// Scaffold writes a new track stub and returns its path.
func Scaffold(slug string, title string, tempo int, dir string, force bool) (string, error) {
	if !slugPattern.MatchString(slug) {
		return "", fmt.Errorf("slug must be kebab-case (lowercase alphanumerics separated by dashes)")
	}

	if title == "" {
		title = titleCase(slug)
	}
	if tempo <= 0 {
		tempo = 90
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	target := filepath.Join(dir, slug+".strudel")

	if !force {
		if _, err := os.Stat(target); err == nil {
			return "", fmt.Errorf("track %s already exists; use -force to overwrite", target)
		}
	}

	content := fmt.Sprintf(scaffoldTemplate, slug, title, tempo, tempo)
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return "", err
	}
	return target, nil
}

func titleCase(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
