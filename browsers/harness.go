package browsers

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed lint.html
var LintHarness string

//go:embed render.html
var RenderHarness string

const bundlePlaceholder = "__STRUDEL_BUNDLE__"

// resolveBundle fills the harness bundle slot. A bundle value naming an
// existing local file (e.g. one written by fetch -bundle) is turned into a
// file:// URL so rendering works offline.
func resolveBundle(harness string, bundle string) string {
	if _, err := os.Stat(bundle); err == nil {
		if abs, err := filepath.Abs(bundle); err == nil {
			bundle = "file://" + abs
		}
	}
	return strings.ReplaceAll(harness, bundlePlaceholder, bundle)
}
