package tracks

import (
	"strings"
	"testing"
)

func minimalMetadata() map[string]any {
	return map[string]any{
		"slug":    "test-track",
		"title":   "Test Track",
		"tempo":   120,
		"mood":    "",
		"tags":    []any{},
		"summary": "",
	}
}

func TestValidateMetadataMinimalOK(t *testing.T) {
	errs, warns := validateMetadata(minimalMetadata())
	if len(errs) != 0 {
		t.Fatalf("got %v", errs)
	}
	// mood/tags/summary are optional but recommended
	for _, want := range []string{"mood", "tags", "summary"} {
		found := false
		for _, warn := range warns {
			if strings.Contains(warn, want) {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing %s warning in %v", want, warns)
		}
	}
}

func TestValidateMetadataErrors(t *testing.T) {
	for _, c := range []struct {
		name     string
		mutate   func(map[string]any)
		expected string
	}{
		{
			"missing slug",
			func(m map[string]any) { delete(m, "slug") },
			"`slug` is required.",
		},
		{
			"bad slug",
			func(m map[string]any) { m["slug"] = "Not Kebab" },
			"`slug` must be kebab-case",
		},
		{
			"empty title",
			func(m map[string]any) { m["title"] = "   " },
			"`title` must be a non-empty string.",
		},
		{
			"missing tempo",
			func(m map[string]any) { delete(m, "tempo") },
			"`tempo` (cycles per minute) is required.",
		},
		{
			"non-numeric tempo",
			func(m map[string]any) { m["tempo"] = "fast" },
			"`tempo` must be numeric.",
		},
		{
			"non-positive tempo",
			func(m map[string]any) { m["tempo"] = 0 },
			"`tempo` must be a positive number.",
		},
		{
			"blank tag",
			func(m map[string]any) { m["tags"] = []any{"beats", " "} },
			"Tag #2 must be a non-empty string.",
		},
		{
			"non-list resources",
			func(m map[string]any) { m["resources"] = "chords" },
			"`resources` must be a list of strings if provided.",
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			metadata := minimalMetadata()
			c.mutate(metadata)
			errs, _ := validateMetadata(metadata)
			for _, err := range errs {
				if strings.Contains(err, c.expected) {
					return
				}
			}
			t.Fatalf("missing %q in %v", c.expected, errs)
		})
	}
}

func TestValidateMetadataWarnings(t *testing.T) {
	for _, c := range []struct {
		name     string
		mutate   func(map[string]any)
		expected string
	}{
		{
			"fractional tempo",
			func(m map[string]any) { m["tempo"] = 90.5 },
			"`tempo` should normally be an integer.",
		},
		{
			"single tag",
			func(m map[string]any) { m["tags"] = []any{"beats"} },
			"Provide at least 2 tags for better discovery.",
		},
		{
			"uppercase tag",
			func(m map[string]any) { m["tags"] = []any{"beats", "Lofi"} },
			`Tag "Lofi" should be lowercase.`,
		},
		{
			"blank resource",
			func(m map[string]any) { m["resources"] = []any{""} },
			"Resource #1 should be a non-empty string.",
		},
		{
			"quoted fractional tempo",
			func(m map[string]any) { m["tempo"] = "90.5" },
			"`tempo` should normally be an integer.",
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			metadata := minimalMetadata()
			c.mutate(metadata)
			_, warns := validateMetadata(metadata)
			for _, warn := range warns {
				if strings.Contains(warn, c.expected) {
					return
				}
			}
			t.Fatalf("missing %q in %v", c.expected, warns)
		})
	}
}

func TestValidateMetadataQuotedTempo(t *testing.T) {
	metadata := minimalMetadata()
	metadata["tempo"] = "120"
	errs, _ := validateMetadata(metadata)
	for _, err := range errs {
		if strings.Contains(err, "tempo") {
			t.Fatalf("quoted numeric tempo should be accepted: %v", errs)
		}
	}

	metadata["tempo"] = "12x"
	errs, _ = validateMetadata(metadata)
	found := false
	for _, err := range errs {
		if strings.Contains(err, "`tempo` must be numeric.") {
			found = true
		}
	}
	if !found {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatePatternRequiresBody(t *testing.T) {
	errs, _ := validatePattern("")
	if len(errs) != 1 || errs[0] != "Pattern body is empty." {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatePatternTempoHint(t *testing.T) {
	_, warns := validatePattern(`sound("bd sd")`)
	if len(warns) != 1 || !strings.Contains(warns[0], "setcpm") {
		t.Fatalf("got %v", warns)
	}

	_, warns = validatePattern("setcpm (120)\nsound(\"bd\")")
	if len(warns) != 0 {
		t.Fatalf("got %v", warns)
	}
}

func TestValidatePatternWarnsOnGainOverOne(t *testing.T) {
	errs, warns := validatePattern(`setcpm(90)
sound("bd").gain(1.2)`)
	if len(errs) != 0 {
		t.Fatalf("got %v", errs)
	}
	found := false
	for _, warn := range warns {
		if strings.Contains(warn, "Gain literal 1.2") {
			found = true
		}
	}
	if !found {
		t.Fatalf("got %v", warns)
	}

	// string gain patterns are out of scope for the literal check
	_, warns = validatePattern(`setcpm(90)
sound("hh*16").gain("[0.4 1.5]*4")`)
	if len(warns) != 0 {
		t.Fatalf("got %v", warns)
	}
}
