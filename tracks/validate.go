package tracks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	gainPattern = regexp.MustCompile(`\.gain\(\s*([-+]?[0-9]*\.?[0-9]+)\s*\)`)
)

func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

func validateMetadata(metadata map[string]any) (errors []string, warnings []string) {
	if metadata == nil {
		errors = append(errors, "Metadata block is missing or malformed.")
		return
	}

	slug := metadata["slug"]
	if slug == nil || slug == "" {
		errors = append(errors, "`slug` is required.")
	} else if str, ok := slug.(string); !ok || !slugPattern.MatchString(str) {
		errors = append(errors, "`slug` must be kebab-case (lowercase alphanumerics separated by dashes).")
	}

	if title, ok := metadata["title"].(string); !ok || strings.TrimSpace(title) == "" {
		errors = append(errors, "`title` must be a non-empty string.")
	}

	if tempo, ok := metadata["tempo"]; !ok || tempo == nil {
		errors = append(errors, "`tempo` (cycles per minute) is required.")
	} else if value, ok := toFloat(tempo); !ok {
		errors = append(errors, "`tempo` must be numeric.")
	} else if value <= 0 {
		errors = append(errors, "`tempo` must be a positive number.")
	} else if value != float64(int64(value)) {
		warnings = append(warnings, "`tempo` should normally be an integer.")
	}

	if mood, ok := metadata["mood"].(string); !ok || strings.TrimSpace(mood) == "" {
		warnings = append(warnings, "`mood` is recommended to help downstream curation.")
	}

	if tags, ok := metadata["tags"].([]any); !ok || len(tags) == 0 {
		warnings = append(warnings, "`tags` array is recommended for filtering (minimum 2).")
	} else {
		if len(tags) < 2 {
			warnings = append(warnings, "Provide at least 2 tags for better discovery.")
		}
		for i, tag := range tags {
			str, ok := tag.(string)
			if !ok || strings.TrimSpace(str) == "" {
				errors = append(errors, fmt.Sprintf("Tag #%d must be a non-empty string.", i+1))
			} else if str != strings.ToLower(str) {
				warnings = append(warnings, fmt.Sprintf("Tag %q should be lowercase.", str))
			}
		}
	}

	if summary, ok := metadata["summary"].(string); !ok || strings.TrimSpace(summary) == "" {
		warnings = append(warnings, "`summary` is recommended to describe the arrangement.")
	}

	if resources, ok := metadata["resources"]; ok && resources != nil {
		if list, ok := resources.([]any); !ok {
			errors = append(errors, "`resources` must be a list of strings if provided.")
		} else {
			for i, resource := range list {
				str, ok := resource.(string)
				if !ok || strings.TrimSpace(str) == "" {
					warnings = append(warnings, fmt.Sprintf("Resource #%d should be a non-empty string.", i+1))
				}
			}
		}
	}

	return
}

func validatePattern(code string) (errors []string, warnings []string) {
	if strings.TrimSpace(code) == "" {
		errors = append(errors, "Pattern body is empty.")
		return
	}

	stripped := strings.ReplaceAll(code, " ", "")
	if !strings.Contains(stripped, "setcpm(") && !strings.Contains(stripped, "setcps(") {
		warnings = append(warnings, "Set tempo explicitly with `setcpm(...)` once near the top.")
	}

	for _, match := range gainPattern.FindAllStringSubmatch(code, -1) {
		numeric, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		if numeric > 1 {
			warnings = append(warnings, fmt.Sprintf(
				"Gain literal %s detected; consider keeping it <= 1 to avoid clipping.",
				strconv.FormatFloat(numeric, 'g', -1, 64),
			))
		}
	}

	return
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		// YAML-quoted tempos ("120") still count as numeric
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
