package tracks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"
)

// Load reads and validates one track source. Validation problems never fail
// the load; they accumulate in Errors and Warnings.
func Load(path string) (*Track, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	raw := string(content)

	track := &Track{
		Path: path,
		Raw:  raw,
	}

	metaText, body, hasFrontMatter := splitFrontMatter(raw)
	track.Code = body

	if !hasFrontMatter {
		track.Errors = append(track.Errors, "YAML front matter block is required at top of file.")
	} else {
		var metadata map[string]any
		if err := yaml.Unmarshal([]byte(metaText), &metadata); err != nil {
			track.Errors = append(track.Errors, fmt.Sprintf("Failed to parse YAML front matter: %v", err))
		} else {
			track.Metadata = metadata
			errs, warns := validateMetadata(metadata)
			track.Errors = append(track.Errors, errs...)
			track.Warnings = append(track.Warnings, warns...)
		}
	}

	// Always check the body, even with broken metadata, to surface more hints.
	errs, warns := validatePattern(track.Code)
	track.Errors = append(track.Errors, errs...)
	track.Warnings = append(track.Warnings, warns...)

	return track, nil
}

// ListDir returns the sorted .strudel sources under dir.
func ListDir(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.strudel"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir loads every track under dir in path order.
func LoadDir(dir string) ([]*Track, error) {
	paths, err := ListDir(dir)
	if err != nil {
		return nil, err
	}
	var ret []*Track
	for _, path := range paths {
		track, err := Load(path)
		if err != nil {
			return nil, err
		}
		ret = append(ret, track)
	}
	return ret, nil
}
