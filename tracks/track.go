package tracks

// Track is one .strudel source: YAML front matter describing the track,
// followed by the Strudel pattern body.
type Track struct {
	Path      string
	Raw       string
	Metadata  map[string]any
	Code      string
	Errors    []string
	Warnings  []string
	LintError string
}

func (t *Track) Slug() string {
	if t.Metadata == nil {
		return ""
	}
	slug, _ := t.Metadata["slug"].(string)
	return slug
}

func (t *Track) Title() string {
	if t.Metadata == nil {
		return ""
	}
	title, _ := t.Metadata["title"].(string)
	if title == "" {
		return t.Slug()
	}
	return title
}
