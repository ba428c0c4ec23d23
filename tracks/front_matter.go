package tracks

import "strings"

// splitFrontMatter cuts the leading YAML block delimited by --- lines.
// Returns ok == false when the file does not start with a front matter block.
func splitFrontMatter(raw string) (meta string, body string, ok bool) {
	if !strings.HasPrefix(raw, "---") {
		return "", raw, false
	}

	delimiter := "\n---"
	end := strings.Index(raw[3:], delimiter)
	if end == -1 {
		delimiter = "\r\n---"
		end = strings.Index(raw[3:], delimiter)
		if end == -1 {
			return "", raw, false
		}
	}
	end += 3

	meta = strings.TrimSpace(raw[3:end])
	body = raw[end+len(delimiter):]
	if after, found := strings.CutPrefix(body, "\r\n"); found {
		body = after
	} else if after, found := strings.CutPrefix(body, "\n"); found {
		body = after
	}

	return meta, body, true
}
