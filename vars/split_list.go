package vars

import "strings"

func SplitList(str string) []string {
	var ret []string
	for part := range strings.SplitSeq(str, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		ret = append(ret, part)
	}
	return ret
}
