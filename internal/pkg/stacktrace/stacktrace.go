package stacktrace

import "strings"

const internalDir = "/internal/"

// InternalPaths returns the file:line frames of a raw stack trace that belong to
// this module's internal packages, trimmed to start at "internal/".
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, internalDir) {
			continue
		}

		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}

		frame, _, _ := strings.Cut(line, " ")
		if _, after, found := strings.Cut(frame, internalDir); found {
			paths = append(paths, "internal/"+after)
		}
	}

	return paths
}
