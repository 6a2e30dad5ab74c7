// Package stacktrace reduces raw panic stacks to the frames that belong to
// this repository, keeping panic logs readable.
package stacktrace

import "strings"

// InternalPaths extracts "internal/..." file:line frames from a raw stack.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, 8)

	for i := 0; i+1 < len(lines); i++ {
		line := strings.TrimSpace(lines[i+1])
		if !strings.Contains(line, "/internal/") || !strings.Contains(line, ".go:") {
			continue
		}

		end := len(line)
		if idx := strings.Index(line, ".go:"); idx != -1 {
			if sp := strings.Index(line[idx:], " "); sp != -1 {
				end = idx + sp
			}
		}

		frame := line[:end]
		if at := strings.Index(frame, "/internal/"); at != -1 {
			paths = append(paths, frame[at+1:])
		}
	}

	return paths
}
