// Package policy combines role-scoped policy documents into one
// marker-delimited file and splits them back. Planner and worker agents
// usually share a single policy; when the two texts differ they are stored
// in one document under HTML-comment markers so the file stays readable
// and diffs stay small.
package policy

import (
	"strings"
)

// Role names for the two agent roles.
const (
	RolePlanner = "planner"
	RoleWorker  = "worker"
)

// Section markers, matched exactly and case-sensitively on their own line.
const (
	MarkerPlanner = "<!-- planner -->"
	MarkerWorker  = "<!-- worker -->"
)

// Combine merges the planner and worker policy texts. When the two are
// equal the shared text is returned unchanged with split=false: a single
// policy serves both roles and emitting markers would only create spurious
// diffs. Otherwise the texts are emitted under their role markers with
// split=true.
func Combine(planner, worker string) (combined string, split bool) {
	if planner == worker {
		return planner, false
	}

	var b strings.Builder
	b.WriteString(MarkerPlanner)
	b.WriteByte('\n')
	b.WriteString(strings.TrimRight(planner, "\n"))
	b.WriteString("\n\n")
	b.WriteString(MarkerWorker)
	b.WriteByte('\n')
	b.WriteString(strings.TrimRight(worker, "\n"))
	b.WriteString("\n\n")
	return b.String(), true
}

// Split recovers the role sections from a combined document. It reports
// false when no marker is present, meaning the document is a plain shared
// policy rather than a combined one. Each section is the text strictly
// between its marker and the next marker (or end of document), with leading
// and trailing blank lines stripped.
func Split(text string) (map[string]string, bool) {
	roles := map[string]string{
		MarkerPlanner: RolePlanner,
		MarkerWorker:  RoleWorker,
	}

	sections := make(map[string]string)
	lines := strings.Split(text, "\n")
	current := ""
	var body []string

	flush := func() {
		if current == "" {
			return
		}
		sections[current] = trimBlankLines(body)
	}

	for _, line := range lines {
		if role, ok := roles[line]; ok {
			flush()
			current = role
			body = nil
			continue
		}
		if current != "" {
			body = append(body, line)
		}
	}
	flush()

	if len(sections) == 0 {
		return nil, false
	}
	return sections, true
}

// trimBlankLines joins lines dropping leading and trailing blank lines.
func trimBlankLines(lines []string) string {
	start := 0
	end := len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
