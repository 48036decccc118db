// Package changeset mines changeset facts out of a bead's free-text
// description. The description field is owned by the issue tracker and
// edited by humans and agents alike, so extraction tolerates arbitrary
// surrounding prose: each fact is a single `key: value` line anywhere in
// the text.
package changeset

import (
	"bufio"
	"strings"
)

// Field keys as they appear in bead descriptions.
const (
	KeyWorkBranch  = "changeset.work_branch"
	KeyRootBranch  = "changeset.root_branch"
	KeyPRURL       = "pr_url"
	KeyReviewState = "pr_state"
)

// Fields holds the facts extracted from one description. An empty string
// means the fact is absent: blank values and the literal "null" normalize
// to absent, so the empty string loses no information.
type Fields struct {
	WorkBranch  string
	RootBranch  string
	PRURL       string
	ReviewState string
}

// Extract scans text line by line for the first line whose trimmed content
// starts with "<key>:" and returns the trimmed remainder after the colon.
// It reports false when the key is absent, its value is blank, or its value
// is the literal "null" (case-insensitive). Later occurrences of the key
// are ignored: callers append fact lines rather than rewriting them, so the
// first line is the authoritative one.
func Extract(text, key string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	prefix := key + ":"
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value := strings.TrimSpace(line[len(prefix):])
		if value == "" || strings.EqualFold(value, "null") {
			return "", false
		}
		return value, true
	}
	return "", false
}

// ExtractAll runs Extract for every changeset field. ReviewState is
// lowercased so that tracker-side variants like "In-Review" compare equal;
// branch names and URLs preserve case.
func ExtractAll(text string) Fields {
	var f Fields
	f.WorkBranch, _ = Extract(text, KeyWorkBranch)
	f.RootBranch, _ = Extract(text, KeyRootBranch)
	f.PRURL, _ = Extract(text, KeyPRURL)
	if state, ok := Extract(text, KeyReviewState); ok {
		f.ReviewState = strings.ToLower(state)
	}
	return f
}
