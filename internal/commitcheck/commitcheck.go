// Package commitcheck validates commit message headers against the
// conventional `<type>(<scope>): <subject>` grammar. The loom commit-msg
// hook installed by `loom init` calls ValidateFile; the same vocabulary is
// shared by every CLI-level caller.
package commitcheck

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultTypes is the commit type vocabulary.
var DefaultTypes = []string{
	"feat", "fix", "chore", "docs", "refactor", "test",
	"perf", "style", "build", "ci", "revert",
}

// headerRegexp is the structural grammar: a type word, a non-empty
// parenthesized scope, a colon-space, and a non-empty subject.
var headerRegexp = regexp.MustCompile(`^([A-Za-z]+)\(([^)]+)\): (.+)$`)

// Validator checks commit headers against a fixed type vocabulary. The
// vocabulary is bound at construction so tests can inject alternates.
type Validator struct {
	types map[string]bool
	list  []string
}

// New returns a Validator using the given commit types, or DefaultTypes
// when none are supplied.
func New(types ...string) *Validator {
	if len(types) == 0 {
		types = DefaultTypes
	}
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return &Validator{types: set, list: types}
}

// Validate checks the first line of a commit message. It returns nil when
// the header is valid, an error describing the required shape when the
// header does not match the structural grammar, and an error naming the
// unsupported type when the shape is right but the type is outside the
// vocabulary.
func (v *Validator) Validate(header string) error {
	m := headerRegexp.FindStringSubmatch(header)
	if m == nil {
		return fmt.Errorf("commit header %q must match <type>(<scope>): <subject>", header)
	}
	if !v.types[m[1]] {
		return fmt.Errorf("unsupported commit type %q (supported: %s)", m[1], strings.Join(v.list, ", "))
	}
	return nil
}

// ValidateFile reads a commit message file (as git passes to a commit-msg
// hook), skips leading blank lines and "#" comment lines, and validates
// the first remaining line as the header.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read commit message: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return v.Validate(line)
	}
	return fmt.Errorf("commit message has no header line")
}
