// Package branchname generates git branch names from human-readable titles.
// Generated names are lowercase, hyphen-separated, length-bounded, and when
// a bead id is supplied the name always ends with "-<bead id>" so the branch
// can be traced back to its bead no matter how aggressively the title was
// truncated.
package branchname

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxLen is the default length bound for generated branch names.
const DefaultMaxLen = 60

// ErrInvalidConfiguration reports that the prefix and the mandatory bead
// suffix cannot both fit within the length bound. This is a configuration
// error, not a data error: titles of any length are handled by truncation.
var ErrInvalidConfiguration = errors.New("prefix and bead suffix exceed the branch name length bound")

// nonSlugRegexp matches every run of characters outside the slug charset.
var nonSlugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases title, collapses each run of characters outside
// [a-z0-9] into a single hyphen, and strips leading and trailing hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugRegexp.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Suggest builds a branch name from title, bounded to maxLen characters.
// The prefix is caller-supplied and passed through unmodified (it may
// contain "/"). When beadID is non-empty the literal suffix "-<beadID>" is
// appended verbatim and is never truncated; the title slug alone absorbs
// any length pressure, cut at a hyphen boundary where one exists within
// budget and mid-word otherwise.
func Suggest(title, prefix, beadID string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	suffix := ""
	if beadID != "" {
		suffix = "-" + beadID
	}

	budget := maxLen - len(prefix) - len(suffix)
	if budget < 0 {
		return "", fmt.Errorf("%w: prefix %q + suffix %q > %d", ErrInvalidConfiguration, prefix, suffix, maxLen)
	}

	slug := truncateSlug(Slugify(title), budget)
	return prefix + slug + suffix, nil
}

// truncateSlug cuts slug to at most budget characters, preferring the last
// hyphen boundary at or before the budget so words are never split unless
// no boundary exists within budget.
func truncateSlug(slug string, budget int) string {
	if len(slug) <= budget {
		return slug
	}
	if slug[budget] == '-' {
		// The budget lands exactly on a word boundary.
		return slug[:budget]
	}
	cut := slug[:budget]
	if i := strings.LastIndex(cut, "-"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, "-")
}
