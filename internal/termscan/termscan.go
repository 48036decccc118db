// Package termscan extracts session facts from raw terminal output. Codex
// prints resume hints as ordinary lines in its stdout, interleaved with
// color and cursor control sequences, so the scanner strips CSI escapes
// first and then matches a small vocabulary of recognized phrases.
package termscan

import (
	"regexp"
	"strings"
)

// csiRegexp matches ANSI CSI escape sequences: ESC '[' followed by
// parameter bytes and terminated by a single letter.
var csiRegexp = regexp.MustCompile(`\x1b\[[0-9;?!<=>]*[ -/]*[A-Za-z]`)

// StripANSI removes CSI escape sequences from line.
func StripANSI(line string) string {
	return csiRegexp.ReplaceAllString(line, "")
}

// resumeMarker is the command that replays a codex session. Resume phrases
// are label + marker; the command substring starts at the marker.
const resumeMarker = "codex resume"

// sessionIDLabel introduces a bare session id line.
const sessionIDLabel = "session id:"

// Scanner recognizes resume lines in terminal output. The phrase and flag
// vocabularies are fixed at construction so tests can inject alternates.
type Scanner struct {
	// phrases are the lowercased labels that introduce a resume command,
	// each ending in resumeMarker.
	phrases []string
	// valueFlags are the codex resume flags that consume a following
	// value token.
	valueFlags map[string]bool
}

// NewScanner returns a Scanner with the default vocabulary: the phrases
// "run: codex resume" and "resume with: codex resume", and the value-taking
// flags codex itself accepts.
func NewScanner() *Scanner {
	return &Scanner{
		phrases: []string{
			"run: " + resumeMarker,
			"resume with: " + resumeMarker,
		},
		valueFlags: map[string]bool{
			"--profile": true,
			"--model":   true,
			"--config":  true,
			"--cd":      true,
			"-m":        true,
			"-c":        true,
		},
	}
}

// NewScannerWithVocabulary returns a Scanner with caller-supplied phrases
// (lowercase, each ending in "codex resume") and value-taking flags.
func NewScannerWithVocabulary(phrases []string, valueFlags map[string]bool) *Scanner {
	return &Scanner{phrases: phrases, valueFlags: valueFlags}
}

// ParseLine extracts a session id and resume command from one line of
// terminal output. CSI sequences are stripped before matching. Recognized
// forms, tried in order:
//
//   - a resume phrase ("run: codex resume ...", "Resume with: codex
//     resume ..."; label case varies): the resume command is the
//     "codex resume ..." substring to end of line, and the session id is
//     recovered from its tokens;
//   - "Session ID: <value>" (label case-insensitive): the session id alone.
//
// Lines matching neither form yield ("", ""). Malformed input is never an
// error; it is simply not a resume line.
func (s *Scanner) ParseLine(line string) (sessionID, resumeCmd string) {
	stripped := StripANSI(line)
	lower := strings.ToLower(stripped)

	for _, phrase := range s.phrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		start := idx + len(phrase) - len(resumeMarker)
		resumeCmd = strings.TrimSpace(stripped[start:])
		return s.SessionIDFromCommand(resumeCmd), resumeCmd
	}

	trimmed := strings.TrimSpace(stripped)
	if len(trimmed) >= len(sessionIDLabel) && strings.EqualFold(trimmed[:len(sessionIDLabel)], sessionIDLabel) {
		return strings.TrimSpace(trimmed[len(sessionIDLabel):]), ""
	}

	return "", ""
}

// SessionIDFromCommand extracts the trailing session id token from a
// "codex resume ..." command. Leading "codex" and "resume" tokens are
// dropped, as are recognized flags together with their values, so option
// flags interleaved before the session id are tolerated. An empty string
// means the command carries no session id.
func (s *Scanner) SessionIDFromCommand(command string) string {
	tokens := strings.Fields(command)

	// Drop the leading "codex resume" words.
	for len(tokens) > 0 && (tokens[0] == "codex" || tokens[0] == "resume") {
		tokens = tokens[1:]
	}

	last := ""
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if strings.HasPrefix(tok, "-") {
			if s.valueFlags[tok] && !strings.Contains(tok, "=") {
				i++ // skip the flag's value
			}
			continue
		}
		last = tok
	}
	return last
}
