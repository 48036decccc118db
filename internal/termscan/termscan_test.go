package termscan

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no escapes", "plain text", "plain text"},
		{"color codes", "\x1b[32mgreen\x1b[0m", "green"},
		{"cursor movement", "\x1b[2Ktext\x1b[1A", "text"},
		{"multi parameter", "\x1b[1;31mbold red\x1b[0m", "bold red"},
		{"private mode", "\x1b[?25htext", "text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.in); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	s := NewScanner()

	tests := []struct {
		name    string
		line    string
		wantID  string
		wantCmd string
	}{
		{
			"run phrase",
			"To resume this session, run: codex resume sess-123",
			"sess-123",
			"codex resume sess-123",
		},
		{
			"resume with phrase",
			"Resume with: codex resume sess-321",
			"sess-321",
			"codex resume sess-321",
		},
		{
			"label case varies",
			"RUN: codex resume sess-567",
			"sess-567",
			"codex resume sess-567",
		},
		{
			"session id line",
			"Session ID: sess-456",
			"sess-456",
			"",
		},
		{
			"session id label case insensitive",
			"session id:  sess-777 ",
			"sess-777",
			"",
		},
		{
			"ansi wrapped resume",
			"\x1b[33mrun: codex resume sess-999\x1b[0m",
			"sess-999",
			"codex resume sess-999",
		},
		{
			"flags between resume and id",
			"run: codex resume --profile fast sess-789",
			"sess-789",
			"codex resume --profile fast sess-789",
		},
		{
			"no match",
			"compiling module...",
			"",
			"",
		},
		{
			"resume marker without label",
			"codex resume sess-000",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, cmd := s.ParseLine(tt.line)
			if id != tt.wantID || cmd != tt.wantCmd {
				t.Errorf("ParseLine(%q) = (%q, %q), want (%q, %q)",
					tt.line, id, cmd, tt.wantID, tt.wantCmd)
			}
		})
	}
}

func TestSessionIDFromCommand(t *testing.T) {
	s := NewScanner()

	tests := []struct {
		command string
		want    string
	}{
		{"codex resume sess-123", "sess-123"},
		{"codex resume --profile fast sess-789", "sess-789"},
		{"codex resume --model gpt-5 --profile fast sess-1", "sess-1"},
		{"codex resume --profile=fast sess-2", "sess-2"},
		{"codex resume --yolo sess-3", "sess-3"},
		{"codex resume", ""},
		{"codex resume --profile fast", ""},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := s.SessionIDFromCommand(tt.command); got != tt.want {
				t.Errorf("SessionIDFromCommand(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestScannerWithInjectedVocabulary(t *testing.T) {
	s := NewScannerWithVocabulary(
		[]string{"reattach: codex resume"},
		map[string]bool{"--workspace": true},
	)

	id, cmd := s.ParseLine("reattach: codex resume --workspace w1 sess-42")
	if id != "sess-42" || cmd != "codex resume --workspace w1 sess-42" {
		t.Errorf("ParseLine = (%q, %q)", id, cmd)
	}

	// The default phrases are not part of this scanner's vocabulary.
	if id, _ := s.ParseLine("run: codex resume sess-1"); id != "" {
		t.Errorf("default phrase matched, id = %q", id)
	}
}
