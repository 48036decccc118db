package commitcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		header  string
		wantErr string // substring, "" means valid
	}{
		{"valid feat", "feat(worker): bootstrap hooks", ""},
		{"valid fix", "fix(sync): handle blank pr_url", ""},
		{"valid with slash scope", "docs(cmd/loom): expand start help", ""},
		{"missing scope", "feat: bootstrap hooks", "<type>(<scope>): <subject>"},
		{"missing colon", "feat(worker) bootstrap hooks", "<type>(<scope>): <subject>"},
		{"empty scope", "feat(): bootstrap hooks", "<type>(<scope>): <subject>"},
		{"empty subject", "feat(worker): ", "<type>(<scope>): <subject>"},
		{"no parens at all", "update stuff", "<type>(<scope>): <subject>"},
		{"unknown type", "unknown(worker): bootstrap hooks", "unsupported commit type"},
		{"case sensitive type", "Feat(worker): bootstrap hooks", "unsupported commit type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.header)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate(%q) = %v, want nil", tt.header, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate(%q) = %v, want error containing %q", tt.header, err, tt.wantErr)
			}
		})
	}
}

func TestValidateInjectedVocabulary(t *testing.T) {
	v := New("wip", "ship")

	if err := v.Validate("wip(core): half done"); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
	err := v.Validate("feat(core): done")
	if err == nil || !strings.Contains(err.Error(), "unsupported commit type") {
		t.Errorf("Validate = %v, want unsupported type error", err)
	}
	if !strings.Contains(err.Error(), "wip, ship") {
		t.Errorf("error %v does not name the injected vocabulary", err)
	}
}

func TestValidateFile(t *testing.T) {
	v := New()

	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("valid header", func(t *testing.T) {
		path := write(t, "feat(worker): bootstrap hooks\n\nLonger body.\n")
		if err := v.ValidateFile(path); err != nil {
			t.Errorf("ValidateFile = %v, want nil", err)
		}
	})

	t.Run("skips comments and blanks", func(t *testing.T) {
		path := write(t, "\n# Please enter the commit message\n\nfix(state): close db on error\n")
		if err := v.ValidateFile(path); err != nil {
			t.Errorf("ValidateFile = %v, want nil", err)
		}
	})

	t.Run("invalid header", func(t *testing.T) {
		path := write(t, "just a message\n")
		err := v.ValidateFile(path)
		if err == nil || !strings.Contains(err.Error(), "<type>(<scope>): <subject>") {
			t.Errorf("ValidateFile = %v, want shape error", err)
		}
	})

	t.Run("only comments", func(t *testing.T) {
		path := write(t, "# nothing here\n\n")
		if err := v.ValidateFile(path); err == nil {
			t.Error("ValidateFile = nil, want error for empty message")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent")
		if err := v.ValidateFile(path); err == nil {
			t.Error("ValidateFile = nil, want read error")
		}
	})
}
