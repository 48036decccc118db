package changeset

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		key    string
		want   string
		wantOK bool
	}{
		{
			"present",
			"Some prose.\nchangeset.work_branch: loom/fix-sync-at-7f2k\nMore prose.",
			KeyWorkBranch,
			"loom/fix-sync-at-7f2k",
			true,
		},
		{
			"absent",
			"No fields here at all.",
			KeyWorkBranch,
			"",
			false,
		},
		{
			"blank value",
			"pr_url:   ",
			KeyPRURL,
			"",
			false,
		},
		{
			"literal null",
			"changeset.work_branch: null",
			KeyWorkBranch,
			"",
			false,
		},
		{
			"null is case insensitive",
			"changeset.root_branch: NULL",
			KeyRootBranch,
			"",
			false,
		},
		{
			"indented line",
			"  pr_url: https://github.com/loomhq/loom/pull/12",
			KeyPRURL,
			"https://github.com/loomhq/loom/pull/12",
			true,
		},
		{
			"first match wins",
			"pr_state: approved\npr_state: rejected",
			KeyReviewState,
			"approved",
			true,
		},
		{
			"value keeps inner spacing",
			"changeset.work_branch:  loom/two-words ",
			KeyWorkBranch,
			"loom/two-words",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text, tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Extract() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractAll(t *testing.T) {
	text := `Implement the sync command.

changeset.work_branch: loom/sync-at-9x1c
changeset.root_branch: main
pr_url: https://github.com/loomhq/loom/pull/44
pr_state: In-Review
`
	f := ExtractAll(text)
	if f.WorkBranch != "loom/sync-at-9x1c" {
		t.Errorf("WorkBranch = %q", f.WorkBranch)
	}
	if f.RootBranch != "main" {
		t.Errorf("RootBranch = %q", f.RootBranch)
	}
	if f.PRURL != "https://github.com/loomhq/loom/pull/44" {
		t.Errorf("PRURL = %q", f.PRURL)
	}
	if f.ReviewState != "in-review" {
		t.Errorf("ReviewState = %q, want lowercased", f.ReviewState)
	}
}

func TestExtractAllEmptyText(t *testing.T) {
	f := ExtractAll("")
	if f != (Fields{}) {
		t.Errorf("ExtractAll(\"\") = %+v, want zero value", f)
	}
}
