package state

import (
	"path/filepath"
	"testing"

	"github.com/loomhq/loom/internal/changeset"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestSession(id, bead string) *Session {
	return &Session{
		ID:     id,
		BeadID: bead,
		Title:  "Fix the sync command",
		Branch: "loom/fix-the-sync-command-" + bead,
		Status: SessionActive,
	}
}

func TestCreateAndGetSession(t *testing.T) {
	db := openTestDB(t)

	want := newTestSession("s-1", "at-7f2k")
	if err := db.CreateSession(want); err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	got, err := db.GetSession("s-1")
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetSession() = nil, want session")
	}
	if got.BeadID != "at-7f2k" || got.Branch != want.Branch || got.Status != SessionActive {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestGetSessionMissing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetSession("nope")
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got != nil {
		t.Errorf("GetSession() = %+v, want nil", got)
	}
}

func TestGetSessionByBead(t *testing.T) {
	db := openTestDB(t)

	if err := db.CreateSession(newTestSession("s-1", "at-7f2k")); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateSession(newTestSession("s-2", "at-9x1c")); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetSessionByBead("at-9x1c")
	if err != nil {
		t.Fatalf("GetSessionByBead() error: %v", err)
	}
	if got == nil || got.ID != "s-2" {
		t.Errorf("GetSessionByBead() = %+v, want s-2", got)
	}
}

func TestListSessionsByStatus(t *testing.T) {
	db := openTestDB(t)

	active := newTestSession("s-1", "at-1")
	done := newTestSession("s-2", "at-2")
	done.Status = SessionCompleted
	for _, s := range []*Session{active, done} {
		if err := db.CreateSession(s); err != nil {
			t.Fatal(err)
		}
	}

	status := SessionActive
	sessions, err := db.ListSessions(&status)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s-1" {
		t.Errorf("ListSessions(active) = %+v", sessions)
	}

	all, err := db.ListSessions(nil)
	if err != nil {
		t.Fatalf("ListSessions(nil) error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListSessions(nil) returned %d sessions, want 2", len(all))
	}
}

func TestUpdateStatus(t *testing.T) {
	db := openTestDB(t)

	if err := db.CreateSession(newTestSession("s-1", "at-1")); err != nil {
		t.Fatal(err)
	}
	if err := db.UpdateStatus("s-1", SessionCompleted); err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	got, _ := db.GetSession("s-1")
	if got.Status != SessionCompleted {
		t.Errorf("Status = %q, want completed", got.Status)
	}

	if err := db.UpdateStatus("missing", SessionCompleted); err == nil {
		t.Error("UpdateStatus(missing) = nil error")
	}
}

func TestSetCodexSession(t *testing.T) {
	db := openTestDB(t)

	if err := db.CreateSession(newTestSession("s-1", "at-1")); err != nil {
		t.Fatal(err)
	}
	if err := db.SetCodexSession("s-1", "sess-123"); err != nil {
		t.Fatalf("SetCodexSession() error: %v", err)
	}
	got, _ := db.GetSession("s-1")
	if got.CodexSession != "sess-123" {
		t.Errorf("CodexSession = %q", got.CodexSession)
	}
}

func TestApplyChangesetFields(t *testing.T) {
	db := openTestDB(t)

	s := newTestSession("s-1", "at-1")
	s.RootBranch = "main"
	if err := db.CreateSession(s); err != nil {
		t.Fatal(err)
	}

	err := db.ApplyChangesetFields("s-1", changeset.Fields{
		PRURL:       "https://github.com/loomhq/loom/pull/7",
		ReviewState: "in-review",
		// WorkBranch and RootBranch absent: stored values stay.
	})
	if err != nil {
		t.Fatalf("ApplyChangesetFields() error: %v", err)
	}

	got, _ := db.GetSession("s-1")
	if got.PRURL != "https://github.com/loomhq/loom/pull/7" {
		t.Errorf("PRURL = %q", got.PRURL)
	}
	if got.ReviewState != "in-review" {
		t.Errorf("ReviewState = %q", got.ReviewState)
	}
	if got.Branch != s.Branch {
		t.Errorf("Branch = %q, want unchanged %q", got.Branch, s.Branch)
	}
	if got.RootBranch != "main" {
		t.Errorf("RootBranch = %q, want unchanged", got.RootBranch)
	}
}
