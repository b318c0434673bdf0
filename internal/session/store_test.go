package session_test

import (
	"testing"

	"github.com/neurofolio/neurofolio/internal/model/chat"
	"github.com/neurofolio/neurofolio/internal/session"
)

func TestSetSummaryClearsTranslation(t *testing.T) {
	store := session.NewStore()

	store.SetSummary("a caching project")
	store.SetTranslatedSummary("un proyecto de caché")

	store.SetSummary("a brand new summary")

	snap := store.Snapshot()
	if snap.Summary != "a brand new summary" {
		t.Fatalf("unexpected summary: %q", snap.Summary)
	}
	if snap.TranslatedSummary != "" {
		t.Fatalf("translation should be cleared, got %q", snap.TranslatedSummary)
	}
}

func TestAppendTurnAssignsIdentity(t *testing.T) {
	store := session.NewStore()

	turn := store.AppendTurn(chat.RoleUser, "hello")
	if turn.ID == "" {
		t.Fatal("expected turn id to be assigned")
	}
	if turn.CreatedAt.IsZero() {
		t.Fatal("expected turn timestamp to be assigned")
	}

	snap := store.Snapshot()
	if len(snap.Transcript) != 1 {
		t.Fatalf("unexpected transcript length: %d", len(snap.Transcript))
	}
	if snap.Transcript[0].ID != turn.ID {
		t.Fatalf("stored turn id mismatch: got %s want %s", snap.Transcript[0].ID, turn.ID)
	}
}

func TestSnapshotCopiesTranscript(t *testing.T) {
	store := session.NewStore()
	store.AppendTurn(chat.RoleUser, "hello")

	snap := store.Snapshot()
	snap.Transcript[0].Text = "mutated"

	if got := store.Snapshot().Transcript[0].Text; got != "hello" {
		t.Fatalf("snapshot mutation leaked into store: %q", got)
	}
}

func TestSetPendingImageReleasesPrior(t *testing.T) {
	store := session.NewStore()

	released := 0
	first := chat.NewImageAttachment("a.png", "image/png", []byte{1}, "blob:a", func() { released++ })
	second := chat.NewImageAttachment("b.png", "image/png", []byte{2}, "blob:b", func() {})

	store.SetPendingImage(first)
	store.SetPendingImage(second)

	if released != 1 {
		t.Fatalf("prior preview should be released exactly once, got %d", released)
	}
	if got := store.Snapshot().PendingImage; got != second {
		t.Fatal("expected second attachment to be pending")
	}
}

func TestClearPendingImageReleasesPreview(t *testing.T) {
	store := session.NewStore()

	released := 0
	attachment := chat.NewImageAttachment("a.png", "image/png", []byte{1}, "blob:a", func() { released++ })
	store.SetPendingImage(attachment)

	store.ClearPendingImage()
	store.ClearPendingImage()

	if released != 1 {
		t.Fatalf("preview should be released exactly once, got %d", released)
	}
	if store.Snapshot().PendingImage != nil {
		t.Fatal("pending image should be cleared")
	}
}

func TestDefaultsMatchInitialSelection(t *testing.T) {
	snap := session.NewStore().Snapshot()

	if snap.Model != "groq-llama3" {
		t.Fatalf("unexpected default model: %s", snap.Model)
	}
	if snap.Language != "en" {
		t.Fatalf("unexpected default language: %s", snap.Language)
	}
	if snap.Persona != "friendly" {
		t.Fatalf("unexpected default persona: %s", snap.Persona)
	}
}
