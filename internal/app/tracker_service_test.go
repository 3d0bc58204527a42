package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/casetrack/internal/adapters/memory"
	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
)

func newTestTracker() (*TrackerService, *StoreService, *memory.Store) {
	bytes := memory.NewStore()
	store := NewStoreService(bytes, &recordingNotifier{}, logging.Nop())
	tracker := NewTrackerService(store, nil, nil, logging.Nop())
	tracker.WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	counter := 0
	tracker.WithIDGenerator(func(prefix string) string {
		counter++
		return fmt.Sprintf("%s%d", prefix, counter)
	})
	return tracker, store, bytes
}

func TestAddApplicantSeedsHistory(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	a, err := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "  Ada Lovelace ", Unit: "4B"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.Name != "Ada Lovelace" {
		t.Errorf("name = %q", a.Name)
	}
	if a.CurrentStage != stage.First() {
		t.Errorf("stage = %q, want %q", a.CurrentStage, stage.First())
	}
	if len(a.StageHistory) != 1 || a.StageHistory[0].ToStage != stage.First() || a.StageHistory[0].MovedBy != "System" {
		t.Errorf("seed history = %+v", a.StageHistory)
	}

	stored, err := tracker.GetApplicant(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Unit != "4B" {
		t.Errorf("stored unit = %q", stored.Unit)
	}
}

func TestAddApplicantRequiresName(t *testing.T) {
	tracker, _, _ := newTestTracker()
	if _, err := tracker.AddApplicant(context.Background(), primary.AddApplicantRequest{Name: "   "}); err == nil {
		t.Error("blank name accepted")
	}
}

func TestMoveApplicant(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()
	a, _ := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Ada"})

	if err := tracker.MoveApplicant(ctx, primary.MoveApplicantRequest{ApplicantID: a.ID, ToStage: "nonsense"}); err == nil {
		t.Error("unknown stage accepted")
	}
	if err := tracker.MoveApplicant(ctx, primary.MoveApplicantRequest{ApplicantID: a.ID, ToStage: stage.First()}); err == nil {
		t.Error("move to current stage accepted")
	}
	if err := tracker.MoveApplicant(ctx, primary.MoveApplicantRequest{ApplicantID: "missing", ToStage: stage.ApplicationPacket}); err == nil {
		t.Error("unknown applicant accepted")
	}

	err := tracker.MoveApplicant(ctx, primary.MoveApplicantRequest{
		ApplicantID: a.ID,
		ToStage:     stage.ApplicationPacket,
		MovedBy:     "jordan",
		Note:        "packet mailed",
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}

	moved, _ := tracker.GetApplicant(ctx, a.ID)
	if moved.CurrentStage != stage.ApplicationPacket {
		t.Errorf("stage = %q", moved.CurrentStage)
	}
	if len(moved.StageHistory) != 2 {
		t.Fatalf("history entries = %d, want 2", len(moved.StageHistory))
	}
	last := moved.StageHistory[1]
	if last.FromStage != stage.First() || last.ToStage != stage.ApplicationPacket || last.MovedBy != "jordan" || last.Note != "packet mailed" {
		t.Errorf("last transition = %+v", last)
	}
}

func TestAddNoteDefaults(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()
	a, _ := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Ada"})

	if err := tracker.AddNote(ctx, primary.AddNoteRequest{ApplicantID: a.ID, Note: "  "}); err == nil {
		t.Error("blank note accepted")
	}
	if err := tracker.AddNote(ctx, primary.AddNoteRequest{ApplicantID: a.ID, Note: "x", NoteType: "carrier-pigeon"}); err == nil {
		t.Error("unknown note type accepted")
	}

	if err := tracker.AddNote(ctx, primary.AddNoteRequest{ApplicantID: a.ID, Note: "left a voicemail"}); err != nil {
		t.Fatalf("add note: %v", err)
	}
	stored, _ := tracker.GetApplicant(ctx, a.ID)
	if len(stored.ManualNotes) != 1 {
		t.Fatalf("notes = %d, want 1", len(stored.ManualNotes))
	}
	note := stored.ManualNotes[0]
	if note.NoteType != models.NoteTypeGeneral {
		t.Errorf("note type = %q, want general default", note.NoteType)
	}
	if note.AddedBy != "Current User" {
		t.Errorf("added by = %q", note.AddedBy)
	}
}

func TestToggleDocument(t *testing.T) {
	tracker, store, _ := newTestTracker()
	ctx := context.Background()
	a, _ := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Ada"})

	if err := tracker.ToggleDocument(ctx, primary.ToggleDocumentRequest{ApplicantID: a.ID, Document: "passport"}); err == nil {
		t.Error("unknown document accepted")
	}

	if err := tracker.ToggleDocument(ctx, primary.ToggleDocumentRequest{ApplicantID: a.ID, Document: "ssCard"}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	stored, _ := tracker.GetApplicant(ctx, a.ID)
	if !stored.Documents.SSCard {
		t.Error("ssCard not set after toggle")
	}
	tracker.ToggleDocument(ctx, primary.ToggleDocumentRequest{ApplicantID: a.ID, Document: "ssCard"})
	stored, _ = tracker.GetApplicant(ctx, a.ID)
	if stored.Documents.SSCard {
		t.Error("ssCard still set after second toggle")
	}

	// Family member path.
	withFamily := *stored
	withFamily.FamilyMembers = []models.FamilyMember{{ID: "family_1", Name: "Byron"}}
	store.Save(ctx, primary.KeyApplicants, []models.Applicant{withFamily})

	if err := tracker.ToggleDocument(ctx, primary.ToggleDocumentRequest{ApplicantID: a.ID, FamilyMemberID: "family_9", Document: "id"}); err == nil {
		t.Error("unknown family member accepted")
	}
	if err := tracker.ToggleDocument(ctx, primary.ToggleDocumentRequest{ApplicantID: a.ID, FamilyMemberID: "family_1", Document: "id"}); err != nil {
		t.Fatalf("family toggle: %v", err)
	}
	stored, _ = tracker.GetApplicant(ctx, a.ID)
	if !stored.FamilyMembers[0].Documents.ID {
		t.Error("family member id flag not set")
	}
}

func TestActionItems(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()
	a, _ := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Ada"})

	if err := tracker.CompleteActionItem(ctx, a.ID, "submit packet"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// Completing twice must not duplicate.
	tracker.CompleteActionItem(ctx, a.ID, "submit packet")
	stored, _ := tracker.GetApplicant(ctx, a.ID)
	if len(stored.CompletedActionItems) != 1 {
		t.Errorf("action items = %v", stored.CompletedActionItems)
	}

	if err := tracker.UncompleteActionItem(ctx, a.ID, "submit packet"); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	stored, _ = tracker.GetApplicant(ctx, a.ID)
	if len(stored.CompletedActionItems) != 0 {
		t.Errorf("action items after uncomplete = %v", stored.CompletedActionItems)
	}
}

func TestCorrectTimestamp(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()
	a, _ := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Ada"})
	tracker.AddNote(ctx, primary.AddNoteRequest{ApplicantID: a.ID, Note: "called"})

	stored, _ := tracker.GetApplicant(ctx, a.ID)
	transitionID := stored.StageHistory[0].ID
	noteID := stored.ManualNotes[0].ID

	// Neither id, both ids, a bad time, and an unknown id must all fail.
	bad := []primary.CorrectTimestampRequest{
		{ApplicantID: a.ID, Timestamp: "2025-01-01T00:00:00Z"},
		{ApplicantID: a.ID, TransitionID: transitionID, NoteID: noteID, Timestamp: "2025-01-01"},
		{ApplicantID: a.ID, TransitionID: transitionID, Timestamp: "last tuesday"},
		{ApplicantID: a.ID, TransitionID: "missing", Timestamp: "2025-01-01T00:00:00Z"},
	}
	for i, req := range bad {
		if err := tracker.CorrectTimestamp(ctx, req); err == nil {
			t.Errorf("bad request %d accepted", i)
		}
	}

	want := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	if err := tracker.CorrectTimestamp(ctx, primary.CorrectTimestampRequest{
		ApplicantID:  a.ID,
		TransitionID: transitionID,
		Timestamp:    want.Format(time.RFC3339),
	}); err != nil {
		t.Fatalf("correct transition: %v", err)
	}
	if err := tracker.CorrectTimestamp(ctx, primary.CorrectTimestampRequest{
		ApplicantID: a.ID,
		NoteID:      noteID,
		Timestamp:   "2025-03-16",
	}); err != nil {
		t.Fatalf("correct note: %v", err)
	}

	stored, _ = tracker.GetApplicant(ctx, a.ID)
	if !stored.StageHistory[0].Timestamp.Equal(want) {
		t.Errorf("transition timestamp = %v, want %v", stored.StageHistory[0].Timestamp, want)
	}
	if got := stored.ManualNotes[0].Timestamp; !got.Equal(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("note timestamp = %v", got)
	}
}

func TestUpdateContactLeavesEmptyFieldsAlone(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()
	a, _ := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Ada", Phone: "555-0100", Email: "ada@example.org"})

	if err := tracker.UpdateContact(ctx, primary.UpdateContactRequest{
		ApplicantID: a.ID,
		Phone:       "555-0199",
		CaseManager: "Jordan",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, _ := tracker.GetApplicant(ctx, a.ID)
	if stored.Phone != "555-0199" || stored.CaseManager != "Jordan" {
		t.Errorf("updated fields = %q %q", stored.Phone, stored.CaseManager)
	}
	if stored.Email != "ada@example.org" {
		t.Errorf("email changed: %q", stored.Email)
	}
}

func TestRemoveApplicant(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()
	a, _ := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Ada"})
	b, _ := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Grace"})

	if err := tracker.RemoveApplicant(ctx, "missing"); err == nil {
		t.Error("unknown applicant accepted")
	}
	if err := tracker.RemoveApplicant(ctx, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	left := tracker.ListApplicants(ctx)
	if len(left) != 1 || left[0].ID != b.ID {
		t.Errorf("remaining = %v", left)
	}
}

func TestMutationsPublishOnSyncBus(t *testing.T) {
	bytes := memory.NewStore()
	bus := memory.NewBus()
	store := NewStoreService(bytes, &recordingNotifier{}, logging.Nop())
	syncSvc := NewSyncService(bus, logging.Nop(), time.Second)
	tracker := NewTrackerService(store, syncSvc, nil, logging.Nop())
	ctx := context.Background()

	receiver := NewSyncService(bus, logging.Nop(), time.Second)
	var got []models.Applicant
	receiver.OnApplicants(func(a []models.Applicant) { got = a })
	if err := receiver.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := tracker.AddApplicant(ctx, primary.AddApplicantRequest{Name: "Ada"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ada" {
		t.Errorf("sibling received %v", got)
	}
}
