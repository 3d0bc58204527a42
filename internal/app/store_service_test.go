package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/casetrack/internal/adapters/memory"
	"github.com/example/casetrack/internal/checksum"
	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/ports/secondary"
)

type notification struct {
	message  string
	severity secondary.Severity
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	notifications []notification
}

func (n *recordingNotifier) Notify(message string, severity secondary.Severity) {
	n.notifications = append(n.notifications, notification{message, severity})
}

// flakyStore fails the next N puts, then behaves normally. Gets always work.
type flakyStore struct {
	*memory.Store
	failures int
}

func (s *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("disk full")
	}
	return s.Store.Put(ctx, key, value)
}

func newTestStore() (*StoreService, *memory.Store, *recordingNotifier) {
	bytes := memory.NewStore()
	notifier := &recordingNotifier{}
	svc := NewStoreService(bytes, notifier, logging.Nop())
	svc.WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	counter := 0
	svc.WithIDGenerator(func(prefix string) string {
		counter++
		return fmt.Sprintf("%s%d", prefix, counter)
	})
	return svc, bytes, notifier
}

func testApplicant(id, name string) models.Applicant {
	ts := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	return models.Applicant{
		ID:           id,
		Name:         name,
		CurrentStage: stage.AwaitingReferral,
		StageHistory: []models.StageTransition{{
			ID:        id + "-t1",
			FromStage: "",
			ToStage:   stage.AwaitingReferral,
			Timestamp: ts,
			MovedBy:   "System",
			Note:      "Applicant added to system",
		}},
		ManualNotes:          []models.ManualNote{},
		FamilyMembers:        []models.FamilyMember{},
		CompletedActionItems: []string{},
	}
}

func asJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	svc, _, notifier := newTestStore()
	ctx := context.Background()

	saved := []models.Applicant{testApplicant("applicant_1", "Ada"), testApplicant("applicant_2", "Grace")}
	if !svc.Save(ctx, primary.KeyApplicants, saved) {
		t.Fatal("save failed")
	}

	loaded := []models.Applicant{}
	if !svc.Load(ctx, primary.KeyApplicants, &loaded) {
		t.Fatal("load failed")
	}

	if got, want := asJSON(t, loaded), asJSON(t, saved); got != want {
		t.Errorf("round trip mismatch\ngot:  %s\nwant: %s", got, want)
	}
	if len(notifier.notifications) != 0 {
		t.Errorf("clean round trip produced notifications: %v", notifier.notifications)
	}
}

func TestLoadAbsentKeyKeepsDefault(t *testing.T) {
	svc, _, notifier := newTestStore()

	def := []models.EmailTemplate{{ID: "default", Name: "Default"}}
	out := def
	if svc.Load(context.Background(), primary.KeyTemplates, &out) {
		t.Error("load of absent key reported true")
	}
	if asJSON(t, out) != asJSON(t, def) {
		t.Errorf("default was modified: %s", asJSON(t, out))
	}
	if len(notifier.notifications) != 0 {
		t.Errorf("absent key produced notifications: %v", notifier.notifications)
	}
}

func TestBackupLagsPrimaryByOneGeneration(t *testing.T) {
	svc, bytes, _ := newTestStore()
	ctx := context.Background()

	first := []models.EmailTemplate{{ID: "t1", Name: "First"}}
	second := []models.EmailTemplate{{ID: "t1", Name: "Second"}}

	svc.Save(ctx, primary.KeyTemplates, first)
	if v := svc.Version(ctx, primary.KeyTemplates); v != 1 {
		t.Errorf("version after first save = %d, want 1", v)
	}
	if backup, _ := bytes.Get(ctx, primary.KeyTemplates+primary.BackupSuffix); backup != nil {
		t.Errorf("backup exists after first save: %s", backup)
	}

	svc.Save(ctx, primary.KeyTemplates, second)
	if v := svc.Version(ctx, primary.KeyTemplates); v != 2 {
		t.Errorf("version after second save = %d, want 2", v)
	}
	backup, _ := bytes.Get(ctx, primary.KeyTemplates+primary.BackupSuffix)
	if string(backup) != asJSON(t, first) {
		t.Errorf("backup = %s, want previous primary %s", backup, asJSON(t, first))
	}
}

func TestLoadRecoversFromCorruptedPrimary(t *testing.T) {
	svc, bytes, notifier := newTestStore()
	ctx := context.Background()

	first := []models.Applicant{testApplicant("applicant_1", "Ada")}
	second := []models.Applicant{testApplicant("applicant_1", "Ada"), testApplicant("applicant_2", "Grace")}
	svc.Save(ctx, primary.KeyApplicants, first)
	svc.Save(ctx, primary.KeyApplicants, second)

	bytes.Corrupt(primary.KeyApplicants)

	loaded := []models.Applicant{}
	if !svc.Load(ctx, primary.KeyApplicants, &loaded) {
		t.Fatal("load failed entirely")
	}
	if got, want := asJSON(t, loaded), asJSON(t, first); got != want {
		t.Errorf("recovered data = %s, want backup generation %s", got, want)
	}

	if len(notifier.notifications) != 1 {
		t.Fatalf("notifications = %v, want exactly one", notifier.notifications)
	}
	if notifier.notifications[0].severity != secondary.SeverityWarning {
		t.Errorf("severity = %s, want warning", notifier.notifications[0].severity)
	}
}

func TestLoadCorruptionWithoutBackupKeepsData(t *testing.T) {
	svc, bytes, notifier := newTestStore()
	ctx := context.Background()

	saved := []models.EmailTemplate{{ID: "t1", Name: "Only"}}
	svc.Save(ctx, primary.KeyTemplates, saved)

	// Damage the checksum slot, not the payload: the data itself is intact.
	bytes.Corrupt(primary.KeyTemplates + primary.ChecksumSuffix)

	loaded := []models.EmailTemplate{}
	if !svc.Load(ctx, primary.KeyTemplates, &loaded) {
		t.Fatal("load failed entirely")
	}
	if got, want := asJSON(t, loaded), asJSON(t, saved); got != want {
		t.Errorf("loaded = %s, want %s", got, want)
	}

	if len(notifier.notifications) != 1 {
		t.Fatalf("notifications = %v, want exactly one", notifier.notifications)
	}
	if notifier.notifications[0].severity != secondary.SeverityError {
		t.Errorf("severity = %s, want error", notifier.notifications[0].severity)
	}
}

func TestLoadParseFailureRecoversFromBackup(t *testing.T) {
	svc, bytes, notifier := newTestStore()
	ctx := context.Background()

	first := []models.EmailTemplate{{ID: "t1", Name: "First"}}
	svc.Save(ctx, primary.KeyTemplates, first)
	svc.Save(ctx, primary.KeyTemplates, []models.EmailTemplate{{ID: "t1", Name: "Second"}})

	// Replace the primary with garbage that passes the integrity check.
	garbage := []byte("{not json")
	bytes.Put(ctx, primary.KeyTemplates, garbage)
	bytes.Put(ctx, primary.KeyTemplates+primary.ChecksumSuffix, []byte(checksum.Sum(garbage)))

	loaded := []models.EmailTemplate{}
	if !svc.Load(ctx, primary.KeyTemplates, &loaded) {
		t.Fatal("load failed entirely")
	}
	if got, want := asJSON(t, loaded), asJSON(t, first); got != want {
		t.Errorf("loaded = %s, want backup %s", got, want)
	}
	if len(notifier.notifications) != 1 || notifier.notifications[0].severity != secondary.SeverityWarning {
		t.Errorf("notifications = %v, want one warning", notifier.notifications)
	}
}

func TestSaveRepairsInvalidApplicants(t *testing.T) {
	svc, _, _ := newTestStore()
	ctx := context.Background()

	// Missing id and stage, id-less history entry; the save path must repair it.
	broken := []map[string]any{{
		"name":         "Nameless Record",
		"stageHistory": []any{map[string]any{"timestamp": "garbage"}},
	}}
	if !svc.Save(ctx, primary.KeyApplicants, broken) {
		t.Fatal("save failed")
	}

	loaded := []models.Applicant{}
	if !svc.Load(ctx, primary.KeyApplicants, &loaded) {
		t.Fatal("load failed")
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d applicants, want 1", len(loaded))
	}
	got := loaded[0]
	if got.ID != "applicant_1" {
		t.Errorf("ID = %q, want generated applicant_1", got.ID)
	}
	if got.CurrentStage != stage.First() {
		t.Errorf("CurrentStage = %q, want %q", got.CurrentStage, stage.First())
	}
	if len(got.StageHistory) != 0 {
		t.Errorf("id-less history entries survived: %v", got.StageHistory)
	}
}

func TestSaveFailureWithoutBackupNotifiesCritical(t *testing.T) {
	bytes := memory.NewStore()
	bytes.FailPuts = errors.New("disk full")
	notifier := &recordingNotifier{}
	svc := NewStoreService(bytes, notifier, logging.Nop())

	if svc.Save(context.Background(), primary.KeyTemplates, []models.EmailTemplate{{ID: "t1"}}) {
		t.Fatal("save reported success against a failing store")
	}
	if len(notifier.notifications) != 1 || notifier.notifications[0].severity != secondary.SeverityError {
		t.Errorf("notifications = %v, want one error", notifier.notifications)
	}
}

func TestSaveFailureRollsBackFromBackup(t *testing.T) {
	flaky := &flakyStore{Store: memory.NewStore()}
	notifier := &recordingNotifier{}
	svc := NewStoreService(flaky, notifier, logging.Nop())
	ctx := context.Background()

	first := []models.EmailTemplate{{ID: "t1", Name: "First"}}
	if !svc.Save(ctx, primary.KeyTemplates, first) {
		t.Fatal("initial save failed")
	}
	if !svc.Save(ctx, primary.KeyTemplates, []models.EmailTemplate{{ID: "t1", Name: "Second"}}) {
		t.Fatal("second save failed")
	}

	flaky.failures = 1
	if svc.Save(ctx, primary.KeyTemplates, []models.EmailTemplate{{ID: "t1", Name: "Third"}}) {
		t.Fatal("save reported success despite write failure")
	}
	if len(notifier.notifications) != 1 || notifier.notifications[0].severity != secondary.SeverityWarning {
		t.Fatalf("notifications = %v, want one warning", notifier.notifications)
	}

	// Rollback restores the backup generation.
	loaded := []models.EmailTemplate{}
	if !svc.Load(ctx, primary.KeyTemplates, &loaded) {
		t.Fatal("load after rollback failed")
	}
	if got, want := asJSON(t, loaded), asJSON(t, first); got != want {
		t.Errorf("after rollback loaded = %s, want %s", got, want)
	}
}
