package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/casetrack/internal/adapters/memory"
	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/ports/secondary"
)

type fakeApplicantMirror struct {
	upserts []*secondary.ApplicantMirrorRecord
	fail    error
}

func (m *fakeApplicantMirror) GetByBuilding(ctx context.Context, buildingID string) ([]*secondary.ApplicantMirrorRecord, error) {
	return m.upserts, nil
}
func (m *fakeApplicantMirror) Create(ctx context.Context, rec *secondary.ApplicantMirrorRecord) error {
	return m.Upsert(ctx, rec)
}
func (m *fakeApplicantMirror) Upsert(ctx context.Context, rec *secondary.ApplicantMirrorRecord) error {
	if m.fail != nil {
		return m.fail
	}
	m.upserts = append(m.upserts, rec)
	return nil
}
func (m *fakeApplicantMirror) Delete(ctx context.Context, id string) error { return nil }

type fakeTemplateMirror struct {
	upserts []*secondary.TemplateMirrorRecord
}

func (m *fakeTemplateMirror) GetByBuilding(ctx context.Context, buildingID string) ([]*secondary.TemplateMirrorRecord, error) {
	return m.upserts, nil
}
func (m *fakeTemplateMirror) Create(ctx context.Context, rec *secondary.TemplateMirrorRecord) error {
	return m.Upsert(ctx, rec)
}
func (m *fakeTemplateMirror) Upsert(ctx context.Context, rec *secondary.TemplateMirrorRecord) error {
	m.upserts = append(m.upserts, rec)
	return nil
}
func (m *fakeTemplateMirror) Delete(ctx context.Context, id string) error { return nil }

type fakeStageInfoMirror struct {
	upserts []*secondary.StageInfoMirrorRecord
}

func (m *fakeStageInfoMirror) GetByBuilding(ctx context.Context, buildingID string) ([]*secondary.StageInfoMirrorRecord, error) {
	return m.upserts, nil
}
func (m *fakeStageInfoMirror) Create(ctx context.Context, rec *secondary.StageInfoMirrorRecord) error {
	return m.Upsert(ctx, rec)
}
func (m *fakeStageInfoMirror) Upsert(ctx context.Context, rec *secondary.StageInfoMirrorRecord) error {
	m.upserts = append(m.upserts, rec)
	return nil
}
func (m *fakeStageInfoMirror) Delete(ctx context.Context, id string) error { return nil }

func TestMirrorDisabledWithoutBackends(t *testing.T) {
	store := NewStoreService(memory.NewStore(), &recordingNotifier{}, logging.Nop())
	svc := NewMirrorService(store, nil, nil, nil, logging.Nop(), "bldg-1")

	if svc.Enabled() {
		t.Error("mirror with nil backends reports enabled")
	}
	if _, err := svc.Migrate(context.Background()); err == nil {
		t.Error("migrate without backend should fail")
	}
	// Must be a silent no-op, not a panic.
	svc.MirrorApplicants(context.Background(), []models.Applicant{testApplicant("applicant_1", "Ada")})
}

func TestMirrorApplicantsBestEffort(t *testing.T) {
	store := NewStoreService(memory.NewStore(), &recordingNotifier{}, logging.Nop())
	applicants := &fakeApplicantMirror{fail: errors.New("network down")}
	svc := NewMirrorService(store, applicants, &fakeTemplateMirror{}, &fakeStageInfoMirror{}, logging.Nop(), "bldg-1")

	// A dead mirror must not disturb the caller.
	svc.MirrorApplicants(context.Background(), []models.Applicant{testApplicant("applicant_1", "Ada")})

	applicants.fail = nil
	svc.MirrorApplicants(context.Background(), []models.Applicant{testApplicant("applicant_1", "Ada")})
	if len(applicants.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(applicants.upserts))
	}
	rec := applicants.upserts[0]
	if rec.BuildingID != "bldg-1" || rec.Name != "Ada" || rec.CurrentStage == "" {
		t.Errorf("record = %+v", rec)
	}
	if rec.HistoryJSON == "" || rec.HistoryJSON == "null" {
		t.Errorf("history column = %q", rec.HistoryJSON)
	}
}

func TestMigratePushesAllKeys(t *testing.T) {
	bytes := memory.NewStore()
	store := NewStoreService(bytes, &recordingNotifier{}, logging.Nop())
	ctx := context.Background()

	store.Save(ctx, primary.KeyApplicants, []models.Applicant{
		testApplicant("applicant_1", "Ada"),
		testApplicant("applicant_2", "Grace"),
	})
	store.Save(ctx, primary.KeyTemplates, []models.EmailTemplate{{ID: "t1", Name: "Welcome"}})
	store.Save(ctx, primary.KeyStageInfo, []models.StageInfo{{ID: "awaiting-referral", Title: "Waiting for JOHS Referral"}})

	applicants := &fakeApplicantMirror{}
	templates := &fakeTemplateMirror{}
	infos := &fakeStageInfoMirror{}
	svc := NewMirrorService(store, applicants, templates, infos, logging.Nop(), "bldg-1")

	report, err := svc.Migrate(ctx)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if report.Applicants != 2 || report.Templates != 1 || report.StageInfos != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(infos.upserts) != 1 || infos.upserts[0].DetailJSON == "" {
		t.Errorf("stage info upserts = %+v", infos.upserts)
	}
}
