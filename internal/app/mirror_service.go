package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/ports/secondary"
)

// MirrorService pushes local state into the remote relational mirror. The
// persistent store stays authoritative: mirror writes after a save are
// best-effort and only Migrate reports hard errors.
type MirrorService struct {
	store      primary.Store
	applicants secondary.ApplicantMirror
	templates  secondary.TemplateMirror
	stageInfos secondary.StageInfoMirror
	log        *logging.Logger
	buildingID string
	now        func() time.Time
}

// NewMirrorService creates the mirror bridge. Pass nil mirrors to run with
// mirroring disabled.
func NewMirrorService(store primary.Store, applicants secondary.ApplicantMirror, templates secondary.TemplateMirror, stageInfos secondary.StageInfoMirror, log *logging.Logger, buildingID string) *MirrorService {
	return &MirrorService{
		store:      store,
		applicants: applicants,
		templates:  templates,
		stageInfos: stageInfos,
		log:        log.With("service", "mirror"),
		buildingID: buildingID,
		now:        time.Now,
	}
}

// Enabled reports whether a mirror backend is configured.
func (s *MirrorService) Enabled() bool {
	return s.applicants != nil && s.templates != nil && s.stageInfos != nil
}

// MirrorApplicants upserts the applicant list. Failures are logged per row
// and never propagated; the local save already succeeded.
func (s *MirrorService) MirrorApplicants(ctx context.Context, applicants []models.Applicant) {
	if !s.Enabled() {
		return
	}
	for i := range applicants {
		rec, err := applicantRecord(&applicants[i], s.buildingID, s.now())
		if err != nil {
			s.log.Warn("applicant did not serialize for mirror", "id", applicants[i].ID, "error", err)
			continue
		}
		if err := s.applicants.Upsert(ctx, rec); err != nil {
			s.log.Warn("mirror upsert failed", "id", applicants[i].ID, "error", err)
		}
	}
}

// MirrorRemoveApplicant deletes the applicant's row so the mirror does not
// keep rows the local store no longer has.
func (s *MirrorService) MirrorRemoveApplicant(ctx context.Context, id string) {
	if !s.Enabled() {
		return
	}
	if err := s.applicants.Delete(ctx, id); err != nil {
		s.log.Warn("mirror delete failed", "id", id, "error", err)
	}
}

// Migrate pushes all three logical keys to the mirror. Unlike the post-save
// mirroring this is a deliberate operator action, so errors stop it.
func (s *MirrorService) Migrate(ctx context.Context) (*primary.MigrateReport, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("no mirror backend configured")
	}

	report := &primary.MigrateReport{}

	applicants := []models.Applicant{}
	s.store.Load(ctx, primary.KeyApplicants, &applicants)
	for i := range applicants {
		rec, err := applicantRecord(&applicants[i], s.buildingID, s.now())
		if err != nil {
			return report, fmt.Errorf("serializing applicant %s: %w", applicants[i].ID, err)
		}
		if err := s.applicants.Upsert(ctx, rec); err != nil {
			return report, fmt.Errorf("migrating applicant %s: %w", applicants[i].ID, err)
		}
		report.Applicants++
	}

	templates := []models.EmailTemplate{}
	s.store.Load(ctx, primary.KeyTemplates, &templates)
	for i := range templates {
		rec, err := templateRecord(&templates[i], s.buildingID)
		if err != nil {
			return report, fmt.Errorf("serializing template %s: %w", templates[i].ID, err)
		}
		if err := s.templates.Upsert(ctx, rec); err != nil {
			return report, fmt.Errorf("migrating template %s: %w", templates[i].ID, err)
		}
		report.Templates++
	}

	infos := []models.StageInfo{}
	s.store.Load(ctx, primary.KeyStageInfo, &infos)
	for i := range infos {
		rec, err := stageInfoRecord(&infos[i], s.buildingID)
		if err != nil {
			return report, fmt.Errorf("serializing stage info %s: %w", infos[i].ID, err)
		}
		if err := s.stageInfos.Upsert(ctx, rec); err != nil {
			return report, fmt.Errorf("migrating stage info %s: %w", infos[i].ID, err)
		}
		report.StageInfos++
	}

	s.log.Info("migration completed",
		"applicants", report.Applicants,
		"templates", report.Templates,
		"stageInfos", report.StageInfos)
	return report, nil
}

func applicantRecord(a *models.Applicant, buildingID string, now time.Time) (*secondary.ApplicantMirrorRecord, error) {
	docs, err := json.Marshal(a.Documents)
	if err != nil {
		return nil, err
	}
	family, err := json.Marshal(a.FamilyMembers)
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal(a.StageHistory)
	if err != nil {
		return nil, err
	}
	notes, err := json.Marshal(a.ManualNotes)
	if err != nil {
		return nil, err
	}
	actions, err := json.Marshal(a.CompletedActionItems)
	if err != nil {
		return nil, err
	}

	created := now.UTC().Format(time.RFC3339)
	if len(a.StageHistory) > 0 {
		created = a.StageHistory[0].Timestamp.UTC().Format(time.RFC3339)
	}

	return &secondary.ApplicantMirrorRecord{
		ID:            a.ID,
		BuildingID:    buildingID,
		Name:          a.Name,
		CurrentStage:  a.CurrentStage,
		Unit:          a.Unit,
		HMISNumber:    a.HMISNumber,
		Phone:         a.Phone,
		Email:         a.Email,
		CaseManager:   a.CaseManager,
		DocumentsJSON: string(docs),
		FamilyJSON:    string(family),
		HistoryJSON:   string(history),
		NotesJSON:     string(notes),
		ActionsJSON:   string(actions),
		DateCreated:   created,
	}, nil
}

func templateRecord(t *models.EmailTemplate, buildingID string) (*secondary.TemplateMirrorRecord, error) {
	recipients, err := json.Marshal(t.Recipients)
	if err != nil {
		return nil, err
	}
	return &secondary.TemplateMirrorRecord{
		ID:             t.ID,
		BuildingID:     buildingID,
		Name:           t.Name,
		Subject:        t.Subject,
		Body:           t.Body,
		StageID:        t.StageID,
		RecipientsJSON: string(recipients),
	}, nil
}

func stageInfoRecord(info *models.StageInfo, buildingID string) (*secondary.StageInfoMirrorRecord, error) {
	detail, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	return &secondary.StageInfoMirrorRecord{
		ID:         info.ID,
		BuildingID: buildingID,
		Title:      info.Title,
		DetailJSON: string(detail),
	}, nil
}

var _ primary.Mirror = (*MirrorService)(nil)
