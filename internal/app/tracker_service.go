package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/casetrack/internal/core/applicant"
	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
)

// TrackerService implements the case-management operations. Every mutation is
// a load-modify-save over the persistent store, serialized by a mutex, then
// broadcast on the sync bus and mirrored best-effort.
type TrackerService struct {
	store  primary.Store
	sync   primary.Sync
	mirror primary.Mirror
	log    *logging.Logger
	now    func() time.Time
	newID  func(prefix string) string

	mu sync.Mutex
}

// NewTrackerService creates the tracker. sync and mirror may be nil for
// offline single-instance runs.
func NewTrackerService(store primary.Store, syncSvc primary.Sync, mirror primary.Mirror, log *logging.Logger) *TrackerService {
	return &TrackerService{
		store:  store,
		sync:   syncSvc,
		mirror: mirror,
		log:    log.With("service", "tracker"),
		now:    time.Now,
		newID: func(prefix string) string {
			return prefix + uuid.NewString()
		},
	}
}

// WithClock overrides the time source, for tests.
func (s *TrackerService) WithClock(now func() time.Time) *TrackerService {
	s.now = now
	return s
}

// WithIDGenerator overrides the id generator, for tests.
func (s *TrackerService) WithIDGenerator(gen func(prefix string) string) *TrackerService {
	s.newID = gen
	return s
}

// AddApplicant creates an applicant in the first workflow stage with a seeded
// history entry.
func (s *TrackerService) AddApplicant(ctx context.Context, req primary.AddApplicantRequest) (*models.Applicant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("applicant name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a := models.Applicant{
		ID:                   s.newID(applicant.IDPrefixApplicant),
		Name:                 strings.TrimSpace(req.Name),
		CurrentStage:         stage.First(),
		Unit:                 req.Unit,
		HMISNumber:           req.HMISNumber,
		Phone:                req.Phone,
		Email:                req.Email,
		CaseManager:          req.CaseManager,
		FamilyMembers:        []models.FamilyMember{},
		StageHistory:         []models.StageTransition{stage.InitialTransition(s.newID(""), now)},
		ManualNotes:          []models.ManualNote{},
		CompletedActionItems: []string{},
	}

	applicants := s.loadApplicants(ctx)
	applicants = append(applicants, a)
	if err := s.saveAndBroadcast(ctx, applicants); err != nil {
		return nil, err
	}

	s.log.Info("applicant added", "id", a.ID, "name", a.Name)
	return &a, nil
}

// GetApplicant retrieves one applicant by id.
func (s *TrackerService) GetApplicant(ctx context.Context, id string) (*models.Applicant, error) {
	for _, a := range s.loadApplicants(ctx) {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("applicant %s not found", id)
}

// ListApplicants returns all applicants.
func (s *TrackerService) ListApplicants(ctx context.Context) []models.Applicant {
	return s.loadApplicants(ctx)
}

// MoveApplicant moves an applicant to another stage, appending to its history.
func (s *TrackerService) MoveApplicant(ctx context.Context, req primary.MoveApplicantRequest) error {
	if !stage.IsValid(req.ToStage) {
		return fmt.Errorf("unknown stage %q", req.ToStage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateApplicant(ctx, req.ApplicantID, func(a *models.Applicant) error {
		if a.CurrentStage == req.ToStage {
			return fmt.Errorf("applicant %s is already in stage %s", a.ID, req.ToStage)
		}
		transition := stage.NewTransition(s.newID(""), a.CurrentStage, req.ToStage, req.MovedBy, req.Note, s.now())
		a.StageHistory = append(a.StageHistory, transition)
		a.CurrentStage = req.ToStage
		s.log.Info("applicant moved", "id", a.ID, "from", transition.FromStage, "to", transition.ToStage)
		return nil
	})
}

// AddNote appends a manual note to an applicant's case.
func (s *TrackerService) AddNote(ctx context.Context, req primary.AddNoteRequest) error {
	if strings.TrimSpace(req.Note) == "" {
		return fmt.Errorf("note text is required")
	}
	noteType := req.NoteType
	if noteType == "" {
		noteType = models.NoteTypeGeneral
	}
	if !models.ValidNoteType(noteType) {
		return fmt.Errorf("unknown note type %q", noteType)
	}
	addedBy := req.AddedBy
	if addedBy == "" {
		addedBy = applicant.DefaultAuthor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateApplicant(ctx, req.ApplicantID, func(a *models.Applicant) error {
		a.ManualNotes = append(a.ManualNotes, models.ManualNote{
			ID:        s.newID(""),
			Timestamp: s.now(),
			AddedBy:   addedBy,
			Note:      req.Note,
			NoteType:  noteType,
		})
		return nil
	})
}

// ToggleDocument flips one collected-document flag on the applicant or a
// family member.
func (s *TrackerService) ToggleDocument(ctx context.Context, req primary.ToggleDocumentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateApplicant(ctx, req.ApplicantID, func(a *models.Applicant) error {
		docs := &a.Documents
		if req.FamilyMemberID != "" {
			docs = nil
			for i := range a.FamilyMembers {
				if a.FamilyMembers[i].ID == req.FamilyMemberID {
					docs = &a.FamilyMembers[i].Documents
					break
				}
			}
			if docs == nil {
				return fmt.Errorf("family member %s not found", req.FamilyMemberID)
			}
		}
		switch req.Document {
		case "ssCard":
			docs.SSCard = !docs.SSCard
		case "birthCertificate":
			docs.BirthCertificate = !docs.BirthCertificate
		case "id":
			docs.ID = !docs.ID
		default:
			return fmt.Errorf("unknown document %q", req.Document)
		}
		return nil
	})
}

// CompleteActionItem marks a free-text action item done. Completing an
// already-completed item is a no-op.
func (s *TrackerService) CompleteActionItem(ctx context.Context, applicantID, item string) error {
	if strings.TrimSpace(item) == "" {
		return fmt.Errorf("action item text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateApplicant(ctx, applicantID, func(a *models.Applicant) error {
		for _, done := range a.CompletedActionItems {
			if done == item {
				return nil
			}
		}
		a.CompletedActionItems = append(a.CompletedActionItems, item)
		return nil
	})
}

// UncompleteActionItem reverses CompleteActionItem.
func (s *TrackerService) UncompleteActionItem(ctx context.Context, applicantID, item string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateApplicant(ctx, applicantID, func(a *models.Applicant) error {
		kept := a.CompletedActionItems[:0]
		for _, done := range a.CompletedActionItems {
			if done != item {
				kept = append(kept, done)
			}
		}
		a.CompletedActionItems = kept
		return nil
	})
}

// CorrectTimestamp is the explicit operator edit path for a stage transition
// or manual note timestamp. History entries are immutable otherwise.
func (s *TrackerService) CorrectTimestamp(ctx context.Context, req primary.CorrectTimestampRequest) error {
	if (req.TransitionID == "") == (req.NoteID == "") {
		return fmt.Errorf("exactly one of transition id or note id must be given")
	}
	ts, err := parseCorrectionTime(req.Timestamp)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateApplicant(ctx, req.ApplicantID, func(a *models.Applicant) error {
		if req.TransitionID != "" {
			for i := range a.StageHistory {
				if a.StageHistory[i].ID == req.TransitionID {
					a.StageHistory[i].Timestamp = ts
					return nil
				}
			}
			return fmt.Errorf("transition %s not found", req.TransitionID)
		}
		for i := range a.ManualNotes {
			if a.ManualNotes[i].ID == req.NoteID {
				a.ManualNotes[i].Timestamp = ts
				return nil
			}
		}
		return fmt.Errorf("note %s not found", req.NoteID)
	})
}

// UpdateContact updates an applicant's contact fields. Empty request fields
// are left unchanged.
func (s *TrackerService) UpdateContact(ctx context.Context, req primary.UpdateContactRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateApplicant(ctx, req.ApplicantID, func(a *models.Applicant) error {
		if req.Phone != "" {
			a.Phone = req.Phone
		}
		if req.Email != "" {
			a.Email = req.Email
		}
		if req.Unit != "" {
			a.Unit = req.Unit
		}
		if req.CaseManager != "" {
			a.CaseManager = req.CaseManager
		}
		if req.CaseManagerPhone != "" {
			a.CaseManagerPhone = req.CaseManagerPhone
		}
		if req.CaseManagerEmail != "" {
			a.CaseManagerEmail = req.CaseManagerEmail
		}
		return nil
	})
}

// RemoveApplicant removes an applicant permanently.
func (s *TrackerService) RemoveApplicant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	applicants := s.loadApplicants(ctx)
	kept := make([]models.Applicant, 0, len(applicants))
	for _, a := range applicants {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(applicants) {
		return fmt.Errorf("applicant %s not found", id)
	}
	if err := s.saveAndBroadcast(ctx, kept); err != nil {
		return err
	}
	if s.mirror != nil && s.mirror.Enabled() {
		s.mirror.MirrorRemoveApplicant(ctx, id)
	}
	s.log.Info("applicant removed", "id", id)
	return nil
}

// mutateApplicant runs fn against the applicant with the given id and
// persists the whole list when fn succeeds. Callers hold the mutex.
func (s *TrackerService) mutateApplicant(ctx context.Context, id string, fn func(*models.Applicant) error) error {
	applicants := s.loadApplicants(ctx)
	for i := range applicants {
		if applicants[i].ID != id {
			continue
		}
		if err := fn(&applicants[i]); err != nil {
			return err
		}
		return s.saveAndBroadcast(ctx, applicants)
	}
	return fmt.Errorf("applicant %s not found", id)
}

func (s *TrackerService) loadApplicants(ctx context.Context) []models.Applicant {
	applicants := []models.Applicant{}
	s.store.Load(ctx, primary.KeyApplicants, &applicants)
	return applicants
}

func (s *TrackerService) saveAndBroadcast(ctx context.Context, applicants []models.Applicant) error {
	if !s.store.Save(ctx, primary.KeyApplicants, applicants) {
		return fmt.Errorf("saving applicants failed")
	}
	if s.sync != nil {
		s.sync.PublishApplicants(ctx, applicants)
	}
	if s.mirror != nil && s.mirror.Enabled() {
		s.mirror.MirrorApplicants(ctx, applicants)
	}
	return nil
}

func parseCorrectionTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not RFC3339 or YYYY-MM-DD", value)
}

var _ primary.Tracker = (*TrackerService)(nil)
