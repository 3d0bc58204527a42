package secondary

import "context"

// ApplicantMirrorRecord represents an applicant row in the remote mirror.
// Nested collections travel as JSON-encoded text columns.
type ApplicantMirrorRecord struct {
	ID            string
	BuildingID    string
	Name          string
	CurrentStage  string
	Unit          string
	HMISNumber    string
	Phone         string
	Email         string
	CaseManager   string
	DocumentsJSON string
	FamilyJSON    string
	HistoryJSON   string
	NotesJSON     string
	ActionsJSON   string
	DateCreated   string
}

// TemplateMirrorRecord represents an email template row in the remote mirror.
type TemplateMirrorRecord struct {
	ID             string
	BuildingID     string
	Name           string
	Subject        string
	Body           string
	StageID        string
	RecipientsJSON string
}

// StageInfoMirrorRecord represents a stage-information row in the remote mirror.
type StageInfoMirrorRecord struct {
	ID         string
	BuildingID string
	Title      string
	DetailJSON string
}

// ApplicantMirror is the remote relational mirror for applicants. The local
// persistent store stays authoritative; the mirror is written best-effort and
// reconciliation lives outside this tool.
type ApplicantMirror interface {
	// GetByBuilding retrieves all applicant rows for a building.
	GetByBuilding(ctx context.Context, buildingID string) ([]*ApplicantMirrorRecord, error)

	// Create inserts a new applicant row.
	Create(ctx context.Context, rec *ApplicantMirrorRecord) error

	// Upsert inserts or fully replaces an applicant row by id.
	Upsert(ctx context.Context, rec *ApplicantMirrorRecord) error

	// Delete removes an applicant row.
	Delete(ctx context.Context, id string) error
}

// TemplateMirror is the remote relational mirror for email templates.
type TemplateMirror interface {
	GetByBuilding(ctx context.Context, buildingID string) ([]*TemplateMirrorRecord, error)
	Create(ctx context.Context, rec *TemplateMirrorRecord) error
	Upsert(ctx context.Context, rec *TemplateMirrorRecord) error
	Delete(ctx context.Context, id string) error
}

// StageInfoMirror is the remote relational mirror for stage information.
type StageInfoMirror interface {
	GetByBuilding(ctx context.Context, buildingID string) ([]*StageInfoMirrorRecord, error)
	Create(ctx context.Context, rec *StageInfoMirrorRecord) error
	Upsert(ctx context.Context, rec *StageInfoMirrorRecord) error
	Delete(ctx context.Context, id string) error
}
