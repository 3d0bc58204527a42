package primary

import (
	"context"

	"github.com/example/casetrack/internal/models"
)

// Tracker is the case-management service over the persistent store. Every
// mutation persists through Store, then best-effort publishes the change on
// the sync bus and mirrors it remotely.
type Tracker interface {
	// AddApplicant creates an applicant in the first workflow stage with a
	// seeded history entry.
	AddApplicant(ctx context.Context, req AddApplicantRequest) (*models.Applicant, error)

	// GetApplicant retrieves one applicant by id.
	GetApplicant(ctx context.Context, id string) (*models.Applicant, error)

	// ListApplicants returns all applicants.
	ListApplicants(ctx context.Context) []models.Applicant

	// MoveApplicant moves an applicant to another stage, appending to its
	// stage history.
	MoveApplicant(ctx context.Context, req MoveApplicantRequest) error

	// AddNote appends a manual note to an applicant's case.
	AddNote(ctx context.Context, req AddNoteRequest) error

	// ToggleDocument flips one collected-document flag on the applicant or a
	// family member.
	ToggleDocument(ctx context.Context, req ToggleDocumentRequest) error

	// CompleteActionItem marks a free-text action item done; Uncomplete
	// reverses it.
	CompleteActionItem(ctx context.Context, applicantID, item string) error
	UncompleteActionItem(ctx context.Context, applicantID, item string) error

	// CorrectTimestamp is the explicit operator edit path for a stage
	// transition or manual note timestamp.
	CorrectTimestamp(ctx context.Context, req CorrectTimestampRequest) error

	// UpdateContact updates an applicant's contact fields.
	UpdateContact(ctx context.Context, req UpdateContactRequest) error

	// RemoveApplicant removes an applicant permanently. Terminal.
	RemoveApplicant(ctx context.Context, id string) error
}

// AddApplicantRequest contains parameters for adding an applicant.
type AddApplicantRequest struct {
	Name        string
	Unit        string
	HMISNumber  string
	Phone       string
	Email       string
	CaseManager string
}

// MoveApplicantRequest contains parameters for a stage move.
type MoveApplicantRequest struct {
	ApplicantID string
	ToStage     string
	MovedBy     string
	Note        string
}

// AddNoteRequest contains parameters for adding a manual note.
type AddNoteRequest struct {
	ApplicantID string
	Note        string
	NoteType    string // phone_call, email, outreach, general
	AddedBy     string
}

// ToggleDocumentRequest contains parameters for a document toggle.
// FamilyMemberID empty means the applicant's own documents.
type ToggleDocumentRequest struct {
	ApplicantID    string
	FamilyMemberID string
	Document       string // ssCard, birthCertificate, id
}

// CorrectTimestampRequest contains parameters for a timestamp correction.
// Exactly one of TransitionID or NoteID should be set.
type CorrectTimestampRequest struct {
	ApplicantID  string
	TransitionID string
	NoteID       string
	Timestamp    string // RFC3339
}

// UpdateContactRequest contains the contact fields to update. Empty fields
// are left unchanged.
type UpdateContactRequest struct {
	ApplicantID      string
	Phone            string
	Email            string
	Unit             string
	CaseManager      string
	CaseManagerPhone string
	CaseManagerEmail string
}
