// Package models contains the domain entities tracked by casetrack.
package models

import "time"

// Note types
const (
	NoteTypePhoneCall = "phone_call"
	NoteTypeEmail     = "email"
	NoteTypeOutreach  = "outreach"
	NoteTypeGeneral   = "general"
)

// DocumentSet tracks the three documents collected for a person.
type DocumentSet struct {
	SSCard           bool `json:"ssCard"`
	BirthCertificate bool `json:"birthCertificate"`
	ID               bool `json:"id"`
}

// FamilyMember is a household member attached to an applicant.
type FamilyMember struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Relationship string      `json:"relationship"`
	Age          int         `json:"age"`
	HMISNumber   string      `json:"hmisNumber"`
	Documents    DocumentSet `json:"documents"`
}

// StageTransition records one move between workflow stages. Immutable once
// created except for operator-initiated timestamp correction.
type StageTransition struct {
	ID        string    `json:"id"`
	FromStage string    `json:"fromStage"`
	ToStage   string    `json:"toStage"`
	Timestamp time.Time `json:"timestamp"`
	MovedBy   string    `json:"movedBy"`
	Note      string    `json:"note,omitempty"`
}

// ManualNote is an operator-entered note on an applicant's case.
type ManualNote struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	AddedBy   string    `json:"addedBy"`
	Note      string    `json:"note"`
	NoteType  string    `json:"noteType"`
}

// Applicant is a housing applicant moving through the workflow. Values of
// this type come either from explicit construction by the tracker service or
// from applicant.Sanitize; arbitrary deserialized data never lands here
// directly.
type Applicant struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	CurrentStage         string            `json:"currentStage"`
	Unit                 string            `json:"unit"`
	HMISNumber           string            `json:"hmisNumber"`
	Phone                string            `json:"phone"`
	Email                string            `json:"email"`
	CaseManager          string            `json:"caseManager"`
	CaseManagerPhone     string            `json:"caseManagerPhone"`
	CaseManagerEmail     string            `json:"caseManagerEmail"`
	Documents            DocumentSet       `json:"documents"`
	FamilyMembers        []FamilyMember    `json:"familyMembers"`
	StageHistory         []StageTransition `json:"stageHistory"`
	ManualNotes          []ManualNote      `json:"manualNotes"`
	CompletedActionItems []string          `json:"completedActionItems"`
}

// ValidNoteType reports whether t is one of the known note types.
func ValidNoteType(t string) bool {
	switch t {
	case NoteTypePhoneCall, NoteTypeEmail, NoteTypeOutreach, NoteTypeGeneral:
		return true
	}
	return false
}
