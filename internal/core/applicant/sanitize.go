package applicant

import (
	"time"

	"github.com/example/casetrack/internal/core/stage"
	"github.com/example/casetrack/internal/models"
)

// Default actor names used when a record does not say who acted.
const (
	DefaultMover  = "System"
	DefaultAuthor = "Current User"
)

// DefaultName replaces a missing applicant name so repaired records
// re-validate clean instead of looping through the repair path on every load.
const DefaultName = "Unknown Applicant"

// IDPrefixes for generated identifiers.
const (
	IDPrefixApplicant = "applicant_"
	IDPrefixFamily    = "family_"
)

// Sanitize builds a clean Applicant from a possibly-malformed Raw record.
// It is total: every field gets a type-appropriate default when absent or
// malformed, a fresh id is generated when missing, a missing name becomes
// DefaultName, email fields that do not look like emails are dropped, and
// unparseable timestamps become now. Nested entries that lack the one thing
// that makes them meaningful (an id for history/notes, a name for family
// members) are dropped. The output always passes Validate, and for a record
// that already passes Validate, Sanitize is the identity.
//
// The caller supplies now and the id generator to keep this pure.
func Sanitize(r Raw, now time.Time, newID func(prefix string) string) models.Applicant {
	a := models.Applicant{
		ID:                   asString(r.ID),
		Name:                 asString(r.Name),
		CurrentStage:         asString(r.CurrentStage),
		Unit:                 asString(r.Unit),
		HMISNumber:           asString(r.HMISNumber),
		Phone:                asString(r.Phone),
		Email:                asString(r.Email),
		CaseManager:          asString(r.CaseManager),
		CaseManagerPhone:     asString(r.CaseManagerPhone),
		CaseManagerEmail:     asString(r.CaseManagerEmail),
		Documents:            sanitizeDocuments(r.Documents),
		FamilyMembers:        []models.FamilyMember{},
		StageHistory:         []models.StageTransition{},
		ManualNotes:          []models.ManualNote{},
		CompletedActionItems: []string{},
	}

	if a.ID == "" {
		a.ID = newID(IDPrefixApplicant)
	}
	if a.Name == "" {
		a.Name = DefaultName
	}
	if a.CurrentStage == "" {
		a.CurrentStage = stage.First()
	}
	if a.Email != "" && !validEmail(a.Email) {
		a.Email = ""
	}
	if a.CaseManagerEmail != "" && !validEmail(a.CaseManagerEmail) {
		a.CaseManagerEmail = ""
	}

	for _, entry := range asList(r.FamilyMembers) {
		m := asMap(entry)
		if asString(m["name"]) == "" {
			continue
		}
		id := asString(m["id"])
		if id == "" {
			id = newID(IDPrefixFamily)
		}
		a.FamilyMembers = append(a.FamilyMembers, models.FamilyMember{
			ID:           id,
			Name:         asString(m["name"]),
			Relationship: asString(m["relationship"]),
			Age:          asInt(m["age"]),
			HMISNumber:   asString(m["hmisNumber"]),
			Documents:    sanitizeDocuments(m["documents"]),
		})
	}

	for _, entry := range asList(r.StageHistory) {
		m := asMap(entry)
		if asString(m["id"]) == "" {
			continue
		}
		ts, ok := parseTime(m["timestamp"])
		if !ok {
			ts = now
		}
		movedBy := asString(m["movedBy"])
		if movedBy == "" {
			movedBy = DefaultMover
		}
		a.StageHistory = append(a.StageHistory, models.StageTransition{
			ID:        asString(m["id"]),
			FromStage: asString(m["fromStage"]),
			ToStage:   asString(m["toStage"]),
			Timestamp: ts,
			MovedBy:   movedBy,
			Note:      asString(m["note"]),
		})
	}

	for _, entry := range asList(r.ManualNotes) {
		m := asMap(entry)
		if asString(m["id"]) == "" {
			continue
		}
		ts, ok := parseTime(m["timestamp"])
		if !ok {
			ts = now
		}
		addedBy := asString(m["addedBy"])
		if addedBy == "" {
			addedBy = DefaultAuthor
		}
		noteType := asString(m["noteType"])
		if !models.ValidNoteType(noteType) {
			noteType = models.NoteTypeGeneral
		}
		a.ManualNotes = append(a.ManualNotes, models.ManualNote{
			ID:        asString(m["id"]),
			Timestamp: ts,
			AddedBy:   addedBy,
			Note:      asString(m["note"]),
			NoteType:  noteType,
		})
	}

	for _, item := range asList(r.CompletedActionItems) {
		if s := asString(item); s != "" {
			a.CompletedActionItems = append(a.CompletedActionItems, s)
		}
	}

	return a
}

func sanitizeDocuments(v any) models.DocumentSet {
	m := asMap(v)
	return models.DocumentSet{
		SSCard:           asBool(m["ssCard"]),
		BirthCertificate: asBool(m["birthCertificate"]),
		ID:               asBool(m["id"]),
	}
}
