// Package applicant contains the pure business logic for applicant records.
// This is part of the Functional Core - no I/O, only pure functions.
//
// Data arriving from the storage boundary is untrusted: it deserializes only
// into Raw, and the sole way a Raw becomes a models.Applicant is through
// Sanitize (or by failing Validate and being repaired by Sanitize). The rest
// of the system never consumes unverified data.
package applicant

import (
	"encoding/json"
	"time"
)

// Raw is an unverified applicant-shaped record. Every field is loosely typed
// because the serialized form may be malformed in arbitrary ways.
type Raw struct {
	ID                   any `json:"id"`
	Name                 any `json:"name"`
	CurrentStage         any `json:"currentStage"`
	Unit                 any `json:"unit"`
	HMISNumber           any `json:"hmisNumber"`
	Phone                any `json:"phone"`
	Email                any `json:"email"`
	CaseManager          any `json:"caseManager"`
	CaseManagerPhone     any `json:"caseManagerPhone"`
	CaseManagerEmail     any `json:"caseManagerEmail"`
	Documents            any `json:"documents"`
	FamilyMembers        any `json:"familyMembers"`
	StageHistory         any `json:"stageHistory"`
	ManualNotes          any `json:"manualNotes"`
	CompletedActionItems any `json:"completedActionItems"`
}

// timeLayouts are the accepted serialized timestamp forms. RFC3339 covers
// everything this tool writes; the others tolerate hand-edited or migrated
// data.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// asString returns v as a string, or "" when v is not a string.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asBool coerces v to a bool using JSON truthiness: true stays true,
// everything else is false.
func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asInt coerces a JSON number to int, zero on anything else.
func asInt(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}

// asList returns v as a list, nil when v is not an array.
func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

// asMap returns v as an object, nil when v is not one.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// parseTime parses a serialized timestamp. ok is false for non-strings and
// unparseable strings.
func parseTime(v any) (time.Time, bool) {
	s, isStr := v.(string)
	if !isStr || s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DecodeList deserializes a JSON array of applicant-shaped records into Raw
// values. The outer array must be well-formed JSON; element contents may be
// arbitrarily malformed.
func DecodeList(data []byte) ([]Raw, error) {
	var raws []Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}
