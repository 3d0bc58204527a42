package applicant

import (
	"fmt"
	"regexp"
)

// Result is the outcome of validating a Raw record.
type Result struct {
	Valid  bool
	Errors []string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate checks a Raw record for structural validity. It collects every
// violation rather than failing fast, so a log line shows the full damage.
func Validate(r Raw) Result {
	var errs []string

	if asString(r.ID) == "" {
		errs = append(errs, "missing or invalid applicant ID")
	}
	if asString(r.Name) == "" {
		errs = append(errs, "missing or invalid applicant name")
	}
	if asString(r.CurrentStage) == "" {
		errs = append(errs, "missing or invalid current stage")
	}

	if email := asString(r.Email); email != "" && !validEmail(email) {
		errs = append(errs, "invalid email format")
	}
	if email := asString(r.CaseManagerEmail); email != "" && !validEmail(email) {
		errs = append(errs, "invalid case manager email format")
	}

	for i, entry := range asList(r.StageHistory) {
		m := asMap(entry)
		if asString(m["id"]) == "" {
			errs = append(errs, fmt.Sprintf("stage history entry %d missing ID", i+1))
		}
		if _, ok := parseTime(m["timestamp"]); !ok {
			errs = append(errs, fmt.Sprintf("stage history entry %d has invalid timestamp", i+1))
		}
	}

	for i, entry := range asList(r.ManualNotes) {
		m := asMap(entry)
		if asString(m["id"]) == "" {
			errs = append(errs, fmt.Sprintf("manual note %d missing ID", i+1))
		}
		if _, ok := parseTime(m["timestamp"]); !ok {
			errs = append(errs, fmt.Sprintf("manual note %d has invalid timestamp", i+1))
		}
	}

	for i, entry := range asList(r.FamilyMembers) {
		m := asMap(entry)
		if asString(m["id"]) == "" {
			errs = append(errs, fmt.Sprintf("family member %d missing ID", i+1))
		}
		if asString(m["name"]) == "" {
			errs = append(errs, fmt.Sprintf("family member %d missing name", i+1))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
