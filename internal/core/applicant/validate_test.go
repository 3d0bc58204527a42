package applicant

import (
	"strings"
	"testing"
)

func TestValidateCompleteRecord(t *testing.T) {
	r := Raw{
		ID:           "applicant_1",
		Name:         "JS",
		CurrentStage: "awaiting-referral",
		Email:        "js@example.org",
		StageHistory: []any{
			map[string]any{"id": "t1", "timestamp": "2026-01-02T10:00:00Z"},
		},
		ManualNotes: []any{
			map[string]any{"id": "n1", "timestamp": "2026-01-03T10:00:00Z"},
		},
		FamilyMembers: []any{
			map[string]any{"id": "f1", "name": "AB"},
		},
	}

	res := Validate(r)
	if !res.Valid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	r := Raw{
		// id, name, currentStage all missing
		Email: "not-an-email",
		StageHistory: []any{
			map[string]any{"timestamp": "garbage"}, // missing id AND bad timestamp
		},
		ManualNotes: []any{
			map[string]any{"id": "n1", "timestamp": 12345},
		},
		FamilyMembers: []any{
			map[string]any{"id": "f1"}, // missing name
		},
	}

	res := Validate(r)
	if res.Valid {
		t.Fatal("expected invalid")
	}

	// Non-short-circuiting: one error per violation, all present at once.
	want := []string{
		"missing or invalid applicant ID",
		"missing or invalid applicant name",
		"missing or invalid current stage",
		"invalid email format",
		"stage history entry 1 missing ID",
		"stage history entry 1 has invalid timestamp",
		"manual note 1 has invalid timestamp",
		"family member 1 missing name",
	}
	joined := strings.Join(res.Errors, "\n")
	for _, w := range want {
		if !strings.Contains(joined, w) {
			t.Errorf("missing expected error %q in:\n%s", w, joined)
		}
	}
	if len(res.Errors) != len(want) {
		t.Errorf("got %d errors, want %d: %v", len(res.Errors), len(want), res.Errors)
	}
}

func TestValidateNonArrayNestedFields(t *testing.T) {
	// Nested collections that are not arrays are treated as absent, not as
	// violations; the record itself can still be valid.
	r := Raw{
		ID:            "a1",
		Name:          "JS",
		CurrentStage:  "awaiting-referral",
		StageHistory:  "not-an-array",
		ManualNotes:   42,
		FamilyMembers: map[string]any{"id": "f1"},
	}

	res := Validate(r)
	if !res.Valid {
		t.Errorf("expected valid when nested collections are malformed wholesale, got %v", res.Errors)
	}
}

func TestValidateOptionalEmails(t *testing.T) {
	tests := []struct {
		name  string
		email any
		valid bool
	}{
		{"absent", nil, true},
		{"empty", "", true},
		{"well formed", "cm@example.org", true},
		{"no at sign", "cm.example.org", false},
		{"spaces", "cm @example.org", false},
		{"non string", 7, true}, // coerced to "", treated as absent
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Raw{ID: "a1", Name: "JS", CurrentStage: "s", CaseManagerEmail: tt.email}
			res := Validate(r)
			if res.Valid != tt.valid {
				t.Errorf("valid = %v, want %v (errors: %v)", res.Valid, tt.valid, res.Errors)
			}
		})
	}
}

func TestValidateTimestampForms(t *testing.T) {
	tests := []struct {
		name  string
		ts    any
		valid bool
	}{
		{"rfc3339", "2026-01-02T10:00:00Z", true},
		{"rfc3339 nano", "2026-01-02T10:00:00.123456789Z", true},
		{"date only", "2026-01-02", true},
		{"no zone", "2026-01-02T10:00:00", true},
		{"garbage", "last tuesday", false},
		{"number", 1700000000.0, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Raw{
				ID: "a1", Name: "JS", CurrentStage: "s",
				StageHistory: []any{map[string]any{"id": "t1", "timestamp": tt.ts}},
			}
			res := Validate(r)
			if res.Valid != tt.valid {
				t.Errorf("valid = %v, want %v (errors: %v)", res.Valid, tt.valid, res.Errors)
			}
		})
	}
}
