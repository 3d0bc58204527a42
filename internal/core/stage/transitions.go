package stage

import (
	"time"

	"github.com/example/casetrack/internal/models"
)

// NewTransition builds the stage-history entry for a move between stages.
// The caller supplies the current time and a generated id to keep this pure.
func NewTransition(id, fromStage, toStage, movedBy, note string, now time.Time) models.StageTransition {
	if movedBy == "" {
		movedBy = "System"
	}
	return models.StageTransition{
		ID:        id,
		FromStage: fromStage,
		ToStage:   toStage,
		Timestamp: now,
		MovedBy:   movedBy,
		Note:      note,
	}
}

// InitialTransition is the seed history entry recorded when an applicant is
// first added to the board.
func InitialTransition(id string, now time.Time) models.StageTransition {
	return models.StageTransition{
		ID:        id,
		FromStage: "",
		ToStage:   First(),
		Timestamp: now,
		MovedBy:   "System",
		Note:      "Applicant added to system",
	}
}
