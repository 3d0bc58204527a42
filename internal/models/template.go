package models

// EmailTemplate is a stored template for stage-related correspondence.
// Composition and sending happen outside this tool.
type EmailTemplate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	StageID    string   `json:"stageId,omitempty"`
	Recipients []string `json:"recipients"`
}
