package models

// StageDocument describes a document associated with a workflow stage.
type StageDocument struct {
	Name        string `json:"name"`
	Filename    string `json:"filename"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// Stakeholders names the parties responsible during a stage.
type Stakeholders struct {
	Primary    string   `json:"primary"`
	Supporting []string `json:"supporting"`
}

// StageInfo is the operator-facing reference material for one workflow stage.
type StageInfo struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Duration        string          `json:"duration"`
	KeyStakeholders Stakeholders    `json:"keyStakeholders"`
	RequiredActions []string        `json:"requiredActions"`
	CommonDelays    []string        `json:"commonDelays"`
	NextSteps       string          `json:"nextSteps"`
	Tips            []string        `json:"tips"`
	Documents       []StageDocument `json:"documents,omitempty"`
}
