package models

// Snapshot is a point-in-time bundle of all logical keys, produced by the
// backup scheduler. The store's own rollback path never reads snapshots; it
// uses the per-key backup slot.
type Snapshot struct {
	Timestamp        string          `json:"timestamp"`
	Applicants       []Applicant     `json:"applicants"`
	EmailTemplates   []EmailTemplate `json:"emailTemplates"`
	StageInformation []StageInfo     `json:"stageInformation"`
	Version          string          `json:"version"`
}

// ExportBundle is the emergency-export file payload: current state plus every
// retained auto-backup snapshot.
type ExportBundle struct {
	Timestamp        string           `json:"timestamp"`
	Applicants       []Applicant      `json:"applicants"`
	EmailTemplates   []EmailTemplate  `json:"emailTemplates"`
	StageInformation []StageInfo      `json:"stageInformation"`
	AutoBackups      []RetainedBackup `json:"autoBackups"`
}

// RetainedBackup pairs an auto-backup archive key with its snapshot.
type RetainedBackup struct {
	Key  string   `json:"key"`
	Data Snapshot `json:"data"`
}
