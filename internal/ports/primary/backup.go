package primary

import (
	"context"

	"github.com/example/casetrack/internal/models"
)

// Backup is the rotating-snapshot scheduler and the emergency export path.
type Backup interface {
	// RunIfDue snapshots all logical keys when the configured interval has
	// elapsed since the last run. It reports whether a snapshot was taken.
	RunIfDue(ctx context.Context) bool

	// Run takes a snapshot unconditionally and prunes the archive.
	Run(ctx context.Context) error

	// Start runs the scheduler on a ticker until ctx is cancelled.
	Start(ctx context.Context)

	// List returns the retained auto-backup snapshots, newest first.
	List(ctx context.Context) ([]models.RetainedBackup, error)

	// ExportNow writes the full-state emergency export file and returns its
	// path. An empty filename picks the timestamped default.
	ExportNow(ctx context.Context, filename string) (string, error)
}

// Sync wires the sync bus into in-memory state. Receivers registered through
// On* observe updates from sibling instances, subject to the staleness window.
type Sync interface {
	// PublishApplicants broadcasts the applicant list after a successful save.
	PublishApplicants(ctx context.Context, applicants []models.Applicant)

	// PublishTemplates broadcasts the template list.
	PublishTemplates(ctx context.Context, templates []models.EmailTemplate)

	// PublishStageInfo broadcasts the stage-information list.
	PublishStageInfo(ctx context.Context, infos []models.StageInfo)

	// OnApplicants registers the receiver for applicant updates.
	OnApplicants(fn func([]models.Applicant))

	// OnTemplates registers the receiver for template updates.
	OnTemplates(fn func([]models.EmailTemplate))

	// OnStageInfo registers the receiver for stage-information updates.
	OnStageInfo(fn func([]models.StageInfo))

	// Start subscribes to the bus; received messages are dispatched to the
	// registered receivers until ctx is cancelled.
	Start(ctx context.Context) error
}

// MigrateReport summarizes a local-to-mirror migration.
type MigrateReport struct {
	Applicants int
	Templates  int
	StageInfos int
}

// Mirror pushes local state into the remote relational mirror. All operations
// are best-effort from the tracker's point of view; only Migrate reports hard
// errors.
type Mirror interface {
	// Enabled reports whether a mirror backend is configured.
	Enabled() bool

	// MirrorApplicants upserts the applicant list, logging failures.
	MirrorApplicants(ctx context.Context, applicants []models.Applicant)

	// MirrorRemoveApplicant deletes an applicant row, logging failures.
	MirrorRemoveApplicant(ctx context.Context, id string)

	// Migrate pushes all three logical keys to the mirror.
	Migrate(ctx context.Context) (*MigrateReport, error)
}
