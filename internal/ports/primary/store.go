// Package primary defines the primary ports (driving interfaces) for the application.
package primary

import "context"

// Logical keys owned by the persistent store, and the physical-slot suffixes
// and archive prefixes they expand to in the byte store.
const (
	KeyApplicants = "psh-tracker-applicants"
	KeyTemplates  = "psh-tracker-email-templates"
	KeyStageInfo  = "psh-tracker-stage-information"

	BackupSuffix   = "_backup"
	VersionSuffix  = "_version"
	ChecksumSuffix = "_checksum"

	AutoBackupPrefix  = "psh-tracker-auto-backup-"
	LastBackupTimeKey = "psh-tracker-last-backup-time"
)

// LogicalKeys returns the three logical keys in snapshot order.
func LogicalKeys() []string {
	return []string{KeyApplicants, KeyTemplates, KeyStageInfo}
}

// Store is the resilient persistence core. Neither operation ever fails past
// this boundary: every degraded path ends in backup data, sanitized data, or
// the caller's default, with a user notification on the way.
type Store interface {
	// Save validates (applicants only), serializes, checksums, and writes
	// value under key, preserving the previous value in the backup slot. It
	// reports whether the write landed; on failure the previous value has
	// been restored when a backup existed.
	Save(ctx context.Context, key string, value any) bool

	// Load reads key into out, which must be a pointer pre-filled with the
	// caller's default. Checksum mismatches and parse failures recover from
	// the backup slot when possible. It reports whether out now holds stored
	// data (true) or the untouched default (false).
	Load(ctx context.Context, key string, out any) bool

	// Version returns the current version counter for key, zero when unset.
	Version(ctx context.Context, key string) int
}
