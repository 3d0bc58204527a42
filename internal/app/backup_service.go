package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/ports/secondary"
)

// Backup scheduler defaults.
const (
	DefaultBackupInterval = 5 * time.Minute
	DefaultBackupRetain   = 10
)

// BackupService takes rotating full-state snapshots and writes emergency
// export files. Snapshots live in the same byte store as the slots, under the
// auto-backup key prefix.
type BackupService struct {
	store     primary.Store
	bytes     secondary.ByteStore
	notifier  secondary.Notifier
	log       *logging.Logger
	interval  time.Duration
	retain    int
	exportDir string
	now       func() time.Time
}

// NewBackupService creates the scheduler. interval and retain fall back to the
// defaults when zero.
func NewBackupService(store primary.Store, bytes secondary.ByteStore, notifier secondary.Notifier, log *logging.Logger, interval time.Duration, retain int, exportDir string) *BackupService {
	if interval <= 0 {
		interval = DefaultBackupInterval
	}
	if retain <= 0 {
		retain = DefaultBackupRetain
	}
	return &BackupService{
		store:     store,
		bytes:     bytes,
		notifier:  notifier,
		log:       log.With("service", "backup"),
		interval:  interval,
		retain:    retain,
		exportDir: exportDir,
		now:       time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *BackupService) WithClock(now func() time.Time) *BackupService {
	s.now = now
	return s
}

// RunIfDue snapshots when the interval has elapsed since the last run.
func (s *BackupService) RunIfDue(ctx context.Context) bool {
	last := s.lastRun(ctx)
	nowMillis := s.now().UnixMilli()
	if nowMillis-last < s.interval.Milliseconds() {
		return false
	}
	if err := s.Run(ctx); err != nil {
		s.log.Error("scheduled backup failed", "error", err)
		return false
	}
	return true
}

// Run takes a snapshot unconditionally and prunes the archive down to the
// retention cap.
func (s *BackupService) Run(ctx context.Context) error {
	now := s.now()
	snapshot := models.Snapshot{
		Timestamp:        now.UTC().Format(time.RFC3339),
		Applicants:       []models.Applicant{},
		EmailTemplates:   []models.EmailTemplate{},
		StageInformation: []models.StageInfo{},
		// The applicants version counter, so a snapshot's recency can be
		// judged against the live store.
		Version: strconv.Itoa(s.store.Version(ctx, primary.KeyApplicants)),
	}
	s.store.Load(ctx, primary.KeyApplicants, &snapshot.Applicants)
	s.store.Load(ctx, primary.KeyTemplates, &snapshot.EmailTemplates)
	s.store.Load(ctx, primary.KeyStageInfo, &snapshot.StageInformation)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("serializing snapshot: %w", err)
	}

	key := primary.AutoBackupPrefix + strconv.FormatInt(now.UnixMilli(), 10)
	if err := s.bytes.Put(ctx, key, data); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", key, err)
	}
	if err := s.prune(ctx); err != nil {
		return err
	}
	if err := s.bytes.Put(ctx, primary.LastBackupTimeKey, []byte(strconv.FormatInt(now.UnixMilli(), 10))); err != nil {
		return fmt.Errorf("recording backup time: %w", err)
	}

	s.log.Info("auto backup completed", "key", key, "applicants", len(snapshot.Applicants))
	return nil
}

// Start runs the scheduler until ctx is cancelled. It checks once immediately
// so a freshly started instance with a stale marker backs up right away.
func (s *BackupService) Start(ctx context.Context) {
	s.RunIfDue(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunIfDue(ctx)
		}
	}
}

// List returns the retained snapshots, newest first. Snapshots that no longer
// parse are skipped with a log entry rather than failing the whole listing.
func (s *BackupService) List(ctx context.Context) ([]models.RetainedBackup, error) {
	keys, err := s.bytes.Keys(ctx, primary.AutoBackupPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	sortArchiveKeysNewestFirst(keys)

	backups := make([]models.RetainedBackup, 0, len(keys))
	for _, key := range keys {
		data, err := s.bytes.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("reading backup %s: %w", key, err)
		}
		var snap models.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			s.log.Warn("skipping unreadable backup", "key", key, "error", err)
			continue
		}
		backups = append(backups, models.RetainedBackup{Key: key, Data: snap})
	}
	return backups, nil
}

// ExportNow writes the emergency export file: current state plus every
// retained snapshot. An empty filename picks the timestamped default.
func (s *BackupService) ExportNow(ctx context.Context, filename string) (string, error) {
	now := s.now()
	bundle := models.ExportBundle{
		Timestamp:        now.UTC().Format(time.RFC3339),
		Applicants:       []models.Applicant{},
		EmailTemplates:   []models.EmailTemplate{},
		StageInformation: []models.StageInfo{},
	}
	s.store.Load(ctx, primary.KeyApplicants, &bundle.Applicants)
	s.store.Load(ctx, primary.KeyTemplates, &bundle.EmailTemplates)
	s.store.Load(ctx, primary.KeyStageInfo, &bundle.StageInformation)

	retained, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	bundle.AutoBackups = retained

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing export: %w", err)
	}

	if filename == "" {
		stamp := strings.ReplaceAll(now.UTC().Format(time.RFC3339), ":", "-")
		filename = fmt.Sprintf("psh-tracker-emergency-backup-%s.json", stamp)
	}
	path := filepath.Join(s.exportDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.notifier.Notify("Emergency export failed. Please try a different location.", secondary.SeverityError)
		return "", fmt.Errorf("writing export file: %w", err)
	}

	s.notifier.Notify("Emergency backup exported successfully.", secondary.SeveritySuccess)
	s.log.Info("emergency export written", "path", path)
	return path, nil
}

func (s *BackupService) lastRun(ctx context.Context) int64 {
	raw, err := s.bytes.Get(ctx, primary.LastBackupTimeKey)
	if err != nil || len(raw) == 0 {
		return 0
	}
	last, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return last
}

// prune deletes the oldest snapshots beyond the retention cap.
func (s *BackupService) prune(ctx context.Context) error {
	keys, err := s.bytes.Keys(ctx, primary.AutoBackupPrefix)
	if err != nil {
		return fmt.Errorf("listing backups for pruning: %w", err)
	}
	if len(keys) <= s.retain {
		return nil
	}
	sortArchiveKeysNewestFirst(keys)
	for _, key := range keys[s.retain:] {
		if err := s.bytes.Delete(ctx, key); err != nil {
			return fmt.Errorf("pruning backup %s: %w", key, err)
		}
		s.log.Debug("pruned old backup", "key", key)
	}
	return nil
}

// sortArchiveKeysNewestFirst orders archive keys by their millisecond suffix,
// descending. Keys with a non-numeric suffix sort last.
func sortArchiveKeysNewestFirst(keys []string) {
	stamp := func(key string) int64 {
		raw := strings.TrimPrefix(key, primary.AutoBackupPrefix)
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return -1
		}
		return ts
	}
	sort.Slice(keys, func(i, j int) bool {
		return stamp(keys[i]) > stamp(keys[j])
	})
}

var _ primary.Backup = (*BackupService)(nil)
