// Package app contains the service implementations behind the primary ports.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/example/casetrack/internal/core/applicant"
	"github.com/example/casetrack/internal/core/slots"
	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/ports/secondary"
)

var errRollbackWrite = errors.New("rollback write failed")

// StoreService implements primary.Store over a ByteStore. Every failure path
// ends degraded but non-fatal: the caller gets stored data, backup data,
// sanitized data, or its own default, plus a user notification, never an
// error.
type StoreService struct {
	bytes    secondary.ByteStore
	notifier secondary.Notifier
	log      *logging.Logger
	now      func() time.Time
	newID    func(prefix string) string
}

// NewStoreService creates the persistent store with injected dependencies.
func NewStoreService(bytes secondary.ByteStore, notifier secondary.Notifier, log *logging.Logger) *StoreService {
	return &StoreService{
		bytes:    bytes,
		notifier: notifier,
		log:      log.With("service", "store"),
		now:      time.Now,
		newID:    func(prefix string) string { return prefix + uuid.NewString() },
	}
}

// WithClock overrides the time source, for tests.
func (s *StoreService) WithClock(now func() time.Time) *StoreService {
	s.now = now
	return s
}

// WithIDGenerator overrides the id generator, for tests.
func (s *StoreService) WithIDGenerator(gen func(prefix string) string) *StoreService {
	s.newID = gen
	return s
}

// Save persists value under key. Applicant lists are repaired element-wise
// before serialization; the previous primary becomes the backup slot; primary,
// checksum, and version are written in that order. A failed write rolls the
// primary back from the backup slot when one exists.
func (s *StoreService) Save(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error("serialize failed", "key", key, "error", err)
		return s.failSave(ctx, key)
	}

	if key == primary.KeyApplicants {
		repaired, ok := s.repairApplicantBytes(data)
		if !ok {
			return s.failSave(ctx, key)
		}
		data = repaired
	}

	cur, err := s.readSlots(ctx, key)
	if err != nil {
		s.log.Error("read slots failed", "key", key, "error", err)
		return s.failSave(ctx, key)
	}

	if err := s.writeSlots(ctx, key, slots.Apply(cur, data)); err != nil {
		s.log.Error("write failed", "key", key, "error", err)
		return s.failSave(ctx, key)
	}

	return true
}

// Load reads key into out, a pointer pre-filled with the caller's default.
func (s *StoreService) Load(ctx context.Context, key string, out any) bool {
	cur, err := s.readSlots(ctx, key)
	if err != nil {
		s.log.Error("read slots failed", "key", key, "error", err)
		return s.recoverLoad(ctx, key, out)
	}
	if len(cur.Primary) == 0 {
		return false
	}

	data := cur.Primary
	if !slots.Verify(cur) {
		s.log.Warn("integrity check failed, attempting backup recovery", "key", key)
		if restored, ok := slots.Rollback(cur); ok {
			// Rewrite the slots so the next load sees clean state. A failure
			// here is not fatal: we still have the backup bytes in hand.
			if err := s.writeSlots(ctx, key, restored); err != nil {
				s.log.Error("failed to persist recovered slots", "key", key, "error", err)
			}
			s.notifier.Notify("Data corruption detected and recovered from backup.", secondary.SeverityWarning)
			data = restored.Primary
		} else {
			s.notifier.Notify("Data corruption detected with no available backup. Using current data but please export immediately!", secondary.SeverityError)
		}
	}

	if key == primary.KeyApplicants {
		applicants, ok := s.parseApplicants(data)
		if !ok {
			return s.recoverLoad(ctx, key, out)
		}
		return assign(out, applicants)
	}

	if !unmarshalInto(data, out) {
		return s.recoverLoad(ctx, key, out)
	}
	return true
}

// Version returns the version counter for key, zero when unset.
func (s *StoreService) Version(ctx context.Context, key string) int {
	cur, err := s.readSlots(ctx, key)
	if err != nil {
		return 0
	}
	return cur.Version
}

// failSave attempts a rollback from the backup slot and notifies the
// operator. Always returns false.
func (s *StoreService) failSave(ctx context.Context, key string) bool {
	cur, err := s.readSlots(ctx, key)
	if err == nil {
		if restored, ok := slots.Rollback(cur); ok {
			if werr := s.writeSlots(ctx, key, restored); werr == nil {
				s.notifier.Notify("Save failed, but data was restored from backup. Please try again.", secondary.SeverityWarning)
				return false
			}
			err = errRollbackWrite
		} else {
			s.notifier.Notify("Critical: Save failed and no backup available. Please export your data immediately!", secondary.SeverityError)
			return false
		}
	}
	s.log.Error("rollback failed", "key", key, "error", err)
	s.notifier.Notify("Critical: Save and rollback both failed. Data may be at risk!", secondary.SeverityError)
	return false
}

// recoverLoad parses the backup slot directly as a last resort.
func (s *StoreService) recoverLoad(ctx context.Context, key string, out any) bool {
	backup, err := s.bytes.Get(ctx, key+primary.BackupSuffix)
	if err == nil && len(backup) > 0 {
		recovered := false
		if key == primary.KeyApplicants {
			if applicants, ok := s.parseApplicants(backup); ok {
				recovered = assign(out, applicants)
			}
		} else {
			recovered = unmarshalInto(backup, out)
		}
		if recovered {
			s.notifier.Notify("Primary data load failed, recovered from backup.", secondary.SeverityWarning)
			return true
		}
	}
	s.notifier.Notify("Unable to load data. Starting fresh but please check your exports!", secondary.SeverityError)
	return false
}

// repairApplicantBytes runs the validate/sanitize repair over a serialized
// applicant list and reserializes it.
func (s *StoreService) repairApplicantBytes(data []byte) ([]byte, bool) {
	raws, err := applicant.DecodeList(data)
	if err != nil {
		s.log.Error("applicant list did not decode", "error", err)
		return nil, false
	}

	applicants := make([]models.Applicant, 0, len(raws))
	for _, r := range raws {
		res := applicant.Validate(r)
		if !res.Valid {
			s.log.Warn("applicant validation failed, sanitizing", "name", nameOf(r), "errors", res.Errors)
		}
		applicants = append(applicants, applicant.Sanitize(r, s.now(), s.newID))
	}

	repaired, err := json.Marshal(applicants)
	if err != nil {
		s.log.Error("repaired applicant list did not serialize", "error", err)
		return nil, false
	}
	return repaired, true
}

// parseApplicants deserializes an applicant list, reconstructing timestamps
// and repairing invalid elements, mirroring the write-path repair.
func (s *StoreService) parseApplicants(data []byte) ([]models.Applicant, bool) {
	raws, err := applicant.DecodeList(data)
	if err != nil {
		s.log.Error("stored applicant list did not parse", "error", err)
		return nil, false
	}

	applicants := make([]models.Applicant, 0, len(raws))
	for _, r := range raws {
		res := applicant.Validate(r)
		if !res.Valid {
			s.log.Warn("loaded corrupted applicant data, auto-fixing", "name", nameOf(r), "errors", res.Errors)
		}
		applicants = append(applicants, applicant.Sanitize(r, s.now(), s.newID))
	}
	return applicants, true
}

func (s *StoreService) readSlots(ctx context.Context, key string) (slots.SlotSet, error) {
	var set slots.SlotSet
	var err error

	if set.Primary, err = s.bytes.Get(ctx, key); err != nil {
		return set, err
	}
	if set.Backup, err = s.bytes.Get(ctx, key+primary.BackupSuffix); err != nil {
		return set, err
	}

	rawVersion, err := s.bytes.Get(ctx, key+primary.VersionSuffix)
	if err != nil {
		return set, err
	}
	if v, convErr := strconv.Atoi(string(rawVersion)); convErr == nil {
		set.Version = v
	}

	rawSum, err := s.bytes.Get(ctx, key+primary.ChecksumSuffix)
	if err != nil {
		return set, err
	}
	set.Checksum = string(rawSum)

	return set, nil
}

func (s *StoreService) writeSlots(ctx context.Context, key string, set slots.SlotSet) error {
	if len(set.Backup) > 0 {
		if err := s.bytes.Put(ctx, key+primary.BackupSuffix, set.Backup); err != nil {
			return err
		}
	}
	if err := s.bytes.Put(ctx, key, set.Primary); err != nil {
		return err
	}
	if err := s.bytes.Put(ctx, key+primary.ChecksumSuffix, []byte(set.Checksum)); err != nil {
		return err
	}
	return s.bytes.Put(ctx, key+primary.VersionSuffix, []byte(strconv.Itoa(set.Version)))
}

func nameOf(r applicant.Raw) string {
	if name, ok := r.Name.(string); ok && name != "" {
		return name
	}
	return "Unknown"
}

// unmarshalInto parses data into a fresh value of out's type, assigning only
// on success so a failed parse never leaves the caller's default half-filled.
func unmarshalInto(data []byte, out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false
	}
	tmp := reflect.New(target.Type().Elem())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		return false
	}
	target.Elem().Set(tmp.Elem())
	return true
}

// assign stores applicants into out when out is *[]models.Applicant; other
// targets fall back to a JSON round-trip.
func assign(out any, applicants []models.Applicant) bool {
	if dst, ok := out.(*[]models.Applicant); ok {
		*dst = applicants
		return true
	}
	data, err := json.Marshal(applicants)
	if err != nil {
		return false
	}
	return unmarshalInto(data, out)
}

// Ensure StoreService implements the interface
var _ primary.Store = (*StoreService)(nil)
