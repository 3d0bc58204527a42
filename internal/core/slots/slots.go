// Package slots contains the pure two-slot versioned-value logic behind the
// persistent store. This is part of the Functional Core - no I/O, only pure
// functions. A logical key owns a current value, the one-generation-prior
// value, a monotonic version counter, and a checksum over the current value's
// exact bytes.
package slots

import "github.com/example/casetrack/internal/checksum"

// SlotSet is the full persisted state of one logical key.
type SlotSet struct {
	Primary  []byte
	Backup   []byte
	Version  int
	Checksum string
}

// Apply produces the slot state after writing value: the old primary becomes
// the backup, the checksum covers the new primary's exact bytes, and the
// version advances by one. When the key was empty, the backup stays empty.
func Apply(s SlotSet, value []byte) SlotSet {
	next := SlotSet{
		Primary:  value,
		Backup:   s.Backup,
		Version:  s.Version + 1,
		Checksum: checksum.Sum(value),
	}
	if len(s.Primary) > 0 {
		next.Backup = s.Primary
	}
	return next
}

// Rollback restores the primary slot from the backup slot. It reports false
// when there is no backup to restore from; the slot state is returned
// unchanged in that case. The version counter is not rewound: a rollback is a
// new generation of the value.
func Rollback(s SlotSet) (SlotSet, bool) {
	if len(s.Backup) == 0 {
		return s, false
	}
	return SlotSet{
		Primary:  s.Backup,
		Backup:   s.Backup,
		Version:  s.Version + 1,
		Checksum: checksum.Sum(s.Backup),
	}, true
}

// Verify reports whether the primary slot's bytes match the stored checksum.
// An empty checksum slot is not a failure: data written before checksumming
// existed has nothing to compare against.
func Verify(s SlotSet) bool {
	if s.Checksum == "" {
		return true
	}
	return checksum.Sum(s.Primary) == s.Checksum
}
