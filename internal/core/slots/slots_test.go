package slots

import (
	"bytes"
	"testing"

	"github.com/example/casetrack/internal/checksum"
)

func TestApplyFirstWrite(t *testing.T) {
	v1 := []byte(`["one"]`)
	s := Apply(SlotSet{}, v1)

	if !bytes.Equal(s.Primary, v1) {
		t.Errorf("Primary = %s, want %s", s.Primary, v1)
	}
	if len(s.Backup) != 0 {
		t.Errorf("Backup after first write = %s, want empty", s.Backup)
	}
	if s.Version != 1 {
		t.Errorf("Version = %d, want 1", s.Version)
	}
	if s.Checksum != checksum.Sum(v1) {
		t.Errorf("Checksum = %q, want sum of primary", s.Checksum)
	}
}

func TestApplyBackupTrailsByOneGeneration(t *testing.T) {
	v1 := []byte(`["one"]`)
	v2 := []byte(`["two"]`)
	v3 := []byte(`["three"]`)

	s := Apply(SlotSet{}, v1)
	s = Apply(s, v2)

	if !bytes.Equal(s.Primary, v2) || !bytes.Equal(s.Backup, v1) {
		t.Errorf("after two saves: primary=%s backup=%s, want v2/v1", s.Primary, s.Backup)
	}

	s = Apply(s, v3)
	if !bytes.Equal(s.Primary, v3) || !bytes.Equal(s.Backup, v2) {
		t.Errorf("after three saves: primary=%s backup=%s, want v3/v2", s.Primary, s.Backup)
	}
	if s.Version != 3 {
		t.Errorf("Version = %d, want 3", s.Version)
	}
}

func TestRollback(t *testing.T) {
	v1 := []byte(`["one"]`)
	v2 := []byte(`["two"]`)

	s := Apply(Apply(SlotSet{}, v1), v2)
	restored, ok := Rollback(s)
	if !ok {
		t.Fatal("rollback should succeed with a backup present")
	}
	if !bytes.Equal(restored.Primary, v1) {
		t.Errorf("restored primary = %s, want %s", restored.Primary, v1)
	}
	if restored.Checksum != checksum.Sum(v1) {
		t.Error("rollback must leave checksum matching primary")
	}
	if restored.Version != s.Version+1 {
		t.Errorf("rollback version = %d, want %d (a new generation)", restored.Version, s.Version+1)
	}
	if !Verify(restored) {
		t.Error("rolled-back slot set must verify")
	}
}

func TestRollbackWithoutBackup(t *testing.T) {
	s := Apply(SlotSet{}, []byte(`["only"]`))
	same, ok := Rollback(s)
	if ok {
		t.Fatal("rollback without backup should report false")
	}
	if !bytes.Equal(same.Primary, s.Primary) || same.Version != s.Version {
		t.Error("failed rollback must leave the slot set unchanged")
	}
}

func TestVerify(t *testing.T) {
	v := []byte(`["value"]`)
	s := Apply(SlotSet{}, v)
	if !Verify(s) {
		t.Fatal("fresh write must verify")
	}

	corrupted := s
	corrupted.Primary = []byte(`["valuX"]`)
	if Verify(corrupted) {
		t.Error("mutated primary must fail verification")
	}

	legacy := SlotSet{Primary: v} // no checksum slot ever written
	if !Verify(legacy) {
		t.Error("missing checksum slot is not a failure")
	}
}
