package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/example/casetrack/internal/adapters/memory"
	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/secondary"
)

func TestSyncDeliversBetweenInstances(t *testing.T) {
	bus := memory.NewBus()
	ctx := context.Background()

	sender := NewSyncService(bus, logging.Nop(), time.Second)
	receiver := NewSyncService(bus, logging.Nop(), time.Second)

	var gotApplicants []models.Applicant
	var gotTemplates []models.EmailTemplate
	receiver.OnApplicants(func(a []models.Applicant) { gotApplicants = a })
	receiver.OnTemplates(func(tpl []models.EmailTemplate) { gotTemplates = tpl })
	if err := receiver.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	sender.PublishApplicants(ctx, []models.Applicant{testApplicant("applicant_1", "Ada")})
	if len(gotApplicants) != 1 || gotApplicants[0].Name != "Ada" {
		t.Errorf("received applicants = %v", gotApplicants)
	}

	sender.PublishTemplates(ctx, []models.EmailTemplate{{ID: "t1", Name: "Welcome"}})
	if len(gotTemplates) != 1 || gotTemplates[0].Name != "Welcome" {
		t.Errorf("received templates = %v", gotTemplates)
	}
}

func TestSyncDropsStaleMessages(t *testing.T) {
	bus := memory.NewBus()
	ctx := context.Background()

	receiver := NewSyncService(bus, logging.Nop(), time.Second)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	receiver.WithClock(func() time.Time { return base })

	calls := 0
	receiver.OnApplicants(func([]models.Applicant) { calls++ })
	if err := receiver.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	publishAt := func(sent time.Time) {
		data, _ := json.Marshal([]models.Applicant{testApplicant("applicant_1", "Ada")})
		bus.Publish(ctx, secondary.Message{
			Type: secondary.MessageTypeDataUpdate,
			Payload: secondary.Payload{
				Type:      secondary.PayloadTypeApplicants,
				Data:      data,
				Timestamp: sent.UnixMilli(),
			},
		})
	}

	publishAt(base.Add(-2 * time.Second))
	if calls != 0 {
		t.Error("stale message was dispatched")
	}

	// Exactly at the window boundary still counts as fresh.
	publishAt(base.Add(-time.Second))
	if calls != 1 {
		t.Errorf("boundary message calls = %d, want 1", calls)
	}

	publishAt(base)
	if calls != 2 {
		t.Errorf("fresh message calls = %d, want 2", calls)
	}
}

func TestSyncIgnoresUnknownMessages(t *testing.T) {
	bus := memory.NewBus()
	ctx := context.Background()

	receiver := NewSyncService(bus, logging.Nop(), time.Second)
	calls := 0
	receiver.OnApplicants(func([]models.Applicant) { calls++ })
	if err := receiver.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	now := time.Now().UnixMilli()
	bus.Publish(ctx, secondary.Message{Type: "presence-ping", Payload: secondary.Payload{Timestamp: now}})
	bus.Publish(ctx, secondary.Message{
		Type:    secondary.MessageTypeDataUpdate,
		Payload: secondary.Payload{Type: "unknown-kind", Data: []byte("{}"), Timestamp: now},
	})
	bus.Publish(ctx, secondary.Message{
		Type:    secondary.MessageTypeDataUpdate,
		Payload: secondary.Payload{Type: secondary.PayloadTypeApplicants, Data: []byte("not json"), Timestamp: now},
	})

	if calls != 0 {
		t.Errorf("unexpected dispatches: %d", calls)
	}
}
