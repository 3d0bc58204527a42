package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/models"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/ports/secondary"
)

// DefaultStalenessWindow is how old a sync message may be before it is
// dropped. Messages crossing the bus slower than this lose silently; the
// window is a tradeoff against replaying stale state after a reconnect.
const DefaultStalenessWindow = time.Second

// SyncService bridges the sync bus and the registered in-memory receivers.
// The bus delivers every message to every subscriber, including the sender,
// so receivers must tolerate being handed the state they just published.
type SyncService struct {
	bus       secondary.Bus
	log       *logging.Logger
	staleness time.Duration
	now       func() time.Time

	mu           sync.Mutex
	onApplicants []func([]models.Applicant)
	onTemplates  []func([]models.EmailTemplate)
	onStageInfo  []func([]models.StageInfo)
}

// NewSyncService creates the sync bridge. staleness falls back to the default
// window when zero.
func NewSyncService(bus secondary.Bus, log *logging.Logger, staleness time.Duration) *SyncService {
	if staleness <= 0 {
		staleness = DefaultStalenessWindow
	}
	return &SyncService{
		bus:       bus,
		log:       log.With("service", "sync"),
		staleness: staleness,
		now:       time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *SyncService) WithClock(now func() time.Time) *SyncService {
	s.now = now
	return s
}

// PublishApplicants broadcasts the applicant list after a successful save.
func (s *SyncService) PublishApplicants(ctx context.Context, applicants []models.Applicant) {
	s.publish(ctx, secondary.PayloadTypeApplicants, applicants)
}

// PublishTemplates broadcasts the template list.
func (s *SyncService) PublishTemplates(ctx context.Context, templates []models.EmailTemplate) {
	s.publish(ctx, secondary.PayloadTypeTemplates, templates)
}

// PublishStageInfo broadcasts the stage-information list.
func (s *SyncService) PublishStageInfo(ctx context.Context, infos []models.StageInfo) {
	s.publish(ctx, secondary.PayloadTypeStageInfo, infos)
}

// OnApplicants registers a receiver for applicant updates.
func (s *SyncService) OnApplicants(fn func([]models.Applicant)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onApplicants = append(s.onApplicants, fn)
}

// OnTemplates registers a receiver for template updates.
func (s *SyncService) OnTemplates(fn func([]models.EmailTemplate)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTemplates = append(s.onTemplates, fn)
}

// OnStageInfo registers a receiver for stage-information updates.
func (s *SyncService) OnStageInfo(fn func([]models.StageInfo)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStageInfo = append(s.onStageInfo, fn)
}

// Start subscribes to the bus and dispatches messages to the registered
// receivers until ctx is cancelled.
func (s *SyncService) Start(ctx context.Context) error {
	_, err := s.bus.Subscribe(ctx, s.handle)
	return err
}

// publish is fire-and-forget: a bus failure is logged, never surfaced, so a
// dead bus cannot break saves.
func (s *SyncService) publish(ctx context.Context, payloadType string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error("sync payload did not serialize", "type", payloadType, "error", err)
		return
	}
	msg := secondary.Message{
		Type: secondary.MessageTypeDataUpdate,
		Payload: secondary.Payload{
			Type:      payloadType,
			Data:      data,
			Timestamp: s.now().UnixMilli(),
		},
	}
	if err := s.bus.Publish(ctx, msg); err != nil {
		s.log.Warn("sync publish failed", "type", payloadType, "error", err)
	}
}

func (s *SyncService) handle(msg secondary.Message) {
	if msg.Type != secondary.MessageTypeDataUpdate {
		return
	}
	age := s.now().UnixMilli() - msg.Payload.Timestamp
	if age > s.staleness.Milliseconds() {
		s.log.Debug("dropping stale sync message", "type", msg.Payload.Type, "ageMillis", age)
		return
	}

	switch msg.Payload.Type {
	case secondary.PayloadTypeApplicants:
		var applicants []models.Applicant
		if err := json.Unmarshal(msg.Payload.Data, &applicants); err != nil {
			s.log.Warn("sync applicant payload did not parse", "error", err)
			return
		}
		s.mu.Lock()
		receivers := append([]func([]models.Applicant){}, s.onApplicants...)
		s.mu.Unlock()
		for _, fn := range receivers {
			fn(applicants)
		}
	case secondary.PayloadTypeTemplates:
		var templates []models.EmailTemplate
		if err := json.Unmarshal(msg.Payload.Data, &templates); err != nil {
			s.log.Warn("sync template payload did not parse", "error", err)
			return
		}
		s.mu.Lock()
		receivers := append([]func([]models.EmailTemplate){}, s.onTemplates...)
		s.mu.Unlock()
		for _, fn := range receivers {
			fn(templates)
		}
	case secondary.PayloadTypeStageInfo:
		var infos []models.StageInfo
		if err := json.Unmarshal(msg.Payload.Data, &infos); err != nil {
			s.log.Warn("sync stage-info payload did not parse", "error", err)
			return
		}
		s.mu.Lock()
		receivers := append([]func([]models.StageInfo){}, s.onStageInfo...)
		s.mu.Unlock()
		for _, fn := range receivers {
			fn(infos)
		}
	default:
		s.log.Debug("ignoring unknown sync payload type", "type", msg.Payload.Type)
	}
}

var _ primary.Sync = (*SyncService)(nil)
