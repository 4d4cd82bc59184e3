package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const recordTimeout = 5 * time.Second

// EventRecorder persists audit events.
type EventRecorder interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
}

// RequestMeta identifies the HTTP request that caused an event.
type RequestMeta struct {
	RequestID string
	IPAddress string
	UserAgent string
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo   EventRecorder
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo EventRecorder, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("audit")}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// The write is detached from the request context so it survives the response.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.repo.LogEvent(ctx, event); err != nil {
			s.logger.Error("failed to log audit event",
				zap.String("action", event.Action),
				zap.String("request.id", event.RequestID),
				zap.Error(err))
		}
	}()
}

// Wait blocks until all pending asynchronous events are written.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogCreate records the creation of a user or book.
func (s *Service) LogCreate(meta RequestMeta, entityType string, entityID uint, entityName string) {
	s.LogAsync(newEvent(meta, entities.AuditEventCreate, entityType, entityID,
		fmt.Sprintf("Created %s: %s", entityType, entityName)))
}

// LogUpdate records a change to a user or book.
func (s *Service) LogUpdate(meta RequestMeta, entityType string, entityID uint, entityName string) {
	s.LogAsync(newEvent(meta, entities.AuditEventUpdate, entityType, entityID,
		fmt.Sprintf("Updated %s: %s", entityType, entityName)))
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(meta RequestMeta, entityType string, entityID uint) {
	s.LogAsync(newEvent(meta, entities.AuditEventDelete, entityType, entityID,
		fmt.Sprintf("Deleted %s #%d", entityType, entityID)))
}

// LogFailure records a rejected mutation. entityID is zero when the entity
// was never created.
func (s *Service) LogFailure(meta RequestMeta, eventType entities.AuditEventType, entityType string, entityID uint, err error) {
	event := newEvent(meta, eventType, entityType, entityID,
		fmt.Sprintf("Failed to %s %s", eventType, entityType))
	if entityID == 0 {
		event.EntityID = nil
	}
	event.Status = entities.AuditStatusFailed
	if err != nil {
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

func newEvent(meta RequestMeta, eventType entities.AuditEventType, entityType string, entityID uint, description string) *entities.AuditEvent {
	return &entities.AuditEvent{
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		Description: truncate(description, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		RequestID:   meta.RequestID,
		IPAddress:   truncate(meta.IPAddress, 45),
		UserAgent:   truncate(meta.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
