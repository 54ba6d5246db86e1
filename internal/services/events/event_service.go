package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
)

// Service implements EventService interface with pub/sub pattern
type Service struct {
	subscribers map[models.EventType][]interfaces.EventHandler
	wildcard    []interfaces.EventHandler
	mu          sync.RWMutex
	logger      arbor.ILogger
}

// NewService creates a new event service
func NewService(logger arbor.ILogger) interfaces.EventService {
	return &Service{
		subscribers: make(map[models.EventType][]interfaces.EventHandler),
		logger:      logger,
	}
}

// Subscribe registers a handler for an event type
func (s *Service) Subscribe(eventType models.EventType, handler interfaces.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers[eventType] = append(s.subscribers[eventType], handler)

	s.logger.Debug().
		Str("event_type", string(eventType)).
		Int("subscriber_count", len(s.subscribers[eventType])).
		Msg("Event handler subscribed")

	return nil
}

// SubscribeAll registers a handler for every event type
func (s *Service) SubscribeAll(handler interfaces.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wildcard = append(s.wildcard, handler)

	s.logger.Debug().
		Int("subscriber_count", len(s.wildcard)).
		Msg("Wildcard event handler subscribed")

	return nil
}

// handlersFor collects the typed and wildcard handlers for an event
func (s *Service) handlersFor(eventType models.EventType) []interfaces.EventHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handlers := make([]interfaces.EventHandler, 0, len(s.subscribers[eventType])+len(s.wildcard))
	handlers = append(handlers, s.subscribers[eventType]...)
	handlers = append(handlers, s.wildcard...)
	return handlers
}

// Publish sends an event to all subscribers asynchronously
func (s *Service) Publish(ctx context.Context, event models.Event) error {
	handlers := s.handlersFor(event.Type)

	if len(handlers) == 0 {
		s.logger.Debug().
			Str("event_type", string(event.Type)).
			Msg("No subscribers for event")
		return nil
	}

	for _, handler := range handlers {
		h := handler
		common.SafeGo(s.logger, "publishEvent", func() {
			if err := h(ctx, event); err != nil {
				s.logger.Error().
					Err(err).
					Str("event_type", string(event.Type)).
					Msg("Event handler failed")
			}
		})
	}

	return nil
}

// PublishSync sends an event to all subscribers synchronously
func (s *Service) PublishSync(ctx context.Context, event models.Event) error {
	handlers := s.handlersFor(event.Type)

	if len(handlers) == 0 {
		s.logger.Debug().
			Str("event_type", string(event.Type)).
			Msg("No subscribers for event")
		return nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(handlers))

	for _, handler := range handlers {
		h := handler
		wg.Add(1)
		common.SafeGo(s.logger, "publishEventSync", func() {
			defer wg.Done()
			if err := h(ctx, event); err != nil {
				s.logger.Error().
					Err(err).
					Str("event_type", string(event.Type)).
					Msg("Event handler failed")
				errChan <- err
			}
		})
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("event handlers failed: %d errors", len(errs))
	}

	return nil
}

// Close shuts down the event service
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = make(map[models.EventType][]interfaces.EventHandler)
	s.wildcard = nil
	s.logger.Info().Msg("Event service closed")

	return nil
}
