package messaging

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/domain/events"
)

// WildcardEventType subscribes a handler to every event type
const WildcardEventType = "*"

// EventDispatcher is an in-process implementation of the event bus port.
// Handlers run synchronously in registration order; a failing handler is
// logged and does not stop delivery to the remaining handlers.
type EventDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]ports.EventHandler
	logger   *zap.Logger
}

// NewEventDispatcher creates an empty dispatcher
func NewEventDispatcher(logger *zap.Logger) *EventDispatcher {
	return &EventDispatcher{
		handlers: make(map[string][]ports.EventHandler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event type. Use WildcardEventType
// to receive every event.
func (d *EventDispatcher) Subscribe(eventType string, handler ports.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler must not be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

// Unsubscribe removes a handler from an event type
func (d *EventDispatcher) Unsubscribe(eventType string, handler ports.EventHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	registered := d.handlers[eventType]
	for i, h := range registered {
		if h == handler {
			d.handlers[eventType] = append(registered[:i], registered[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("handler not subscribed to %s", eventType)
}

// Publish delivers a single event to its subscribers
func (d *EventDispatcher) Publish(ctx context.Context, event events.DomainEvent) error {
	d.mu.RLock()
	matched := make([]ports.EventHandler, 0)
	matched = append(matched, d.handlers[event.GetEventType()]...)
	matched = append(matched, d.handlers[WildcardEventType]...)
	d.mu.RUnlock()

	for _, handler := range matched {
		if !handler.CanHandle(event.GetEventType()) {
			continue
		}
		if err := handler.Handle(ctx, event); err != nil {
			d.logger.Error("event handler failed",
				zap.String("event_type", event.GetEventType()),
				zap.String("aggregate_id", event.GetAggregateID()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// PublishBatch delivers events in order
func (d *EventDispatcher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	for _, event := range batch {
		if err := d.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
