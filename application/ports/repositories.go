package ports

import (
	"context"

	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/domain/events"
)

// GraphRepository is the port through which the application layer reaches
// graph containers. Graphs are keyed by owner; each owner has exactly one
// container.
//
// The topology engine itself performs no locking, so the repository is the
// serialization point: WithGraph runs fn under the container's exclusive
// lock and ViewGraph under its shared lock. fn must not retain the graph
// or any entity references past its return.
type GraphRepository interface {
	// WithGraph runs fn against the owner's graph under the container's
	// exclusive lock, creating the graph on first use
	WithGraph(ctx context.Context, ownerID string, fn func(*topology.Graph) error) error

	// ViewGraph runs fn against the owner's graph under the container's
	// shared lock; fn must not mutate the graph
	ViewGraph(ctx context.Context, ownerID string, fn func(*topology.Graph) error) error

	// Exists reports whether the owner already has a graph
	Exists(ctx context.Context, ownerID string) (bool, error)

	// Delete destroys the owner's graph and everything it owns
	Delete(ctx context.Context, ownerID string) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// EventBus defines the interface for publishing and subscribing to domain events
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for an event type
	Subscribe(eventType string, handler EventHandler) error

	// Unsubscribe removes a handler
	Unsubscribe(eventType string, handler EventHandler) error
}

// EventHandler defines the interface for handling domain events
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event events.DomainEvent) error

	// CanHandle checks if this handler can process the event
	CanHandle(eventType string) bool
}

// Cache defines the interface for caching query results
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
