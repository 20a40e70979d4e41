package ports

import (
	"context"
	"time"

	"portfolio/domain/entities"
	"portfolio/domain/events"
)

// DocumentStore persists one collection as a single whole document.
// There is no row-level locking; the most recent Replace wins.
type DocumentStore[T any] interface {
	// Load returns the whole collection, seeding an empty document when absent
	Load(ctx context.Context) ([]T, error)

	// Replace overwrites the whole collection
	Replace(ctx context.Context, items []T) error

	// Name returns the collection name, e.g. "projects"
	Name() string
}

// Producer computes a value for a cache tag
type Producer func(ctx context.Context) (interface{}, error)

// Cache is a read-through cache keyed by logical tags
type Cache interface {
	// GetCached returns the cached value for tag, calling producer on a miss.
	// Concurrent misses for the same tag share a single producer call.
	GetCached(ctx context.Context, tag string, ttl time.Duration, producer Producer) (interface{}, error)

	// Invalidate drops the given tags so the next read recomputes them
	Invalidate(ctx context.Context, tags ...string)
}

// EventPublisher sends domain events somewhere outside the process
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// CommandRecorder records the outcome of a mutating command
type CommandRecorder interface {
	RecordCommand(ctx context.Context, command string, duration time.Duration, err error)
}

// CacheObserver is notified about cache lookups
type CacheObserver interface {
	CacheHit(tag string)
	CacheMiss(tag string)
}

// Clock returns the current time
type Clock func() time.Time

// RepositorySource lists public repositories from a code host
type RepositorySource interface {
	ListRepositories(ctx context.Context) ([]entities.Repository, error)
}

// StatsSource fetches coding practice statistics
type StatsSource interface {
	FetchStats(ctx context.Context) (*entities.CodingStats, error)
}
