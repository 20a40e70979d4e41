package events

import (
	"fmt"
	"time"
)

// DomainEvent is the base interface for all domain events
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// Action is what happened to a record
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// RecordChanged is raised after a collection mutation has been persisted.
// The event type reads "<kind>.<action>", e.g. "project.created".
type RecordChanged struct {
	BaseEvent
	Collection string `json:"collection"`
	RecordID   int    `json:"recordId"`
	Action     Action `json:"action"`
}

// NewRecordChanged creates a RecordChanged event. kind is the singular
// record name and collection the plural store name.
func NewRecordChanged(kind, collection string, id int, action Action, timestamp time.Time) RecordChanged {
	return RecordChanged{
		BaseEvent: BaseEvent{
			AggregateID: fmt.Sprintf("%s#%d", collection, id),
			EventType:   fmt.Sprintf("%s.%s", kind, action),
			Timestamp:   timestamp,
			Version:     1,
		},
		Collection: collection,
		RecordID:   id,
		Action:     action,
	}
}
