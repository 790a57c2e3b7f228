// Package events announces that stored data changed so open views can
// refresh themselves.
package events

import (
	"context"
	"sync"
	"time"
)

type Entity string

const (
	EntityTask    Entity = "task"
	EntityProject Entity = "project"
	EntityTag     Entity = "tag"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type Event struct {
	Entity Entity    `json:"entity"`
	ID     string    `json:"id"`
	Action Action    `json:"action"`
	At     time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// MemoryPublisher keeps published events in order.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (m *MemoryPublisher) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MemoryPublisher) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
