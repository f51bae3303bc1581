// Package events publishes domain events about the marketplace lifecycle.
package events

import (
	"context"
	"time"
)

const (
	TopicApplicationCreated       = "application.created"
	TopicApplicationStatusChanged = "application.status_changed"
	TopicProjectCreated           = "project.created"
	TopicProjectStatusChanged     = "project.status_changed"
	TopicFreelancerReviewed       = "freelancer_application.reviewed"
)

type Event struct {
	Type       string    `json:"type"`
	EntityID   uint      `json:"entity_id"`
	ProjectID  uint      `json:"project_id,omitempty"`
	UserID     uint      `json:"user_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, topic string, ev Event) error
	Close() error
}

// Noop discards events. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, Event) error { return nil }
func (Noop) Close() error                                 { return nil }
