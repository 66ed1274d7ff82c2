// Package events publishes meet change notifications. Consumers use them to
// refresh live result boards; nothing inside the service reads them back.
package events

import (
	"context"
	"log/slog"
	"time"
)

type Type string

const (
	ParticipantCreated  Type = "participant.created"
	ParticipantDeleted  Type = "participant.deleted"
	CompetitionCreated  Type = "competition.created"
	CompetitionDeleted  Type = "competition.deleted"
	RegistrationCreated Type = "registration.created"
	RegistrationDeleted Type = "registration.deleted"
	ResultRecorded      Type = "result.recorded"
	ResultRemoved       Type = "result.removed"
	GroupCreated        Type = "group.created"
)

// Event is one meet change. EntityID is the id of the entity named by Type;
// Attributes carries related ids.
type Event struct {
	Type       Type              `json:"type"`
	EntityID   string            `json:"entity_id"`
	RequestID  string            `json:"request_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	if p.logger == nil {
		return nil
	}
	args := []any{"event", string(e.Type), "entity_id", e.EntityID}
	if e.RequestID != "" {
		args = append(args, "request_id", e.RequestID)
	}
	for k, v := range e.Attributes {
		args = append(args, k, v)
	}
	p.logger.InfoContext(ctx, "meet event", args...)
	return nil
}
