package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/helphub/helphub-backend/pkg/enums"
)

// CurrentVersion is stamped on events that do not set one.
const CurrentVersion = 1

// DomainEvent is produced by a committed report mutation and handed to
// dispatchers after the write. Events never outlive the process.
type DomainEvent struct {
	EventID     uuid.UUID
	EventType   enums.EventType
	AggregateID uint
	Actor       *ActorRef
	Data        any
	Version     int
	OccurredAt  time.Time
}

// NewEvent stamps an event id and version on a report event.
func NewEvent(eventType enums.EventType, reportID uint, actor *ActorRef, data any, occurredAt time.Time) DomainEvent {
	return DomainEvent{
		EventID:     uuid.New(),
		EventType:   eventType,
		AggregateID: reportID,
		Actor:       actor,
		Data:        data,
		Version:     CurrentVersion,
		OccurredAt:  occurredAt.UTC(),
	}
}

// Envelope serializes the event payload.
func (e DomainEvent) Envelope() (PayloadEnvelope, error) {
	if !e.EventType.IsValid() {
		return PayloadEnvelope{}, fmt.Errorf("unknown event type %q", e.EventType)
	}
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return PayloadEnvelope{}, fmt.Errorf("marshal %s payload: %w", e.EventType, err)
	}
	version := e.Version
	if version == 0 {
		version = CurrentVersion
	}
	occurredAt := e.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	eventID := e.EventID
	if eventID == uuid.Nil {
		eventID = uuid.New()
	}
	return PayloadEnvelope{
		Version:     version,
		EventID:     eventID.String(),
		EventType:   e.EventType,
		AggregateID: e.AggregateID,
		OccurredAt:  occurredAt,
		Actor:       e.Actor,
		Data:        payload,
	}, nil
}
