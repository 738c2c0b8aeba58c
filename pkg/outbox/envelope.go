package outbox

import (
	"encoding/json"
	"time"

	"github.com/helphub/helphub-backend/pkg/enums"
)

// ActorRef identifies who produced the event.
type ActorRef struct {
	ID   *uint           `json:"id,omitempty"`
	Role enums.ActorRole `json:"role"`
}

// PayloadEnvelope is the stable, serializable form of a DomainEvent. It is what
// log sinks and the Redis notice mirror see.
type PayloadEnvelope struct {
	Version     int             `json:"version"`
	EventID     string          `json:"eventId"`
	EventType   enums.EventType `json:"eventType"`
	AggregateID uint            `json:"aggregateId"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Actor       *ActorRef       `json:"actor,omitempty"`
	Data        json.RawMessage `json:"data"`
}
