package outbox

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/helphub/helphub-backend/pkg/enums"
)

type decoderFunc func(payload json.RawMessage) (any, error)

type registryKey struct {
	eventType enums.EventType
	version   int
}

// DecoderRegistry turns serialized envelopes back into typed payloads.
type DecoderRegistry struct {
	mtx      sync.RWMutex
	registry map[registryKey]decoderFunc
}

func NewDecoderRegistry() *DecoderRegistry {
	return &DecoderRegistry{registry: make(map[registryKey]decoderFunc)}
}

// NewReportDecoderRegistry registers the current version of every report event.
func NewReportDecoderRegistry() *DecoderRegistry {
	reg := NewDecoderRegistry()
	reg.Register(enums.EventReportSubmitted, CurrentVersion, decodeInto[ReportSubmittedEvent])
	reg.Register(enums.EventReportAssigned, CurrentVersion, decodeInto[ReportAssignedEvent])
	reg.Register(enums.EventReportStatusChanged, CurrentVersion, decodeInto[ReportStatusChangedEvent])
	reg.Register(enums.EventReportResolved, CurrentVersion, decodeInto[ReportResolvedEvent])
	return reg
}

func (r *DecoderRegistry) Register(eventType enums.EventType, version int, decoder decoderFunc) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.registry[registryKey{eventType: eventType, version: version}] = decoder
}

func (r *DecoderRegistry) Decode(envelope PayloadEnvelope) (any, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if decoder, ok := r.registry[registryKey{eventType: envelope.EventType, version: envelope.Version}]; ok {
		return decoder(envelope.Data)
	}
	return nil, fmt.Errorf("decoder not registered for %s@v%d", envelope.EventType, envelope.Version)
}

func decodeInto[T any](payload json.RawMessage) (any, error) {
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}
