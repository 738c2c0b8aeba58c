package enums

import "fmt"

// EventType names the side-effect events produced by report mutations.
type EventType string

const (
	EventReportSubmitted     EventType = "report_submitted"
	EventReportAssigned      EventType = "report_assigned"
	EventReportStatusChanged EventType = "report_status_changed"
	EventReportResolved      EventType = "report_resolved"
)

var validEventTypes = []EventType{
	EventReportSubmitted,
	EventReportAssigned,
	EventReportStatusChanged,
	EventReportResolved,
}

// IsValid reports whether the value matches a known event type.
func (e EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventType converts raw input into EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
