package outbox

import (
	"time"

	"github.com/helphub/helphub-backend/pkg/enums"
)

// ReportSubmittedEvent is emitted once a report row exists.
type ReportSubmittedEvent struct {
	ReportID  uint  `json:"reportId"`
	UserID    *uint `json:"userId,omitempty"`
	Anonymous bool  `json:"anonymous"`
}

// ReportAssignedEvent is emitted when a volunteer takes a report.
type ReportAssignedEvent struct {
	ReportID       uint               `json:"reportId"`
	VolunteerID    uint               `json:"volunteerId"`
	PreviousStatus enums.ReportStatus `json:"previousStatus"`
}

// ReportStatusChangedEvent records every status write, including self
// transitions that only refresh the attachment.
type ReportStatusChangedEvent struct {
	ReportID     uint               `json:"reportId"`
	From         enums.ReportStatus `json:"from"`
	To           enums.ReportStatus `json:"to"`
	VolunteerID  *uint              `json:"volunteerId,omitempty"`
	ImageUpdated bool               `json:"imageUpdated"`
}

// ReportResolvedEvent drives the resolution notice.
type ReportResolvedEvent struct {
	ReportID   uint      `json:"reportId"`
	UserID     *uint     `json:"userId,omitempty"`
	ResolvedAt time.Time `json:"resolvedAt"`
}
