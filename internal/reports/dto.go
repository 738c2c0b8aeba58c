package reports

import (
	"time"

	"github.com/helphub/helphub-backend/pkg/db/models"
	dbtypes "github.com/helphub/helphub-backend/pkg/db/types"
	"github.com/helphub/helphub-backend/pkg/enums"
	"github.com/helphub/helphub-backend/pkg/outbox"
)

// CreateReportDTO holds the data required by the repo to persist a new report.
type CreateReportDTO struct {
	UserID      *uint
	Description string
	VoicePath   *string
	ImagePath   *string
	At          time.Time
}

func (c CreateReportDTO) ToModel() *models.Report {
	return &models.Report{
		UserID:      c.UserID,
		Description: c.Description,
		VoicePath:   c.VoicePath,
		ImagePath:   c.ImagePath,
		Status:      enums.ReportStatusPending,
		CreatedAt:   dbtypes.NewTimestamp(c.At),
		UpdatedAt:   dbtypes.NewTimestamp(c.At),
	}
}

// StatusChange is the column set written by a status update. ImagePath and
// AssignedVolunteerID are left untouched when nil.
type StatusChange struct {
	Status              enums.ReportStatus
	ImagePath           *string
	AssignedVolunteerID *uint
	At                  time.Time
}

func (c StatusChange) columns() map[string]any {
	cols := map[string]any{
		"status":    c.Status,
		"updatedAt": dbtypes.NewTimestamp(c.At),
	}
	if c.ImagePath != nil {
		cols["imagePath"] = *c.ImagePath
	}
	if c.AssignedVolunteerID != nil {
		cols["assignedVolunteerId"] = *c.AssignedVolunteerID
	}
	return cols
}

// SubmitParams is the input of a report submission. Empty paths mean absent.
type SubmitParams struct {
	UserID      *uint
	Description string
	VoicePath   string
	ImagePath   string
}

// SubmitResult carries the stored report and the events it produced.
type SubmitResult struct {
	Report *models.Report
	Events []outbox.DomainEvent
}

// UpdateStatusParams is the input of a status update. VolunteerID is set
// when a volunteer performs the update.
type UpdateStatusParams struct {
	ReportID    uint
	Status      enums.ReportStatus
	ImagePath   string
	VolunteerID *uint
	Actor       enums.ActorRole
}

// StatusUpdateResult reports whether the report existed, its state after the
// committed write and the events to dispatch.
type StatusUpdateResult struct {
	Updated bool
	Report  *models.Report
	Events  []outbox.DomainEvent
}

// StatusCounts holds the number of reports per lifecycle state.
type StatusCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}
