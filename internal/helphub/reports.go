package helphub

import (
	"context"

	"github.com/helphub/helphub-backend/internal/reports"
	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/enums"
)

// DashboardStats backs the admin dashboard cards.
type DashboardStats struct {
	TotalReports     int64 `json:"totalReports"`
	Pending          int64 `json:"pending"`
	InProgress       int64 `json:"inProgress"`
	Resolved         int64 `json:"resolved"`
	ActiveVolunteers int64 `json:"activeVolunteers"`
	TotalUsers       int64 `json:"totalUsers"`
}

// SubmitReport stores a pending report and returns its id. A nil userID
// submits anonymously; empty paths are stored as NULL.
func (m *Module) SubmitReport(ctx context.Context, userID *uint, description, voicePath, imagePath string) (uint, error) {
	res, err := m.reports.Submit(ctx, reports.SubmitParams{
		UserID:      userID,
		Description: description,
		VoicePath:   voicePath,
		ImagePath:   imagePath,
	})
	if err != nil {
		return 0, err
	}
	m.dispatcher.Dispatch(ctx, res.Events)
	return res.Report.ID, nil
}

// SubmitAnonymousReport is SubmitReport without an owner.
func (m *Module) SubmitAnonymousReport(ctx context.Context, description, voicePath, imagePath string) (uint, error) {
	return m.SubmitReport(ctx, nil, description, voicePath, imagePath)
}

// GetReport returns nil when the report does not exist.
func (m *Module) GetReport(ctx context.Context, reportID uint) (*models.Report, error) {
	return m.reports.Get(ctx, reportID)
}

// ListReportsForUser returns the user's reports, newest first.
func (m *Module) ListReportsForUser(ctx context.Context, userID uint) ([]models.Report, error) {
	return m.reports.ListForUser(ctx, userID)
}

// ListReportsForAdmin returns every report, newest first.
func (m *Module) ListReportsForAdmin(ctx context.Context) ([]models.Report, error) {
	return m.reports.ListAll(ctx)
}

// ListReportsByStatus returns the reports in one lifecycle state, newest first.
func (m *Module) ListReportsByStatus(ctx context.Context, status enums.ReportStatus) ([]models.Report, error) {
	return m.reports.ListByStatus(ctx, status)
}

// ListReportsForVolunteer returns the volunteer's assignments, most recently
// updated first.
func (m *Module) ListReportsForVolunteer(ctx context.Context, volunteerID uint) ([]models.Report, error) {
	return m.reports.ListForVolunteer(ctx, volunteerID)
}

// ListUnassignedReports returns pending reports nobody has taken.
func (m *Module) ListUnassignedReports(ctx context.Context) ([]models.Report, error) {
	return m.reports.ListUnassigned(ctx)
}

// AssignReport gives the report to a volunteer and moves it to inProgress.
// It returns false when the report does not exist.
func (m *Module) AssignReport(ctx context.Context, reportID, volunteerID uint) (bool, error) {
	res, err := m.reports.Assign(ctx, reportID, volunteerID)
	if err != nil {
		return false, err
	}
	m.dispatcher.Dispatch(ctx, res.Events)
	return res.Updated, nil
}

// UpdateReportStatus sets the status; a non-empty imagePath replaces the
// stored one. Moving to resolved sends the owner a notice before returning.
// It returns false when the report does not exist.
func (m *Module) UpdateReportStatus(ctx context.Context, reportID uint, status enums.ReportStatus, imagePath string) (bool, error) {
	return m.updateStatus(ctx, reports.UpdateStatusParams{
		ReportID:  reportID,
		Status:    status,
		ImagePath: imagePath,
		Actor:     enums.ActorAdmin,
	})
}

// UpdateReportStatusAsVolunteer is UpdateReportStatus performed by a
// volunteer: an unassigned report is claimed, a report assigned to someone
// else is rejected.
func (m *Module) UpdateReportStatusAsVolunteer(ctx context.Context, volunteerID, reportID uint, status enums.ReportStatus, imagePath string) (bool, error) {
	return m.updateStatus(ctx, reports.UpdateStatusParams{
		ReportID:    reportID,
		Status:      status,
		ImagePath:   imagePath,
		VolunteerID: &volunteerID,
		Actor:       enums.ActorVolunteer,
	})
}

func (m *Module) updateStatus(ctx context.Context, params reports.UpdateStatusParams) (bool, error) {
	res, err := m.reports.UpdateStatus(ctx, params)
	if err != nil {
		return false, err
	}
	m.dispatcher.Dispatch(ctx, res.Events)
	return res.Updated, nil
}

// DashboardStats counts reports per status, active volunteers and registered users.
func (m *Module) DashboardStats(ctx context.Context) (DashboardStats, error) {
	counts, err := m.reports.Counts(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	active, err := m.volunteers.CountByStatus(ctx, enums.VolunteerStatusActive)
	if err != nil {
		return DashboardStats{}, err
	}
	userCount, err := m.users.Count(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	return DashboardStats{
		TotalReports:     counts.Total,
		Pending:          counts.Pending,
		InProgress:       counts.InProgress,
		Resolved:         counts.Resolved,
		ActiveVolunteers: active,
		TotalUsers:       userCount,
	}, nil
}
