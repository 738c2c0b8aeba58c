package main

import (
	"context"
	"fmt"

	"github.com/helphub/helphub-backend/internal/helphub"
	"github.com/helphub/helphub-backend/pkg/enums"
	"github.com/helphub/helphub-backend/pkg/logger"
)

type demoUser struct {
	Name  string
	Phone string
	Age   int
	City  string
	Email string
}

type demoVolunteer struct {
	Name   string
	Phone  string
	City   string
	Email  string
	Status string
}

type demoReport struct {
	Title       string
	Location    string
	Description string
	// ReporterEmail is empty for anonymous reports.
	ReporterEmail  string
	Status         string
	VolunteerEmail string
}

var demoUsers = []demoUser{
	{Name: "John Doe", Phone: "+1-555-0201", Age: 34, City: "Downtown", Email: "john.doe@example.com"},
	{Name: "Jane Smith", Phone: "+1-555-0202", Age: 29, City: "Westside", Email: "jane.smith@example.com"},
	{Name: "Mike Wilson", Phone: "+1-555-0203", Age: 41, City: "Eastside", Email: "mike.wilson@example.com"},
}

var demoVolunteers = []demoVolunteer{
	{Name: "Alex Johnson", Phone: "+1-555-0101", City: "Downtown", Email: "alex.johnson@example.com", Status: "active"},
	{Name: "Maria Garcia", Phone: "+1-555-0102", City: "Westside", Email: "maria.garcia@example.com", Status: "active"},
	{Name: "David Chen", Phone: "+1-555-0103", City: "Eastside", Email: "david.chen@example.com", Status: "active"},
	{Name: "Sarah Wilson", Phone: "+1-555-0104", City: "Northside", Email: "sarah.wilson@example.com", Status: "inactive"},
}

// Oldest first so the admin list shows them newest first.
var demoReports = []demoReport{
	{
		Title:          "Graffiti on public building",
		Location:       "City Hall, North Wall",
		Description:    "Vandalism on the exterior wall of the city hall building.",
		Status:         "inProgress",
		VolunteerEmail: "david.chen@example.com",
	},
	{
		Title:         "Water leak in public park",
		Location:      "Central Park, East Side",
		Description:   "Water pipe burst near the playground area, causing flooding.",
		ReporterEmail: "mike.wilson@example.com",
		Status:        "pending",
	},
	{
		Title:          "Garbage collection missed",
		Location:       "Residential Area, Block A",
		Description:    "Garbage has not been collected for three consecutive days in our neighborhood.",
		ReporterEmail:  "jane.smith@example.com",
		Status:         "resolved",
		VolunteerEmail: "maria.garcia@example.com",
	},
	{
		Title:          "Large pothole on Highway 101",
		Location:       "Highway 101, Mile Marker 15",
		Description:    "Deep pothole causing damage to vehicles and creating traffic hazards.",
		ReporterEmail:  "john.doe@example.com",
		Status:         "inProgress",
		VolunteerEmail: "alex.johnson@example.com",
	},
	{
		Title:       "Broken streetlight on Main Street",
		Location:    "Main Street, Downtown",
		Description: "The streetlight near the bus stop has been out for several days, creating safety concerns for pedestrians.",
		Status:      "pending",
	},
}

func (r demoReport) text() string {
	return fmt.Sprintf("%s (%s): %s", r.Title, r.Location, r.Description)
}

// parseDemoStatuses checks every status in the demo data before anything is
// written.
func parseDemoStatuses() ([]enums.VolunteerStatus, []enums.ReportStatus, error) {
	volunteerStatuses := make([]enums.VolunteerStatus, 0, len(demoVolunteers))
	for _, v := range demoVolunteers {
		status, err := enums.ParseVolunteerStatus(v.Status)
		if err != nil {
			return nil, nil, fmt.Errorf("volunteer %s: %w", v.Email, err)
		}
		volunteerStatuses = append(volunteerStatuses, status)
	}
	reportStatuses := make([]enums.ReportStatus, 0, len(demoReports))
	for _, r := range demoReports {
		status, err := enums.ParseReportStatus(r.Status)
		if err != nil {
			return nil, nil, fmt.Errorf("report %q: %w", r.Title, err)
		}
		reportStatuses = append(reportStatuses, status)
	}
	return volunteerStatuses, reportStatuses, nil
}

type seedSummary struct {
	Users      int
	Volunteers int
	Reports    int
	Skipped    bool
}

// loadDemoData fills an empty store. A store that already holds users or
// reports is left untouched.
func loadDemoData(ctx context.Context, m *helphub.Module, password string, logg *logger.Logger) (seedSummary, error) {
	volunteerStatuses, reportStatuses, err := parseDemoStatuses()
	if err != nil {
		return seedSummary{}, err
	}

	stats, err := m.DashboardStats(ctx)
	if err != nil {
		return seedSummary{}, err
	}
	if stats.TotalReports > 0 || stats.TotalUsers > 0 {
		logg.Info(logg.WithFields(ctx, map[string]any{"reports": stats.TotalReports, "users": stats.TotalUsers}), "store already seeded")
		return seedSummary{Skipped: true}, nil
	}

	var summary seedSummary
	userIDs := make(map[string]uint, len(demoUsers))
	for _, u := range demoUsers {
		id, err := m.RegisterUser(ctx, helphub.RegisterUserParams{
			Name:     u.Name,
			Phone:    u.Phone,
			Age:      u.Age,
			City:     u.City,
			Email:    u.Email,
			Password: password,
		})
		if err != nil {
			return summary, fmt.Errorf("register user %s: %w", u.Email, err)
		}
		userIDs[u.Email] = id
		summary.Users++
	}

	volunteerIDs := make(map[string]uint, len(demoVolunteers))
	for i, v := range demoVolunteers {
		id, err := m.RegisterVolunteer(ctx, helphub.RegisterVolunteerParams{
			Name:     v.Name,
			Phone:    v.Phone,
			City:     v.City,
			Email:    v.Email,
			Password: password,
		})
		if err != nil {
			return summary, fmt.Errorf("register volunteer %s: %w", v.Email, err)
		}
		if status := volunteerStatuses[i]; status != enums.VolunteerStatusActive {
			if _, err := m.SetVolunteerStatus(ctx, id, status); err != nil {
				return summary, fmt.Errorf("set volunteer status %s: %w", v.Email, err)
			}
		}
		volunteerIDs[v.Email] = id
		summary.Volunteers++
	}

	for i, r := range demoReports {
		status := reportStatuses[i]
		var owner *uint
		if r.ReporterEmail != "" {
			id := userIDs[r.ReporterEmail]
			owner = &id
		}
		reportID, err := m.SubmitReport(ctx, owner, r.text(), "", "")
		if err != nil {
			return summary, fmt.Errorf("submit %q: %w", r.Title, err)
		}
		if r.VolunteerEmail != "" {
			if _, err := m.AssignReport(ctx, reportID, volunteerIDs[r.VolunteerEmail]); err != nil {
				return summary, fmt.Errorf("assign %q: %w", r.Title, err)
			}
		}
		if status == enums.ReportStatusResolved {
			if _, err := m.UpdateReportStatus(ctx, reportID, status, ""); err != nil {
				return summary, fmt.Errorf("resolve %q: %w", r.Title, err)
			}
		}
		summary.Reports++
	}
	return summary, nil
}
