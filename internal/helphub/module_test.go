package helphub

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/helphub/helphub-backend/internal/notifications"
	"github.com/helphub/helphub-backend/internal/testdb"
	"github.com/helphub/helphub-backend/pkg/config"
	"github.com/helphub/helphub-backend/pkg/enums"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notifications.Notice
}

func (r *recordingNotifier) Name() string { return "recorder" }

func (r *recordingNotifier) Notify(ctx context.Context, notice notifications.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
	return nil
}

func (r *recordingNotifier) Notices() []notifications.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notifications.Notice(nil), r.notices...)
}

type tickingClock struct {
	mu      sync.Mutex
	current time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(time.Second)
	return c.current
}

func testConfig() config.Config {
	return config.Config{
		Password: config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
		Reports:  config.ReportsConfig{ExcerptLength: 50},
	}
}

func newTestModule(t *testing.T) (*Module, *recordingNotifier) {
	t.Helper()
	rec := &recordingNotifier{}
	clock := &tickingClock{current: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
	m, err := New(Params{
		DB:        testdb.Open(t),
		Config:    testConfig(),
		Notifiers: []notifications.Notifier{rec},
		Now:       clock.Now,
	})
	require.NoError(t, err)
	require.NoError(t, m.Initialize(context.Background()))
	return m, rec
}

func registerUsers(t *testing.T, m *Module, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 1; i <= n; i++ {
		id, err := m.RegisterUser(context.Background(), RegisterUserParams{
			Name:     fmt.Sprintf("User %d", i),
			Phone:    fmt.Sprintf("555-01%02d", i),
			Age:      20 + i,
			City:     "Springfield",
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: "pw",
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func registerVolunteers(t *testing.T, m *Module, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 1; i <= n; i++ {
		id, err := m.RegisterVolunteer(context.Background(), RegisterVolunteerParams{
			Name:     fmt.Sprintf("Volunteer %d", i),
			City:     "Springfield",
			Email:    fmt.Sprintf("volunteer%d@example.com", i),
			Password: "pw",
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestReportLifecycleOrdering(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	userID := registerUsers(t, m, 1)[0]
	volunteerID := registerVolunteers(t, m, 1)[0]

	reportID, err := m.SubmitReport(ctx, &userID, "Broken streetlight", "", "")
	require.NoError(t, err)

	ok, err := m.AssignReport(ctx, reportID, volunteerID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = m.UpdateReportStatus(ctx, reportID, enums.ReportStatusResolved, "")
	require.NoError(t, err)
	require.True(t, ok)

	report, err := m.GetReport(ctx, reportID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReportStatusResolved, report.Status)
	assert.False(t, report.UpdatedAt.Before(report.CreatedAt.Time))

	_, err = m.UpdateReportStatus(ctx, reportID, enums.ReportStatusPending, "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestAnonymousReportsHaveNoOwner(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	userID := registerUsers(t, m, 1)[0]

	anonID, err := m.SubmitAnonymousReport(ctx, "Graffiti on bridge", "", "")
	require.NoError(t, err)
	ownedID, err := m.SubmitReport(ctx, &userID, "Pothole", "", "")
	require.NoError(t, err)

	anon, err := m.GetReport(ctx, anonID)
	require.NoError(t, err)
	assert.Nil(t, anon.UserID)

	mine, err := m.ListReportsForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ownedID, mine[0].ID)
}

func TestAssignmentEffect(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	volunteerID := registerVolunteers(t, m, 1)[0]
	reportID, err := m.SubmitAnonymousReport(ctx, "Water leak", "", "")
	require.NoError(t, err)
	before, err := m.GetReport(ctx, reportID)
	require.NoError(t, err)

	ok, err := m.AssignReport(ctx, reportID, volunteerID)
	require.NoError(t, err)
	require.True(t, ok)

	after, err := m.GetReport(ctx, reportID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReportStatusInProgress, after.Status)
	require.NotNil(t, after.AssignedVolunteerID)
	assert.Equal(t, volunteerID, *after.AssignedVolunteerID)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt.Time))
	assert.True(t, after.CreatedAt.Equal(before.CreatedAt.Time))

	assigned, err := m.ListReportsForVolunteer(ctx, volunteerID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
}

func TestAssignMissingReportReturnsFalse(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	volunteerID := registerVolunteers(t, m, 1)[0]

	ok, err := m.AssignReport(ctx, 12345, volunteerID)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := m.ListReportsForAdmin(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImagePathPreservedOnAbsence(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	reportID, err := m.SubmitAnonymousReport(ctx, "Fallen tree", "", "/img/before.jpg")
	require.NoError(t, err)

	ok, err := m.UpdateReportStatus(ctx, reportID, enums.ReportStatusInProgress, "")
	require.NoError(t, err)
	require.True(t, ok)
	report, err := m.GetReport(ctx, reportID)
	require.NoError(t, err)
	require.NotNil(t, report.ImagePath)
	assert.Equal(t, "/img/before.jpg", *report.ImagePath)

	_, err = m.UpdateReportStatus(ctx, reportID, enums.ReportStatusResolved, "/img/fixed.jpg")
	require.NoError(t, err)
	report, err = m.GetReport(ctx, reportID)
	require.NoError(t, err)
	assert.Equal(t, "/img/fixed.jpg", *report.ImagePath)

	ok, err = m.UpdateReportStatus(ctx, 999, enums.ReportStatusResolved, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotificationOnlyForOwnedReports(t *testing.T) {
	ctx := context.Background()
	m, rec := newTestModule(t)
	userID := registerUsers(t, m, 1)[0]

	anonID, err := m.SubmitAnonymousReport(ctx, "Anonymous issue", "", "")
	require.NoError(t, err)
	ownedID, err := m.SubmitReport(ctx, &userID, "Owned issue", "", "")
	require.NoError(t, err)

	_, err = m.UpdateReportStatus(ctx, anonID, enums.ReportStatusResolved, "")
	require.NoError(t, err)
	assert.Empty(t, rec.Notices())

	_, err = m.UpdateReportStatus(ctx, ownedID, enums.ReportStatusInProgress, "")
	require.NoError(t, err)
	assert.Empty(t, rec.Notices(), "only resolution sends a notice")

	_, err = m.UpdateReportStatus(ctx, ownedID, enums.ReportStatusResolved, "")
	require.NoError(t, err)
	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "user1@example.com", notices[0].To)
	assert.Equal(t, "Owned issue...", notices[0].Excerpt)
}

func TestListingOrder(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	userID := registerUsers(t, m, 1)[0]
	volunteerID := registerVolunteers(t, m, 1)[0]

	var ids []uint
	for i := 0; i < 4; i++ {
		id, err := m.SubmitReport(ctx, &userID, fmt.Sprintf("report %d", i), "", "")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := m.ListReportsForAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt.Time))
	}
	assert.Equal(t, ids[3], all[0].ID)

	for _, id := range []uint{ids[0], ids[1], ids[2]} {
		_, err := m.AssignReport(ctx, id, volunteerID)
		require.NoError(t, err)
	}
	_, err = m.UpdateReportStatusAsVolunteer(ctx, volunteerID, ids[0], enums.ReportStatusResolved, "")
	require.NoError(t, err)

	assigned, err := m.ListReportsForVolunteer(ctx, volunteerID)
	require.NoError(t, err)
	require.Len(t, assigned, 3)
	assert.Equal(t, []uint{ids[0], ids[2], ids[1]}, []uint{assigned[0].ID, assigned[1].ID, assigned[2].ID})

	unassigned, err := m.ListUnassignedReports(ctx)
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, ids[3], unassigned[0].ID)

	resolved, err := m.ListReportsByStatus(ctx, enums.ReportStatusResolved)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
}

func TestDuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	registerUsers(t, m, 1)

	_, err := m.RegisterUser(ctx, RegisterUserParams{Name: "Dup", Email: "user1@example.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	registerVolunteers(t, m, 1)
	_, err = m.RegisterVolunteer(ctx, RegisterVolunteerParams{Name: "Dup", Email: "volunteer1@example.com", Password: "pw"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	userID := registerUsers(t, m, 1)[0]
	volunteerID := registerVolunteers(t, m, 1)[0]

	user, err := m.LoginUser(ctx, "user1@example.com", "pw")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)

	user, err = m.LoginUser(ctx, "user1@example.com", "wrong")
	require.NoError(t, err)
	assert.Nil(t, user)

	volunteer, err := m.LoginVolunteer(ctx, "volunteer1@example.com", "pw")
	require.NoError(t, err)
	require.NotNil(t, volunteer)
	assert.Equal(t, volunteerID, volunteer.ID)

	missing, err := m.GetUserByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVolunteerStatusAndDashboard(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	volunteerIDs := registerVolunteers(t, m, 3)

	ok, err := m.SetVolunteerStatus(ctx, volunteerIDs[2], enums.VolunteerStatusInactive)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.SetVolunteerStatus(ctx, 999, enums.VolunteerStatusInactive)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.SetVolunteerStatus(ctx, volunteerIDs[0], "retired")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	active, err := m.ListActiveVolunteers(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := m.ListAllVolunteers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	first, err := m.SubmitAnonymousReport(ctx, "one", "", "")
	require.NoError(t, err)
	_, err = m.SubmitAnonymousReport(ctx, "two", "", "")
	require.NoError(t, err)
	_, err = m.AssignReport(ctx, first, volunteerIDs[0])
	require.NoError(t, err)

	stats, err := m.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalReports: 2, Pending: 1, InProgress: 1, Resolved: 0, ActiveVolunteers: 2, TotalUsers: 0}, stats)
}

func TestPotholeScenario(t *testing.T) {
	ctx := context.Background()
	m, rec := newTestModule(t)
	userIDs := registerUsers(t, m, 7)
	volunteerIDs := registerVolunteers(t, m, 3)
	userID := userIDs[6]
	volunteerID := volunteerIDs[2]
	require.Equal(t, uint(7), userID)
	require.Equal(t, uint(3), volunteerID)

	reportID, err := m.SubmitReport(ctx, &userID, "Pothole on Main St", "", "")
	require.NoError(t, err)

	ok, err := m.AssignReport(ctx, reportID, volunteerID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.UpdateReportStatus(ctx, reportID, enums.ReportStatusResolved, "")
	require.NoError(t, err)
	require.True(t, ok)

	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "user7@example.com", notices[0].To)
	assert.Equal(t, "User 7", notices[0].Name)
	assert.Equal(t, "Pothole on Main St...", notices[0].Excerpt)
	assert.Equal(t, reportID, notices[0].ReportID)

	report, err := m.GetReport(ctx, reportID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReportStatusResolved, report.Status)
	require.NotNil(t, report.AssignedVolunteerID)
	assert.Equal(t, volunteerID, *report.AssignedVolunteerID)
}

func TestSubmitReportValidation(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)

	_, err := m.SubmitAnonymousReport(ctx, "", "", "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	ghost := uint(77)
	_, err = m.SubmitReport(ctx, &ghost, "Pothole", "", "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestModule(t)
	registerUsers(t, m, 1)

	require.NoError(t, m.Initialize(ctx))
	user, err := m.GetUserByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, user)
}
