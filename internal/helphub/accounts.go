package helphub

import (
	"context"

	"github.com/helphub/helphub-backend/internal/auth"
	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/enums"
	"github.com/helphub/helphub-backend/pkg/validators"
)

// RegisterUser inserts a user with role "user" and returns its id.
func (m *Module) RegisterUser(ctx context.Context, params RegisterUserParams) (uint, error) {
	user, err := m.register.RegisterUser(ctx, params)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// LoginUser returns the matching user, or nil when email or password do not match.
func (m *Module) LoginUser(ctx context.Context, email, password string) (*models.User, error) {
	return m.auth.LoginUser(ctx, auth.LoginRequest{Email: email, Password: password})
}

// RegisterVolunteer inserts an active volunteer and returns its id.
func (m *Module) RegisterVolunteer(ctx context.Context, params RegisterVolunteerParams) (uint, error) {
	volunteer, err := m.register.RegisterVolunteer(ctx, params)
	if err != nil {
		return 0, err
	}
	return volunteer.ID, nil
}

// LoginVolunteer returns the matching volunteer, or nil when the credentials do not match.
func (m *Module) LoginVolunteer(ctx context.Context, email, password string) (*models.Volunteer, error) {
	return m.auth.LoginVolunteer(ctx, auth.LoginRequest{Email: email, Password: password})
}

// GetUserByID returns nil when the user does not exist.
func (m *Module) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return m.users.FindByID(ctx, userID)
}

// ListAllVolunteers returns every volunteer in id order.
func (m *Module) ListAllVolunteers(ctx context.Context) ([]models.Volunteer, error) {
	return m.volunteers.List(ctx)
}

// ListActiveVolunteers returns the volunteers that can take assignments.
func (m *Module) ListActiveVolunteers(ctx context.Context) ([]models.Volunteer, error) {
	return m.volunteers.ListByStatus(ctx, enums.VolunteerStatusActive)
}

type volunteerStatusInput struct {
	Status string `json:"status" validate:"required,volunteer_status"`
}

// SetVolunteerStatus toggles a volunteer between active and inactive. It
// returns false when the volunteer does not exist.
func (m *Module) SetVolunteerStatus(ctx context.Context, volunteerID uint, status enums.VolunteerStatus) (bool, error) {
	if err := validators.Struct(volunteerStatusInput{Status: string(status)}); err != nil {
		return false, err
	}
	updated, err := m.volunteers.UpdateStatus(ctx, volunteerID, status)
	if err != nil {
		return false, err
	}
	if updated {
		m.logg.Info(m.logg.WithField(m.logg.WithVolunteerID(ctx, volunteerID), "status", status), "volunteer status changed")
	}
	return updated, nil
}
