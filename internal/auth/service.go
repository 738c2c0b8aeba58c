package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/logger"
	"github.com/helphub/helphub-backend/pkg/security"
	"github.com/helphub/helphub-backend/pkg/validators"
)

// Service checks credentials. A failed login is not an error: it returns nil.
type Service interface {
	LoginUser(ctx context.Context, req LoginRequest) (*models.User, error)
	LoginVolunteer(ctx context.Context, req LoginRequest) (*models.Volunteer, error)
}

type service struct {
	users      userRepository
	volunteers volunteerRepository
	logg       *logger.Logger
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type volunteerRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Volunteer, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo      userRepository
	VolunteerRepo volunteerRepository
	Logger        *logger.Logger
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.VolunteerRepo == nil {
		return nil, fmt.Errorf("volunteer repository is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		users:      params.UserRepo,
		volunteers: params.VolunteerRepo,
		logg:       logg,
	}, nil
}

func (s *service) LoginUser(ctx context.Context, req LoginRequest) (*models.User, error) {
	email := validators.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, nil
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	if !s.passwordMatches(s.logg.WithUserID(ctx, user.ID), req.Password, user.Password) {
		return nil, nil
	}
	return user, nil
}

func (s *service) LoginVolunteer(ctx context.Context, req LoginRequest) (*models.Volunteer, error) {
	email := validators.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, nil
	}
	volunteer, err := s.volunteers.FindByEmail(ctx, email)
	if err != nil || volunteer == nil {
		return nil, err
	}
	if !s.passwordMatches(s.logg.WithVolunteerID(ctx, volunteer.ID), req.Password, volunteer.Password) {
		return nil, nil
	}
	return volunteer, nil
}

// passwordMatches treats an unreadable stored hash as a mismatch.
func (s *service) passwordMatches(ctx context.Context, password, encoded string) bool {
	valid, err := security.VerifyPassword(password, encoded)
	if err != nil {
		if errors.Is(err, security.ErrInvalidHash) {
			s.logg.Warn(ctx, "stored credential is not an argon2id hash")
		} else {
			s.logg.Error(ctx, "verify password", err)
		}
		return false
	}
	return valid
}
