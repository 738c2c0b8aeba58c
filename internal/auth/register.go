package auth

import (
	"context"

	"github.com/helphub/helphub-backend/internal/repo"
	"github.com/helphub/helphub-backend/internal/users"
	"github.com/helphub/helphub-backend/internal/volunteers"
	"github.com/helphub/helphub-backend/pkg/db"
	"github.com/helphub/helphub-backend/pkg/db/models"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
	"github.com/helphub/helphub-backend/pkg/logger"
	"github.com/helphub/helphub-backend/pkg/security"
	"github.com/helphub/helphub-backend/pkg/validators"
	"gorm.io/gorm"
)

const emailTakenMessage = "email already registered"

const (
	maxNameLen  = 64
	maxPhoneLen = 32
	maxCityLen  = 64
)

// RegisterService handles account creation for both roles.
type RegisterService interface {
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, error)
	RegisterVolunteer(ctx context.Context, req RegisterVolunteerRequest) (*models.Volunteer, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB     *db.Client
	Hasher *security.Hasher
	Logger *logger.Logger
}

type registerService struct {
	db     *db.Client
	hasher *security.Hasher
	logg   *logger.Logger
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Hasher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "password hasher required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &registerService{
		db:     params.DB,
		hasher: params.Hasher,
		logg:   logg,
	}, nil
}

func (s *registerService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, error) {
	req.Email = validators.NormalizeEmail(req.Email)
	req.Name = validators.SanitizeString(req.Name, maxNameLen)
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var user *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		existing, err := userRepo.FindByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, emailTakenMessage)
		}

		user, err = userRepo.Create(ctx, users.CreateUserDTO{
			Name:         req.Name,
			Phone:        validators.SanitizeString(req.Phone, maxPhoneLen),
			Age:          req.Age,
			City:         validators.SanitizeString(req.City, maxCityLen),
			Email:        req.Email,
			PasswordHash: passwordHash,
		})
		return err
	})
	if err != nil {
		return nil, repo.StoreError(err, "register user")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user registered")
	return user, nil
}

func (s *registerService) RegisterVolunteer(ctx context.Context, req RegisterVolunteerRequest) (*models.Volunteer, error) {
	req.Email = validators.NormalizeEmail(req.Email)
	req.Name = validators.SanitizeString(req.Name, maxNameLen)
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var volunteer *models.Volunteer
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		volunteerRepo := volunteers.NewRepository(tx)

		existing, err := volunteerRepo.FindByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, emailTakenMessage)
		}

		volunteer, err = volunteerRepo.Create(ctx, volunteers.CreateVolunteerDTO{
			Name:         req.Name,
			Phone:        validators.SanitizeString(req.Phone, maxPhoneLen),
			City:         validators.SanitizeString(req.City, maxCityLen),
			Email:        req.Email,
			PasswordHash: passwordHash,
		})
		return err
	})
	if err != nil {
		return nil, repo.StoreError(err, "register volunteer")
	}

	s.logg.Info(s.logg.WithVolunteerID(ctx, volunteer.ID), "volunteer registered")
	return volunteer, nil
}
