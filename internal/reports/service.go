package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/helphub/helphub-backend/internal/repo"
	"github.com/helphub/helphub-backend/internal/users"
	"github.com/helphub/helphub-backend/internal/volunteers"
	"github.com/helphub/helphub-backend/pkg/db"
	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/enums"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
	"github.com/helphub/helphub-backend/pkg/logger"
	"github.com/helphub/helphub-backend/pkg/outbox"
	"github.com/helphub/helphub-backend/pkg/validators"
	"gorm.io/gorm"
)

// Service owns the report lifecycle: submission, assignment and status moves.
type Service interface {
	Submit(ctx context.Context, params SubmitParams) (*SubmitResult, error)
	Get(ctx context.Context, reportID uint) (*models.Report, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Report, error)
	ListAll(ctx context.Context) ([]models.Report, error)
	ListByStatus(ctx context.Context, status enums.ReportStatus) ([]models.Report, error)
	ListForVolunteer(ctx context.Context, volunteerID uint) ([]models.Report, error)
	ListUnassigned(ctx context.Context) ([]models.Report, error)
	Assign(ctx context.Context, reportID, volunteerID uint) (*StatusUpdateResult, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (*StatusUpdateResult, error)
	Counts(ctx context.Context) (StatusCounts, error)
}

// ServiceParams bundles the dependencies required to build a report service.
type ServiceParams struct {
	DB          *db.Client
	Logger      *logger.Logger
	AllowReopen bool
	Now         func() time.Time
}

type service struct {
	db          *db.Client
	repo        *Repository
	logg        *logger.Logger
	allowReopen bool
	now         func() time.Time
}

type submitInput struct {
	Description string `json:"description" validate:"required"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,report_status"`
}

// NewService constructs a report service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:          params.DB,
		repo:        NewRepository(params.DB.DB()),
		logg:        logg,
		allowReopen: params.AllowReopen,
		now:         now,
	}, nil
}

func (s *service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *service) Submit(ctx context.Context, params SubmitParams) (*SubmitResult, error) {
	if err := validators.Struct(submitInput{Description: strings.TrimSpace(params.Description)}); err != nil {
		return nil, err
	}

	var report *models.Report
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if params.UserID != nil {
			exists, err := users.NewRepository(tx).Exists(ctx, *params.UserID)
			if err != nil {
				return err
			}
			if !exists {
				return validators.FieldError("userId", "does not exist")
			}
		}

		created, err := NewRepository(tx).Create(ctx, CreateReportDTO{
			UserID:      params.UserID,
			Description: params.Description,
			VoicePath:   validators.OptionalString(params.VoicePath),
			ImagePath:   validators.OptionalString(params.ImagePath),
			At:          s.timestamp(),
		})
		if err != nil {
			return err
		}
		report = created
		return nil
	})
	if err != nil {
		return nil, repo.StoreError(err, "submit report")
	}

	actor := &outbox.ActorRef{ID: report.UserID, Role: enums.ActorUser}
	if report.IsAnonymous() {
		actor.Role = enums.ActorAnonymous
	}
	event := outbox.NewEvent(enums.EventReportSubmitted, report.ID, actor, outbox.ReportSubmittedEvent{
		ReportID:  report.ID,
		UserID:    report.UserID,
		Anonymous: report.IsAnonymous(),
	}, report.CreatedAt.Time)

	logCtx := s.logg.WithFields(s.logg.WithReportID(ctx, report.ID), map[string]any{"anonymous": report.IsAnonymous()})
	s.logg.Info(logCtx, "report submitted")

	return &SubmitResult{Report: report, Events: []outbox.DomainEvent{event}}, nil
}

func (s *service) Get(ctx context.Context, reportID uint) (*models.Report, error) {
	return s.repo.FindByID(ctx, reportID)
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]models.Report, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]models.Report, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListByStatus(ctx context.Context, status enums.ReportStatus) ([]models.Report, error) {
	if err := validators.Struct(statusInput{Status: string(status)}); err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *service) ListForVolunteer(ctx context.Context, volunteerID uint) ([]models.Report, error) {
	return s.repo.ListByVolunteer(ctx, volunteerID)
}

func (s *service) ListUnassigned(ctx context.Context) ([]models.Report, error) {
	return s.repo.ListUnassigned(ctx)
}

func (s *service) Counts(ctx context.Context) (StatusCounts, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *service) Assign(ctx context.Context, reportID, volunteerID uint) (*StatusUpdateResult, error) {
	result := &StatusUpdateResult{}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		reportRepo := NewRepository(tx)
		current, err := reportRepo.FindByIDForUpdate(ctx, reportID)
		if err != nil || current == nil {
			return err
		}

		volunteer, err := volunteers.NewRepository(tx).FindByID(ctx, volunteerID)
		if err != nil {
			return err
		}
		if volunteer == nil {
			return validators.FieldError("volunteerId", "does not exist")
		}
		if !volunteer.IsActive() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "volunteer is inactive").
				WithDetails(map[string]any{"volunteerId": volunteerID, "status": volunteer.Status})
		}

		next := enums.ReportStatusInProgress
		if err := s.checkTransition(current, next); err != nil {
			return err
		}

		at := s.timestamp()
		updated, err := reportRepo.ApplyStatusChange(ctx, reportID, StatusChange{
			Status:              next,
			AssignedVolunteerID: &volunteerID,
			At:                  at,
		})
		if err != nil || !updated {
			return err
		}

		report, err := reportRepo.FindByID(ctx, reportID)
		if err != nil {
			return err
		}

		actor := &outbox.ActorRef{Role: enums.ActorAdmin}
		result.Updated = true
		result.Report = report
		result.Events = []outbox.DomainEvent{
			outbox.NewEvent(enums.EventReportAssigned, reportID, actor, outbox.ReportAssignedEvent{
				ReportID:       reportID,
				VolunteerID:    volunteerID,
				PreviousStatus: current.Status,
			}, at),
			outbox.NewEvent(enums.EventReportStatusChanged, reportID, actor, outbox.ReportStatusChangedEvent{
				ReportID:    reportID,
				From:        current.Status,
				To:          next,
				VolunteerID: &volunteerID,
			}, at),
		}
		return nil
	})
	if err != nil {
		return nil, repo.StoreError(err, "assign report")
	}

	logCtx := s.logg.WithVolunteerID(s.logg.WithReportID(ctx, reportID), volunteerID)
	if result.Updated {
		s.logg.Info(logCtx, "report assigned")
	} else {
		s.logg.Info(logCtx, "assign skipped: report not found")
	}
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, params UpdateStatusParams) (*StatusUpdateResult, error) {
	if err := validators.Struct(statusInput{Status: string(params.Status)}); err != nil {
		return nil, err
	}
	actorRole := params.Actor
	if actorRole == "" {
		actorRole = enums.ActorAdmin
		if params.VolunteerID != nil {
			actorRole = enums.ActorVolunteer
		}
	}

	result := &StatusUpdateResult{}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		reportRepo := NewRepository(tx)
		current, err := reportRepo.FindByIDForUpdate(ctx, params.ReportID)
		if err != nil || current == nil {
			return err
		}

		change := StatusChange{
			Status:    params.Status,
			ImagePath: validators.OptionalString(params.ImagePath),
		}

		claimed := false
		if params.VolunteerID != nil {
			volunteerID := *params.VolunteerID
			volunteer, err := volunteers.NewRepository(tx).FindByID(ctx, volunteerID)
			if err != nil {
				return err
			}
			if volunteer == nil {
				return validators.FieldError("volunteerId", "does not exist")
			}
			switch {
			case current.AssignedVolunteerID == nil:
				change.AssignedVolunteerID = &volunteerID
				claimed = true
			case *current.AssignedVolunteerID != volunteerID:
				return pkgerrors.New(pkgerrors.CodeStateConflict, "report is assigned to another volunteer").
					WithDetails(map[string]any{"reportId": current.ID, "assignedVolunteerId": *current.AssignedVolunteerID})
			}
		}

		if err := s.checkTransition(current, params.Status); err != nil {
			return err
		}

		change.At = s.timestamp()
		updated, err := reportRepo.ApplyStatusChange(ctx, params.ReportID, change)
		if err != nil || !updated {
			return err
		}

		report, err := reportRepo.FindByID(ctx, params.ReportID)
		if err != nil {
			return err
		}

		result.Updated = true
		result.Report = report
		result.Events = s.statusEvents(current, report, params, actorRole, claimed, change)
		return nil
	})
	if err != nil {
		return nil, repo.StoreError(err, "update report status")
	}

	logCtx := s.logg.WithActorRole(s.logg.WithReportID(ctx, params.ReportID), string(actorRole))
	if result.Updated {
		s.logg.Info(s.logg.WithField(logCtx, "status", params.Status), "report status updated")
	} else {
		s.logg.Info(logCtx, "status update skipped: report not found")
	}
	return result, nil
}

func (s *service) statusEvents(before, after *models.Report, params UpdateStatusParams, role enums.ActorRole, claimed bool, change StatusChange) []outbox.DomainEvent {
	actor := &outbox.ActorRef{ID: params.VolunteerID, Role: role}
	events := make([]outbox.DomainEvent, 0, 3)
	if claimed {
		events = append(events, outbox.NewEvent(enums.EventReportAssigned, after.ID, actor, outbox.ReportAssignedEvent{
			ReportID:       after.ID,
			VolunteerID:    *params.VolunteerID,
			PreviousStatus: before.Status,
		}, change.At))
	}
	events = append(events, outbox.NewEvent(enums.EventReportStatusChanged, after.ID, actor, outbox.ReportStatusChangedEvent{
		ReportID:     after.ID,
		From:         before.Status,
		To:           after.Status,
		VolunteerID:  after.AssignedVolunteerID,
		ImageUpdated: change.ImagePath != nil,
	}, change.At))
	if after.Status == enums.ReportStatusResolved {
		events = append(events, outbox.NewEvent(enums.EventReportResolved, after.ID, actor, outbox.ReportResolvedEvent{
			ReportID:   after.ID,
			UserID:     after.UserID,
			ResolvedAt: change.At,
		}, change.At))
	}
	return events
}

func (s *service) checkTransition(current *models.Report, next enums.ReportStatus) error {
	if current.Status.CanTransitionTo(next, s.allowReopen) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "illegal report status transition").
		WithDetails(map[string]any{
			"reportId": current.ID,
			"from":     current.Status,
			"to":       next,
		})
}
