package volunteers

import (
	"context"

	"github.com/helphub/helphub-backend/internal/repo"
	"github.com/helphub/helphub-backend/pkg/db"
	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/enums"
	"github.com/helphub/helphub-backend/pkg/validators"
	"gorm.io/gorm"
)

// Repository exposes volunteer persistence operations.
type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) Create(ctx context.Context, dto CreateVolunteerDTO) (*models.Volunteer, error) {
	volunteer := dto.ToModel()
	if err := r.DB(ctx).Create(volunteer).Error; err != nil {
		return nil, repo.StoreError(err, "create volunteer")
	}
	return volunteer, nil
}

// FindByEmail returns nil when no volunteer uses the address.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.DB(ctx).Where("LOWER(email) = ?", validators.NormalizeEmail(email)).First(&volunteer).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, repo.StoreError(err, "find volunteer by email")
	}
	return &volunteer, nil
}

// FindByID returns nil when the volunteer does not exist.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.DB(ctx).First(&volunteer, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, repo.StoreError(err, "find volunteer by id")
	}
	return &volunteer, nil
}

// List returns every volunteer in id order.
func (r *Repository) List(ctx context.Context) ([]models.Volunteer, error) {
	volunteers := []models.Volunteer{}
	if err := r.DB(ctx).Order("id ASC").Find(&volunteers).Error; err != nil {
		return nil, repo.StoreError(err, "list volunteers")
	}
	return volunteers, nil
}

// ListByStatus returns the volunteers in the given status, id order.
func (r *Repository) ListByStatus(ctx context.Context, status enums.VolunteerStatus) ([]models.Volunteer, error) {
	volunteers := []models.Volunteer{}
	if err := r.DB(ctx).Where("status = ?", status).Order("id ASC").Find(&volunteers).Error; err != nil {
		return nil, repo.StoreError(err, "list volunteers by status")
	}
	return volunteers, nil
}

// UpdateStatus sets the volunteer status and reports whether a row matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uint, status enums.VolunteerStatus) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Volunteer{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if res.Error != nil {
		return false, repo.StoreError(res.Error, "update volunteer status")
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) CountByStatus(ctx context.Context, status enums.VolunteerStatus) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Volunteer{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, repo.StoreError(err, "count volunteers")
	}
	return count, nil
}
