package users

import (
	"context"

	"github.com/helphub/helphub-backend/internal/repo"
	"github.com/helphub/helphub-backend/pkg/db"
	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/validators"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, repo.StoreError(err, "create user")
	}
	return user, nil
}

// FindByEmail retrieves the user matching the email, ignoring case; nil when absent.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("LOWER(email) = ?", validators.NormalizeEmail(email)).First(&user).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, repo.StoreError(err, "find user by email")
	}
	return &user, nil
}

// FindByID loads a user by id; nil when absent.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, repo.StoreError(err, "find user by id")
	}
	return &user, nil
}

// Exists reports whether a user row with the id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, repo.StoreError(err, "check user exists")
	}
	return count > 0, nil
}

// Count returns the number of registered users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, repo.StoreError(err, "count users")
	}
	return count, nil
}
