package users

import (
	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/enums"
)

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Phone        string
	Age          int
	City         string
	Email        string
	PasswordHash string
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:     c.Name,
		Phone:    c.Phone,
		Age:      c.Age,
		City:     c.City,
		Email:    c.Email,
		Password: c.PasswordHash,
		Role:     enums.UserRoleUser,
	}
}
