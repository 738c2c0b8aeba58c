package volunteers

import (
	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/enums"
)

// CreateVolunteerDTO holds the data required by the repo to persist a new volunteer.
type CreateVolunteerDTO struct {
	Name         string
	Phone        string
	City         string
	Email        string
	PasswordHash string
}

func (c CreateVolunteerDTO) ToModel() *models.Volunteer {
	return &models.Volunteer{
		Name:     c.Name,
		Phone:    c.Phone,
		City:     c.City,
		Email:    c.Email,
		Password: c.PasswordHash,
		Status:   enums.VolunteerStatusActive,
	}
}
