package models

import "github.com/helphub/helphub-backend/pkg/enums"

// Volunteer is a registered resolver of reports.
type Volunteer struct {
	ID       uint                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string                `gorm:"column:name" json:"name"`
	Phone    string                `gorm:"column:phone" json:"phone"`
	City     string                `gorm:"column:city" json:"city"`
	Email    string                `gorm:"column:email;uniqueIndex" json:"email"`
	Password string                `gorm:"column:password" json:"-"`
	Status   enums.VolunteerStatus `gorm:"column:status;default:active" json:"status"`
}

func (Volunteer) TableName() string { return "volunteers" }

// IsActive reports whether the volunteer can take assignments.
func (v Volunteer) IsActive() bool {
	return v.Status == enums.VolunteerStatusActive
}
