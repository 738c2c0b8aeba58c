package models

import "github.com/helphub/helphub-backend/pkg/enums"

// User is a registered reporter.
type User struct {
	ID       uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string         `gorm:"column:name" json:"name"`
	Phone    string         `gorm:"column:phone" json:"phone"`
	Age      int            `gorm:"column:age" json:"age"`
	City     string         `gorm:"column:city" json:"city"`
	Email    string         `gorm:"column:email;uniqueIndex" json:"email"`
	Password string         `gorm:"column:password" json:"-"`
	Role     enums.UserRole `gorm:"column:role;default:user" json:"role"`
}

func (User) TableName() string { return "users" }
