package models

import (
	dbtypes "github.com/helphub/helphub-backend/pkg/db/types"
	"github.com/helphub/helphub-backend/pkg/enums"
)

// Report is a submitted civic issue. Column names and the ISO-8601 text
// timestamps keep the layout of existing helphub.db files.
type Report struct {
	ID                  uint               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID              *uint              `gorm:"column:userId" json:"userId"`
	Description         string             `gorm:"column:description" json:"description"`
	VoicePath           *string            `gorm:"column:voicePath" json:"voicePath"`
	ImagePath           *string            `gorm:"column:imagePath" json:"imagePath"`
	Status              enums.ReportStatus `gorm:"column:status;default:pending" json:"status"`
	AssignedVolunteerID *uint              `gorm:"column:assignedVolunteerId" json:"assignedVolunteerId"`
	CreatedAt           dbtypes.Timestamp  `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt           dbtypes.Timestamp  `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
}

func (Report) TableName() string { return "reports" }

// IsAnonymous reports whether the report was submitted without an owner.
func (r Report) IsAnonymous() bool {
	return r.UserID == nil
}
