package models

import (
	"time"

	"gorm.io/datatypes"
)

type ValidationReport struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"-"`
	BusinessIdeaID uint           `gorm:"not null;index" json:"business_idea_id"`
	ReportData     datatypes.JSON `gorm:"type:jsonb;not null" json:"report_data"`
	AverageScore   float64        `gorm:"not null" json:"average_score"`
	CreatedAt      time.Time      `json:"created_at"`

	BusinessIdea *BusinessIdea `gorm:"foreignKey:BusinessIdeaID;constraint:OnDelete:CASCADE" json:"business_idea,omitempty"`
}
