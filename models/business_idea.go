package models

import (
	"time"

	"gorm.io/datatypes"
)

type BusinessIdea struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"-"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	SelectedTools datatypes.JSON `gorm:"type:jsonb;not null" json:"selected_tools"`
	CreatedAt     time.Time      `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
