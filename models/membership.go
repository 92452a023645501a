package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership is the access-control primitive. Rank is a total order;
// higher means more privileged. A user without a membership ranks strictly
// below every membership.
type Membership struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	Rank      uint           `json:"rank" gorm:"not null"`
	ImageURL  *string        `json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
