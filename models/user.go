package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID              uint           `json:"id" gorm:"primarykey"`
	Username        string         `json:"username" gorm:"uniqueIndex;not null"`
	Email           string         `json:"email" gorm:"uniqueIndex;not null"`
	Password        string         `json:"-"`
	OAuthSubject    *string        `json:"-" gorm:"uniqueIndex"`
	ProfileImageURL *string        `json:"profile_image_url"`
	MembershipID    *uint          `json:"membership_id"`
	Membership      *Membership    `json:"membership,omitempty" gorm:"foreignKey:MembershipID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}
