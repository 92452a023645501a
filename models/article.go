package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is the stable identity of a post; its content lives in an
// append-only series of snapshots. Deleting an article sets DeletedAt and
// hides it from normal lookup; snapshots are retained.
type Article struct {
	ID        uint              `json:"id" gorm:"primarykey"`
	BoardID   uint              `json:"board_id" gorm:"not null;index"`
	Board     *Board            `json:"board,omitempty" gorm:"foreignKey:BoardID"`
	AuthorID  uint              `json:"author_id" gorm:"not null"`
	Author    *User             `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Snapshots []ArticleSnapshot `json:"snapshots,omitempty" gorm:"foreignKey:ArticleID"`
	CreatedAt time.Time         `json:"created_at"`
	DeletedAt gorm.DeletedAt    `json:"-" gorm:"index"`
}
