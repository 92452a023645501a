package models

import "time"

type CommentSnapshot struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CommentID uint      `json:"comment_id" gorm:"not null;index:idx_comment_snapshots_current,priority:1"`
	Body      string    `json:"body" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comment_snapshots_current,priority:2,sort:desc"`
}
