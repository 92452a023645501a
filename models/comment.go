package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a versioned root like Article, scoped to an article and
// optionally replying to a parent comment. Deleting a parent does not
// cascade; children stay independently addressable.
type Comment struct {
	ID              uint              `json:"id" gorm:"primarykey"`
	ArticleID       uint              `json:"article_id" gorm:"not null;index"`
	Article         *Article          `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	AuthorID        uint              `json:"author_id" gorm:"not null"`
	Author          *User             `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ParentCommentID *uint             `json:"parent_comment_id" gorm:"index"`
	ParentComment   *Comment          `json:"parent_comment,omitempty" gorm:"foreignKey:ParentCommentID"`
	Snapshots       []CommentSnapshot `json:"snapshots,omitempty" gorm:"foreignKey:CommentID"`
	CreatedAt       time.Time         `json:"created_at"`
	DeletedAt       gorm.DeletedAt    `json:"-" gorm:"index"`
}
