package models

import "time"

// ArticleSnapshot is one immutable version of an article's content. Edits
// append snapshots; nothing ever updates or deletes one. The current
// snapshot is the one with the latest CreatedAt, ties broken by ID.
type ArticleSnapshot struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ArticleID uint      `json:"article_id" gorm:"not null;index:idx_article_snapshots_current,priority:1"`
	Title     string    `json:"title" gorm:"not null"`
	Body      string    `json:"body" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_article_snapshots_current,priority:2,sort:desc"`
}
