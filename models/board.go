package models

import (
	"time"

	"gorm.io/gorm"
)

// BoardAction names the gated operations on a board.
type BoardAction string

const (
	ActionReadArticleList BoardAction = "read_article_list"
	ActionReadArticle     BoardAction = "read_article"
	ActionReadCommentList BoardAction = "read_comment_list"
	ActionWriteArticle    BoardAction = "write_article"
	ActionWriteComment    BoardAction = "write_comment"
	ActionManage          BoardAction = "manage"
)

// Board gates each action by a minimum membership. A null reference on a
// read action means the action is public; write and manager references are
// always concrete.
type Board struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`

	ReadArticleListMembershipID *uint       `json:"read_article_list_membership_id"`
	ReadArticleListMembership   *Membership `json:"read_article_list_membership,omitempty" gorm:"foreignKey:ReadArticleListMembershipID"`
	ReadArticleMembershipID     *uint       `json:"read_article_membership_id"`
	ReadArticleMembership       *Membership `json:"read_article_membership,omitempty" gorm:"foreignKey:ReadArticleMembershipID"`
	ReadCommentListMembershipID *uint       `json:"read_comment_list_membership_id"`
	ReadCommentListMembership   *Membership `json:"read_comment_list_membership,omitempty" gorm:"foreignKey:ReadCommentListMembershipID"`
	WriteArticleMembershipID    uint        `json:"write_article_membership_id" gorm:"not null"`
	WriteArticleMembership      Membership  `json:"write_article_membership" gorm:"foreignKey:WriteArticleMembershipID"`
	WriteCommentMembershipID    uint        `json:"write_comment_membership_id" gorm:"not null"`
	WriteCommentMembership      Membership  `json:"write_comment_membership" gorm:"foreignKey:WriteCommentMembershipID"`
	ManagerMembershipID         uint        `json:"manager_membership_id" gorm:"not null"`
	ManagerMembership           Membership  `json:"manager_membership" gorm:"foreignKey:ManagerMembershipID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// RequiredMembership returns the minimum membership configured for action,
// or nil when the action is public on this board. The board must have been
// loaded with its membership references.
func (b *Board) RequiredMembership(action BoardAction) *Membership {
	switch action {
	case ActionReadArticleList:
		return b.ReadArticleListMembership
	case ActionReadArticle:
		return b.ReadArticleMembership
	case ActionReadCommentList:
		return b.ReadCommentListMembership
	case ActionWriteArticle:
		return &b.WriteArticleMembership
	case ActionWriteComment:
		return &b.WriteCommentMembership
	case ActionManage:
		return &b.ManagerMembership
	}
	return nil
}
