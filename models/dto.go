package models

import "time"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type OAuthLoginRequest struct {
	ProviderToken string `json:"provider_token" binding:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}

type CreateArticleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
	Body  string `json:"body" binding:"required"`
}

type UpdateArticleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
	Body  string `json:"body" binding:"required"`
}

type CreateCommentRequest struct {
	Body            string `json:"body" binding:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

type ListParams struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	SortOrder string `form:"sort_order,default=desc" binding:"omitempty,oneof=asc desc"`
}

type UserView struct {
	ID              uint        `json:"id"`
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	ProfileImageURL *string     `json:"profile_image_url,omitempty"`
	Membership      *Membership `json:"membership,omitempty"`
}

func NewUserView(u *User) UserView {
	return UserView{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		Membership:      u.Membership,
	}
}

type AuthorView struct {
	ID              uint    `json:"id"`
	Username        string  `json:"username"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// DeletedAuthor is the fixed projection used when the author's account has
// been removed. Content outlives its author.
func DeletedAuthor() AuthorView {
	return AuthorView{Username: "deleted user"}
}

// NewAuthorView projects u for display, substituting the deleted-user
// sentinel when the account is gone.
func NewAuthorView(u *User) AuthorView {
	if u == nil || u.ID == 0 || u.DeletedAt.Valid {
		return DeletedAuthor()
	}
	return AuthorView{
		ID:              u.ID,
		Username:        u.Username,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// ArticleView is an article's root joined with its current snapshot.
// UpdatedAt is nil until the first edit.
type ArticleView struct {
	ID        uint       `json:"id"`
	BoardID   uint       `json:"board_id"`
	Author    AuthorView `json:"author"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CommentView struct {
	ID              uint       `json:"id"`
	ArticleID       uint       `json:"article_id"`
	ParentCommentID *uint      `json:"parent_comment_id,omitempty"`
	Author          AuthorView `json:"author"`
	Body            string     `json:"body"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

type SnapshotView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
