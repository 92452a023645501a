package services

import (
	"sort"
	"time"

	"openboard-api/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the gorm implementations'
// contracts, including soft-delete visibility and gorm.ErrRecordNotFound.

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok || user.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email && !user.DeletedAt.Valid {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByOAuthSubject(subject string) (*models.User, error) {
	for _, user := range r.users {
		if user.OAuthSubject != nil && *user.OAuthSubject == subject && !user.DeletedAt.Valid {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) anyByID(id uint) *models.User {
	return r.users[id]
}

func (r *fakeUserRepo) markDeleted(id uint) {
	r.users[id].DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
}

type fakeBoardRepo struct {
	boards map[uint]*models.Board
}

func newFakeBoardRepo(boards ...*models.Board) *fakeBoardRepo {
	repo := &fakeBoardRepo{boards: map[uint]*models.Board{}}
	for _, board := range boards {
		repo.boards[board.ID] = board
	}
	return repo
}

func (r *fakeBoardRepo) GetByID(id uint) (*models.Board, error) {
	board, ok := r.boards[id]
	if !ok || board.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return board, nil
}

func (r *fakeBoardRepo) GetAll() ([]models.Board, error) {
	var boards []models.Board
	for _, board := range r.boards {
		if !board.DeletedAt.Valid {
			boards = append(boards, *board)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID < boards[j].ID })
	return boards, nil
}

type fakeArticleRepo struct {
	users     *fakeUserRepo
	nextID    uint
	articles  map[uint]*models.Article
	snapID    uint
	snapshots []*models.ArticleSnapshot
}

func newFakeArticleRepo(users *fakeUserRepo) *fakeArticleRepo {
	return &fakeArticleRepo{users: users, articles: map[uint]*models.Article{}}
}

func (r *fakeArticleRepo) CreateWithSnapshot(article *models.Article, snapshot *models.ArticleSnapshot) error {
	r.nextID++
	article.ID = r.nextID
	r.articles[article.ID] = article
	snapshot.ArticleID = article.ID
	return r.AppendSnapshot(snapshot)
}

func (r *fakeArticleRepo) AppendSnapshot(snapshot *models.ArticleSnapshot) error {
	r.snapID++
	snapshot.ID = r.snapID
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

func (r *fakeArticleRepo) GetByID(id uint) (*models.Article, error) {
	article, ok := r.articles[id]
	if !ok || article.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	article.Author = r.users.anyByID(article.AuthorID)
	return article, nil
}

func (r *fakeArticleRepo) GetAnyByID(id uint) (*models.Article, error) {
	article, ok := r.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	article.Author = r.users.anyByID(article.AuthorID)
	return article, nil
}

func (r *fakeArticleRepo) CurrentSnapshot(articleID uint) (*models.ArticleSnapshot, error) {
	var current *models.ArticleSnapshot
	for _, snapshot := range r.snapshots {
		if snapshot.ArticleID != articleID {
			continue
		}
		if current == nil ||
			snapshot.CreatedAt.After(current.CreatedAt) ||
			(snapshot.CreatedAt.Equal(current.CreatedAt) && snapshot.ID > current.ID) {
			current = snapshot
		}
	}
	if current == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return current, nil
}

func (r *fakeArticleRepo) CurrentSnapshots(articleIDs []uint) (map[uint]models.ArticleSnapshot, error) {
	current := make(map[uint]models.ArticleSnapshot, len(articleIDs))
	for _, id := range articleIDs {
		snapshot, err := r.CurrentSnapshot(id)
		if err != nil {
			continue
		}
		current[id] = *snapshot
	}
	return current, nil
}

func (r *fakeArticleRepo) Snapshots(articleID uint) ([]models.ArticleSnapshot, error) {
	var snapshots []models.ArticleSnapshot
	for _, snapshot := range r.snapshots {
		if snapshot.ArticleID == articleID {
			snapshots = append(snapshots, *snapshot)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
		}
		return snapshots[i].ID < snapshots[j].ID
	})
	return snapshots, nil
}

func (r *fakeArticleRepo) List(boardID uint, offset, limit int, order string) ([]models.Article, int64, error) {
	var articles []models.Article
	for _, article := range r.articles {
		if article.BoardID == boardID && !article.DeletedAt.Valid {
			article.Author = r.users.anyByID(article.AuthorID)
			articles = append(articles, *article)
		}
	}
	sort.Slice(articles, func(i, j int) bool {
		if !articles[i].CreatedAt.Equal(articles[j].CreatedAt) {
			before := articles[i].CreatedAt.Before(articles[j].CreatedAt)
			if order == "desc" {
				return !before
			}
			return before
		}
		if order == "desc" {
			return articles[i].ID > articles[j].ID
		}
		return articles[i].ID < articles[j].ID
	})

	total := int64(len(articles))
	if offset >= len(articles) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(articles) {
		end = len(articles)
	}
	return articles[offset:end], total, nil
}

func (r *fakeArticleRepo) Delete(id uint) error {
	if article, ok := r.articles[id]; ok && !article.DeletedAt.Valid {
		article.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

type fakeCommentRepo struct {
	users     *fakeUserRepo
	nextID    uint
	comments  map[uint]*models.Comment
	snapID    uint
	snapshots []*models.CommentSnapshot
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{users: users, comments: map[uint]*models.Comment{}}
}

func (r *fakeCommentRepo) CreateWithSnapshot(comment *models.Comment, snapshot *models.CommentSnapshot) error {
	r.nextID++
	comment.ID = r.nextID
	r.comments[comment.ID] = comment
	snapshot.CommentID = comment.ID
	return r.AppendSnapshot(snapshot)
}

func (r *fakeCommentRepo) AppendSnapshot(snapshot *models.CommentSnapshot) error {
	r.snapID++
	snapshot.ID = r.snapID
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

func (r *fakeCommentRepo) GetByID(id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok || comment.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	comment.Author = r.users.anyByID(comment.AuthorID)
	return comment, nil
}

func (r *fakeCommentRepo) GetAnyByID(id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	comment.Author = r.users.anyByID(comment.AuthorID)
	return comment, nil
}

func (r *fakeCommentRepo) CurrentSnapshot(commentID uint) (*models.CommentSnapshot, error) {
	var current *models.CommentSnapshot
	for _, snapshot := range r.snapshots {
		if snapshot.CommentID != commentID {
			continue
		}
		if current == nil ||
			snapshot.CreatedAt.After(current.CreatedAt) ||
			(snapshot.CreatedAt.Equal(current.CreatedAt) && snapshot.ID > current.ID) {
			current = snapshot
		}
	}
	if current == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return current, nil
}

func (r *fakeCommentRepo) CurrentSnapshots(commentIDs []uint) (map[uint]models.CommentSnapshot, error) {
	current := make(map[uint]models.CommentSnapshot, len(commentIDs))
	for _, id := range commentIDs {
		snapshot, err := r.CurrentSnapshot(id)
		if err != nil {
			continue
		}
		current[id] = *snapshot
	}
	return current, nil
}

func (r *fakeCommentRepo) Snapshots(commentID uint) ([]models.CommentSnapshot, error) {
	var snapshots []models.CommentSnapshot
	for _, snapshot := range r.snapshots {
		if snapshot.CommentID == commentID {
			snapshots = append(snapshots, *snapshot)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
		}
		return snapshots[i].ID < snapshots[j].ID
	})
	return snapshots, nil
}

func (r *fakeCommentRepo) List(articleID uint, offset, limit int, order string) ([]models.Comment, int64, error) {
	var comments []models.Comment
	for _, comment := range r.comments {
		if comment.ArticleID == articleID && !comment.DeletedAt.Valid {
			comment.Author = r.users.anyByID(comment.AuthorID)
			comments = append(comments, *comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			before := comments[i].CreatedAt.Before(comments[j].CreatedAt)
			if order == "desc" {
				return !before
			}
			return before
		}
		if order == "desc" {
			return comments[i].ID > comments[j].ID
		}
		return comments[i].ID < comments[j].ID
	})

	total := int64(len(comments))
	if offset >= len(comments) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(comments) {
		end = len(comments)
	}
	return comments[offset:end], total, nil
}

func (r *fakeCommentRepo) Delete(id uint) error {
	if comment, ok := r.comments[id]; ok && !comment.DeletedAt.Valid {
		comment.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

// Fixture helpers shared by the service tests.

func membershipWithRank(id, rank uint, name string) *models.Membership {
	return &models.Membership{ID: id, Name: name, Rank: rank}
}

// publicBoard has no read requirements; writes need write, management
// needs manager.
func publicBoard(id uint, write, manager *models.Membership) *models.Board {
	return &models.Board{
		ID:                       id,
		Name:                     "board-" + write.Name,
		WriteArticleMembershipID: write.ID,
		WriteArticleMembership:   *write,
		WriteCommentMembershipID: write.ID,
		WriteCommentMembership:   *write,
		ManagerMembershipID:      manager.ID,
		ManagerMembership:        *manager,
	}
}

// gatedBoard additionally requires read for all read actions.
func gatedBoard(id uint, read, write, manager *models.Membership) *models.Board {
	board := publicBoard(id, write, manager)
	board.ID = id
	board.Name = "gated-" + read.Name
	board.ReadArticleListMembershipID = &read.ID
	board.ReadArticleListMembership = read
	board.ReadArticleMembershipID = &read.ID
	board.ReadArticleMembership = read
	board.ReadCommentListMembershipID = &read.ID
	board.ReadCommentListMembership = read
	return board
}

func userWithMembership(repo *fakeUserRepo, username string, membership *models.Membership) *models.User {
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	if membership != nil {
		user.MembershipID = &membership.ID
		user.Membership = membership
	}
	repo.Create(user)
	return user
}
