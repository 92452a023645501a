package services

import (
	"errors"
	"time"

	"openboard-api/models"
	"openboard-api/repositories"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(actor *models.User, articleID uint, req models.CreateCommentRequest) (*models.CommentView, error)
	Get(actor *models.User, id uint) (*models.CommentView, error)
	List(actor *models.User, articleID uint, params models.ListParams) ([]models.CommentView, int64, error)
	Edit(actor *models.User, id uint, req models.UpdateCommentRequest) (*models.CommentView, error)
	Remove(actor *models.User, id uint) error
	Snapshots(actor *models.User, id uint) ([]models.SnapshotView, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	articleRepo repositories.ArticleRepository
	boardRepo   repositories.BoardRepository
	access      AccessService
}

func NewCommentService(commentRepo repositories.CommentRepository, articleRepo repositories.ArticleRepository, boardRepo repositories.BoardRepository, access AccessService) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		boardRepo:   boardRepo,
		access:      access,
	}
}

func (s *commentService) Create(actor *models.User, articleID uint, req models.CreateCommentRequest) (*models.CommentView, error) {
	article, err := s.liveArticle(articleID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(models.ActionWriteComment, actor, article.BoardID); err != nil {
		return nil, err
	}

	if req.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(*req.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewAppError(models.CodeNotFoundComment)
			}
			return nil, models.NewExternalError("Comment.GetByID", err)
		}
		if parent.ArticleID != articleID {
			return nil, models.NewAppError(models.CodeNotFoundComment)
		}
	}

	now := time.Now()
	comment := &models.Comment{
		ArticleID:       articleID,
		AuthorID:        actor.ID,
		ParentCommentID: req.ParentCommentID,
		CreatedAt:       now,
	}
	snapshot := &models.CommentSnapshot{
		Body:      req.Body,
		CreatedAt: now,
	}
	if err := s.commentRepo.CreateWithSnapshot(comment, snapshot); err != nil {
		return nil, models.NewExternalError("Comment.Create", err)
	}

	comment.Author = actor
	return projectComment(comment, snapshot), nil
}

func (s *commentService) Get(actor *models.User, id uint) (*models.CommentView, error) {
	comment, err := s.getLive(id)
	if err != nil {
		return nil, err
	}
	article, err := s.liveArticle(comment.ArticleID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(models.ActionReadCommentList, actor, article.BoardID); err != nil {
		return nil, err
	}

	current, err := s.commentRepo.CurrentSnapshot(id)
	if err != nil {
		return nil, models.NewExternalError("Comment.CurrentSnapshot", err)
	}
	return projectComment(comment, current), nil
}

func (s *commentService) List(actor *models.User, articleID uint, params models.ListParams) ([]models.CommentView, int64, error) {
	article, err := s.liveArticle(articleID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.access.Check(models.ActionReadCommentList, actor, article.BoardID); err != nil {
		return nil, 0, err
	}

	offset, limit, order := normalizeListParams(params)
	comments, total, err := s.commentRepo.List(articleID, offset, limit, order)
	if err != nil {
		return nil, 0, models.NewExternalError("Comment.List", err)
	}

	ids := make([]uint, len(comments))
	for i, comment := range comments {
		ids[i] = comment.ID
	}
	currents, err := s.commentRepo.CurrentSnapshots(ids)
	if err != nil {
		return nil, 0, models.NewExternalError("Comment.CurrentSnapshots", err)
	}

	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		current, ok := currents[comments[i].ID]
		if !ok {
			continue
		}
		views = append(views, *projectComment(&comments[i], &current))
	}
	return views, total, nil
}

func (s *commentService) Edit(actor *models.User, id uint, req models.UpdateCommentRequest) (*models.CommentView, error) {
	comment, err := s.getLive(id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.ID {
		return nil, models.NewAppError(models.CodeInsufficientPermission)
	}
	article, err := s.liveArticle(comment.ArticleID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(models.ActionWriteComment, actor, article.BoardID); err != nil {
		return nil, err
	}

	snapshot := &models.CommentSnapshot{
		CommentID: comment.ID,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.AppendSnapshot(snapshot); err != nil {
		return nil, models.NewExternalError("Comment.AppendSnapshot", err)
	}
	return projectComment(comment, snapshot), nil
}

// Remove soft-deletes one comment. Children are left alone; a deleted
// parent's replies remain addressable.
func (s *commentService) Remove(actor *models.User, id uint) error {
	comment, err := s.commentRepo.GetAnyByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewAppError(models.CodeNotFoundComment)
		}
		return models.NewExternalError("Comment.GetAnyByID", err)
	}

	article, err := s.articleRepo.GetAnyByID(comment.ArticleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewAppError(models.CodeNotFoundArticle)
		}
		return models.NewExternalError("Article.GetAnyByID", err)
	}

	if err := s.access.Check(models.ActionWriteComment, actor, article.BoardID); err != nil {
		return err
	}
	if comment.AuthorID != actor.ID {
		if err := s.requireManager(actor, article.BoardID); err != nil {
			return err
		}
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return models.NewExternalError("Comment.Delete", err)
	}
	return nil
}

func (s *commentService) Snapshots(actor *models.User, id uint) ([]models.SnapshotView, error) {
	comment, err := s.getLive(id)
	if err != nil {
		return nil, err
	}
	article, err := s.liveArticle(comment.ArticleID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(models.ActionReadCommentList, actor, article.BoardID); err != nil {
		return nil, err
	}

	snapshots, err := s.commentRepo.Snapshots(id)
	if err != nil {
		return nil, models.NewExternalError("Comment.Snapshots", err)
	}

	views := make([]models.SnapshotView, len(snapshots))
	for i, snapshot := range snapshots {
		views[i] = models.SnapshotView{
			ID:        snapshot.ID,
			Body:      snapshot.Body,
			CreatedAt: snapshot.CreatedAt,
		}
	}
	return views, nil
}

func (s *commentService) getLive(id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAppError(models.CodeNotFoundComment)
		}
		return nil, models.NewExternalError("Comment.GetByID", err)
	}
	return comment, nil
}

func (s *commentService) liveArticle(id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAppError(models.CodeNotFoundArticle)
		}
		return nil, models.NewExternalError("Article.GetByID", err)
	}
	return article, nil
}

func (s *commentService) requireManager(actor *models.User, boardID uint) error {
	board, err := s.boardRepo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewAppError(models.CodeNotFoundBoard)
		}
		return models.NewExternalError("Board.GetByID", err)
	}
	return CompareRank(membershipOf(actor), board.RequiredMembership(models.ActionManage))
}

func projectComment(comment *models.Comment, current *models.CommentSnapshot) *models.CommentView {
	var updatedAt *time.Time
	if !current.CreatedAt.Equal(comment.CreatedAt) {
		t := current.CreatedAt
		updatedAt = &t
	}
	return &models.CommentView{
		ID:              comment.ID,
		ArticleID:       comment.ArticleID,
		ParentCommentID: comment.ParentCommentID,
		Author:          models.NewAuthorView(comment.Author),
		Body:            current.Body,
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}
