package services

import (
	"errors"
	"time"

	"openboard-api/models"
	"openboard-api/repositories"

	"gorm.io/gorm"
)

type ArticleService interface {
	Create(actor *models.User, boardID uint, req models.CreateArticleRequest) (*models.ArticleView, error)
	Get(actor *models.User, id uint) (*models.ArticleView, error)
	List(actor *models.User, boardID uint, params models.ListParams) ([]models.ArticleView, int64, error)
	Edit(actor *models.User, id uint, req models.UpdateArticleRequest) (*models.ArticleView, error)
	Remove(actor *models.User, id uint) error
	Snapshots(actor *models.User, id uint) ([]models.SnapshotView, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	boardRepo   repositories.BoardRepository
	access      AccessService
}

func NewArticleService(articleRepo repositories.ArticleRepository, boardRepo repositories.BoardRepository, access AccessService) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		boardRepo:   boardRepo,
		access:      access,
	}
}

func (s *articleService) Create(actor *models.User, boardID uint, req models.CreateArticleRequest) (*models.ArticleView, error) {
	if err := s.access.Check(models.ActionWriteArticle, actor, boardID); err != nil {
		return nil, err
	}

	// Root and first snapshot share one timestamp so UpdatedAt reads as
	// nil until the first edit.
	now := time.Now()
	article := &models.Article{
		BoardID:   boardID,
		AuthorID:  actor.ID,
		CreatedAt: now,
	}
	snapshot := &models.ArticleSnapshot{
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: now,
	}
	if err := s.articleRepo.CreateWithSnapshot(article, snapshot); err != nil {
		return nil, models.NewExternalError("Article.Create", err)
	}

	article.Author = actor
	return projectArticle(article, snapshot), nil
}

func (s *articleService) Get(actor *models.User, id uint) (*models.ArticleView, error) {
	article, err := s.getLive(id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(models.ActionReadArticle, actor, article.BoardID); err != nil {
		return nil, err
	}

	current, err := s.articleRepo.CurrentSnapshot(id)
	if err != nil {
		return nil, models.NewExternalError("Article.CurrentSnapshot", err)
	}
	return projectArticle(article, current), nil
}

func (s *articleService) List(actor *models.User, boardID uint, params models.ListParams) ([]models.ArticleView, int64, error) {
	if err := s.access.Check(models.ActionReadArticleList, actor, boardID); err != nil {
		return nil, 0, err
	}

	offset, limit, order := normalizeListParams(params)
	articles, total, err := s.articleRepo.List(boardID, offset, limit, order)
	if err != nil {
		return nil, 0, models.NewExternalError("Article.List", err)
	}

	ids := make([]uint, len(articles))
	for i, article := range articles {
		ids[i] = article.ID
	}
	currents, err := s.articleRepo.CurrentSnapshots(ids)
	if err != nil {
		return nil, 0, models.NewExternalError("Article.CurrentSnapshots", err)
	}

	views := make([]models.ArticleView, 0, len(articles))
	for i := range articles {
		current, ok := currents[articles[i].ID]
		if !ok {
			continue
		}
		views = append(views, *projectArticle(&articles[i], &current))
	}
	return views, total, nil
}

func (s *articleService) Edit(actor *models.User, id uint, req models.UpdateArticleRequest) (*models.ArticleView, error) {
	article, err := s.getLive(id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actor.ID {
		return nil, models.NewAppError(models.CodeInsufficientPermission)
	}
	if err := s.access.Check(models.ActionWriteArticle, actor, article.BoardID); err != nil {
		return nil, err
	}

	snapshot := &models.ArticleSnapshot{
		ArticleID: article.ID,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	if err := s.articleRepo.AppendSnapshot(snapshot); err != nil {
		return nil, models.NewExternalError("Article.AppendSnapshot", err)
	}
	return projectArticle(article, snapshot), nil
}

// Remove soft-deletes the article. It is idempotent: removing an already
// removed article is a no-op, so the root is looked up unscoped.
func (s *articleService) Remove(actor *models.User, id uint) error {
	article, err := s.articleRepo.GetAnyByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewAppError(models.CodeNotFoundArticle)
		}
		return models.NewExternalError("Article.GetAnyByID", err)
	}

	if err := s.access.Check(models.ActionWriteArticle, actor, article.BoardID); err != nil {
		return err
	}
	if article.AuthorID != actor.ID {
		if err := s.requireManager(actor, article.BoardID); err != nil {
			return err
		}
	}

	if err := s.articleRepo.Delete(id); err != nil {
		return models.NewExternalError("Article.Delete", err)
	}
	return nil
}

func (s *articleService) Snapshots(actor *models.User, id uint) ([]models.SnapshotView, error) {
	article, err := s.getLive(id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(models.ActionReadArticle, actor, article.BoardID); err != nil {
		return nil, err
	}

	snapshots, err := s.articleRepo.Snapshots(id)
	if err != nil {
		return nil, models.NewExternalError("Article.Snapshots", err)
	}

	views := make([]models.SnapshotView, len(snapshots))
	for i, snapshot := range snapshots {
		views[i] = models.SnapshotView{
			ID:        snapshot.ID,
			Title:     snapshot.Title,
			Body:      snapshot.Body,
			CreatedAt: snapshot.CreatedAt,
		}
	}
	return views, nil
}

func (s *articleService) getLive(id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAppError(models.CodeNotFoundArticle)
		}
		return nil, models.NewExternalError("Article.GetByID", err)
	}
	return article, nil
}

func (s *articleService) requireManager(actor *models.User, boardID uint) error {
	board, err := s.boardRepo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewAppError(models.CodeNotFoundBoard)
		}
		return models.NewExternalError("Board.GetByID", err)
	}
	return CompareRank(membershipOf(actor), board.RequiredMembership(models.ActionManage))
}

func projectArticle(article *models.Article, current *models.ArticleSnapshot) *models.ArticleView {
	var updatedAt *time.Time
	if !current.CreatedAt.Equal(article.CreatedAt) {
		t := current.CreatedAt
		updatedAt = &t
	}
	return &models.ArticleView{
		ID:        article.ID,
		BoardID:   article.BoardID,
		Author:    models.NewAuthorView(article.Author),
		Title:     current.Title,
		Body:      current.Body,
		CreatedAt: article.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func normalizeListParams(params models.ListParams) (offset, limit int, order string) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit = params.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	order = params.SortOrder
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	return (page - 1) * limit, limit, order
}
