package repositories

import (
	"fmt"

	"openboard-api/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	// CreateWithSnapshot inserts the root and its first snapshot in one
	// transaction. Timestamps are the caller's responsibility.
	CreateWithSnapshot(article *models.Article, snapshot *models.ArticleSnapshot) error
	AppendSnapshot(snapshot *models.ArticleSnapshot) error
	GetByID(id uint) (*models.Article, error)
	// GetAnyByID also finds soft-deleted roots; used by the idempotent
	// remove path.
	GetAnyByID(id uint) (*models.Article, error)
	CurrentSnapshot(articleID uint) (*models.ArticleSnapshot, error)
	CurrentSnapshots(articleIDs []uint) (map[uint]models.ArticleSnapshot, error)
	Snapshots(articleID uint) ([]models.ArticleSnapshot, error)
	List(boardID uint, offset, limit int, order string) ([]models.Article, int64, error)
	Delete(id uint) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) CreateWithSnapshot(article *models.Article, snapshot *models.ArticleSnapshot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		snapshot.ArticleID = article.ID
		return tx.Create(snapshot).Error
	})
}

func (r *articleRepository) AppendSnapshot(snapshot *models.ArticleSnapshot) error {
	return r.db.Create(snapshot).Error
}

// preloadAuthor keeps soft-deleted authors loadable so reads can project
// the deleted-user sentinel instead of losing the row.
func preloadAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	})
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := preloadAuthor(r.db).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetAnyByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := preloadAuthor(r.db.Unscoped()).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) CurrentSnapshot(articleID uint) (*models.ArticleSnapshot, error) {
	var snapshot models.ArticleSnapshot
	err := r.db.Where("article_id = ?", articleID).
		Order("created_at DESC, id DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *articleRepository) CurrentSnapshots(articleIDs []uint) (map[uint]models.ArticleSnapshot, error) {
	current := make(map[uint]models.ArticleSnapshot, len(articleIDs))
	if len(articleIDs) == 0 {
		return current, nil
	}

	var snapshots []models.ArticleSnapshot
	err := r.db.Raw(`
		SELECT DISTINCT ON (article_id) *
		FROM article_snapshots
		WHERE article_id IN ?
		ORDER BY article_id, created_at DESC, id DESC
	`, articleIDs).Scan(&snapshots).Error
	if err != nil {
		return nil, err
	}

	for _, snapshot := range snapshots {
		current[snapshot.ArticleID] = snapshot
	}
	return current, nil
}

func (r *articleRepository) Snapshots(articleID uint) ([]models.ArticleSnapshot, error) {
	var snapshots []models.ArticleSnapshot
	err := r.db.Where("article_id = ?", articleID).
		Order("created_at ASC, id ASC").
		Find(&snapshots).Error
	return snapshots, err
}

func (r *articleRepository) List(boardID uint, offset, limit int, order string) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).Where("board_id = ?", boardID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := preloadAuthor(query).
		Order(fmt.Sprintf("created_at %s, id %s", order, order)).
		Offset(offset).
		Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}
