package repositories

import (
	"fmt"

	"openboard-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	CreateWithSnapshot(comment *models.Comment, snapshot *models.CommentSnapshot) error
	AppendSnapshot(snapshot *models.CommentSnapshot) error
	GetByID(id uint) (*models.Comment, error)
	GetAnyByID(id uint) (*models.Comment, error)
	CurrentSnapshot(commentID uint) (*models.CommentSnapshot, error)
	CurrentSnapshots(commentIDs []uint) (map[uint]models.CommentSnapshot, error)
	Snapshots(commentID uint) ([]models.CommentSnapshot, error)
	List(articleID uint, offset, limit int, order string) ([]models.Comment, int64, error)
	Delete(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateWithSnapshot(comment *models.Comment, snapshot *models.CommentSnapshot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		snapshot.CommentID = comment.ID
		return tx.Create(snapshot).Error
	})
}

func (r *commentRepository) AppendSnapshot(snapshot *models.CommentSnapshot) error {
	return r.db.Create(snapshot).Error
}

func (r *commentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := preloadAuthor(r.db).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetAnyByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := preloadAuthor(r.db.Unscoped()).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) CurrentSnapshot(commentID uint) (*models.CommentSnapshot, error) {
	var snapshot models.CommentSnapshot
	err := r.db.Where("comment_id = ?", commentID).
		Order("created_at DESC, id DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *commentRepository) CurrentSnapshots(commentIDs []uint) (map[uint]models.CommentSnapshot, error) {
	current := make(map[uint]models.CommentSnapshot, len(commentIDs))
	if len(commentIDs) == 0 {
		return current, nil
	}

	var snapshots []models.CommentSnapshot
	err := r.db.Raw(`
		SELECT DISTINCT ON (comment_id) *
		FROM comment_snapshots
		WHERE comment_id IN ?
		ORDER BY comment_id, created_at DESC, id DESC
	`, commentIDs).Scan(&snapshots).Error
	if err != nil {
		return nil, err
	}

	for _, snapshot := range snapshots {
		current[snapshot.CommentID] = snapshot
	}
	return current, nil
}

func (r *commentRepository) Snapshots(commentID uint) ([]models.CommentSnapshot, error) {
	var snapshots []models.CommentSnapshot
	err := r.db.Where("comment_id = ?", commentID).
		Order("created_at ASC, id ASC").
		Find(&snapshots).Error
	return snapshots, err
}

func (r *commentRepository) List(articleID uint, offset, limit int, order string) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.Model(&models.Comment{}).Where("article_id = ?", articleID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := preloadAuthor(query).
		Order(fmt.Sprintf("created_at %s, id %s", order, order)).
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
