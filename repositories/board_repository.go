package repositories

import (
	"openboard-api/models"

	"gorm.io/gorm"
)

type BoardRepository interface {
	GetByID(id uint) (*models.Board, error)
	GetAll() ([]models.Board, error)
}

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func withGateMemberships(db *gorm.DB) *gorm.DB {
	return db.
		Preload("ReadArticleListMembership").
		Preload("ReadArticleMembership").
		Preload("ReadCommentListMembership").
		Preload("WriteArticleMembership").
		Preload("WriteCommentMembership").
		Preload("ManagerMembership")
}

func (r *boardRepository) GetByID(id uint) (*models.Board, error) {
	var board models.Board
	if err := withGateMemberships(r.db).First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) GetAll() ([]models.Board, error) {
	var boards []models.Board
	err := withGateMemberships(r.db).Order("id asc").Find(&boards).Error
	return boards, err
}
