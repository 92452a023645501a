package repositories

import (
	"openboard-api/models"

	"gorm.io/gorm"
)

type MembershipRepository interface {
	GetByID(id uint) (*models.Membership, error)
	GetAll() ([]models.Membership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetByID(id uint) (*models.Membership, error) {
	var membership models.Membership
	if err := r.db.First(&membership, id).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) GetAll() ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Order("rank asc").Find(&memberships).Error
	return memberships, err
}
