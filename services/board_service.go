package services

import (
	"errors"

	"openboard-api/models"
	"openboard-api/repositories"

	"gorm.io/gorm"
)

type BoardService interface {
	GetBoard(id uint) (*models.Board, error)
	GetBoards() ([]models.Board, error)
	GetMemberships() ([]models.Membership, error)
}

type boardService struct {
	boardRepo      repositories.BoardRepository
	membershipRepo repositories.MembershipRepository
}

func NewBoardService(boardRepo repositories.BoardRepository, membershipRepo repositories.MembershipRepository) BoardService {
	return &boardService{
		boardRepo:      boardRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *boardService) GetBoard(id uint) (*models.Board, error) {
	board, err := s.boardRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAppError(models.CodeNotFoundBoard)
		}
		return nil, models.NewExternalError("Board.GetByID", err)
	}
	return board, nil
}

func (s *boardService) GetBoards() ([]models.Board, error) {
	boards, err := s.boardRepo.GetAll()
	if err != nil {
		return nil, models.NewExternalError("Board.GetAll", err)
	}
	return boards, nil
}

func (s *boardService) GetMemberships() ([]models.Membership, error) {
	memberships, err := s.membershipRepo.GetAll()
	if err != nil {
		return nil, models.NewExternalError("Membership.GetAll", err)
	}
	return memberships, nil
}
