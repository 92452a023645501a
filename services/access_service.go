package services

import (
	"errors"

	"openboard-api/models"
	"openboard-api/repositories"

	"gorm.io/gorm"
)

// CompareRank reports whether actor's membership meets the required
// minimum. A nil requirement means the action is public and always
// succeeds. An actor without a membership ranks strictly below every
// membership, so any concrete requirement rejects it. Equal rank is
// sufficient.
func CompareRank(actor, required *models.Membership) error {
	if required == nil {
		return nil
	}
	if actor == nil || actor.Rank < required.Rank {
		return models.NewAppError(models.CodeInsufficientPermission)
	}
	return nil
}

// AccessService is the single chokepoint for board-scoped reads and
// writes. Every use case checks here before touching an article or
// comment.
type AccessService interface {
	Check(action models.BoardAction, actor *models.User, boardID uint) error
}

type accessService struct {
	boardRepo repositories.BoardRepository
}

func NewAccessService(boardRepo repositories.BoardRepository) AccessService {
	return &accessService{boardRepo: boardRepo}
}

func (s *accessService) Check(action models.BoardAction, actor *models.User, boardID uint) error {
	board, err := s.boardRepo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewAppError(models.CodeNotFoundBoard)
		}
		return models.NewExternalError("Board.GetByID", err)
	}
	return CompareRank(membershipOf(actor), board.RequiredMembership(action))
}

func membershipOf(actor *models.User) *models.Membership {
	if actor == nil {
		return nil
	}
	return actor.Membership
}
