package handlers

import (
	"net/http"
	"strconv"

	"openboard-api/helper"
	"openboard-api/services"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardService services.BoardService
	helper       *helper.HTTPHelper
}

func NewBoardHandler(boardService services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		helper:       &helper.HTTPHelper{},
	}
}

func (h *BoardHandler) GetBoards(c *gin.Context) {
	boards, err := h.boardService.GetBoards()
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid board ID", h.helper.EmptyJsonMap())
		return
	}

	board, err := h.boardService.GetBoard(uint(id))
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) GetMemberships(c *gin.Context) {
	memberships, err := h.boardService.GetMemberships()
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memberships": memberships})
}
