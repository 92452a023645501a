package handlers

import (
	"net/http"

	"openboard-api/helper"
	"openboard-api/middleware"
	"openboard-api/models"
	"openboard-api/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		helper:         &helper.HTTPHelper{},
	}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	articleID, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid article ID", h.helper.EmptyJsonMap())
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.Create(middleware.CurrentUser(c), articleID, req)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetArticleComments(c *gin.Context) {
	articleID, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid article ID", h.helper.EmptyJsonMap())
		return
	}

	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	comments, total, err := h.commentService.List(middleware.CurrentUser(c), articleID, params)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments":   comments,
		"pagination": h.helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid comment ID", h.helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid comment ID", h.helper.EmptyJsonMap())
		return
	}

	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.Edit(middleware.CurrentUser(c), id, req)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid comment ID", h.helper.EmptyJsonMap())
		return
	}

	if err := h.commentService.Remove(middleware.CurrentUser(c), id); err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func (h *CommentHandler) GetCommentSnapshots(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid comment ID", h.helper.EmptyJsonMap())
		return
	}

	snapshots, err := h.commentService.Snapshots(middleware.CurrentUser(c), id)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}
