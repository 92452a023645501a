package handlers

import (
	"net/http"
	"strconv"

	"openboard-api/helper"
	"openboard-api/middleware"
	"openboard-api/models"
	"openboard-api/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		helper:         &helper.HTTPHelper{},
	}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	boardID, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid board ID", h.helper.EmptyJsonMap())
		return
	}

	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.Create(middleware.CurrentUser(c), boardID, req)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

func (h *ArticleHandler) GetBoardArticles(c *gin.Context) {
	boardID, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid board ID", h.helper.EmptyJsonMap())
		return
	}

	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	articles, total, err := h.articleService.List(middleware.CurrentUser(c), boardID, params)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":   articles,
		"pagination": h.helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid article ID", h.helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid article ID", h.helper.EmptyJsonMap())
		return
	}

	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.Edit(middleware.CurrentUser(c), id, req)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid article ID", h.helper.EmptyJsonMap())
		return
	}

	if err := h.articleService.Remove(middleware.CurrentUser(c), id); err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

func (h *ArticleHandler) GetArticleSnapshots(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.helper.SendBadRequest(c, "Invalid article ID", h.helper.EmptyJsonMap())
		return
	}

	snapshots, err := h.articleService.Snapshots(middleware.CurrentUser(c), id)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
