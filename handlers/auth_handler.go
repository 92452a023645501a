package handlers

import (
	"net/http"

	"openboard-api/helper"
	"openboard-api/middleware"
	"openboard-api/models"
	"openboard-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		helper:      &helper.HTTPHelper{},
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	var req models.OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	resp, err := h.authService.LoginWithOAuth(c.Request.Context(), req.ProviderToken)
	if err != nil {
		h.helper.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, models.NewUserView(user))
}
