package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/http/response"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	admin, err := ah.authService.Register(requestDBC(c), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	res, err := ah.authService.Login(requestDBC(c), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
