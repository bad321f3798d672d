package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/gymlab/internal/user/application"
	"github.com/davicafu/gymlab/internal/user/domain"
	"github.com/davicafu/gymlab/pkg/utils"
)

type AuthHandler struct {
	auth *application.AuthService
}

func NewAuthHandler(auth *application.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login endpoint POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			utils.SendUnauthorized(c, err.Error())
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"token": token, "user": user}, "Login successful")
}

// Logout endpoint POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			utils.SendUnauthorized(c, err.Error())
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendSuccess(c, http.StatusOK, nil, "Logged out")
}
