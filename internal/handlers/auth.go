package handlers

import (
	"net/http"
	"strings"

	"luminate/internal/middleware"
	"luminate/internal/models"
	"luminate/internal/store"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	store store.Store
}

func NewAuthHandler(st store.Store) *AuthHandler {
	return &AuthHandler{store: st}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || !strings.Contains(req.Email, "@") {
		BadRequest(c, "username and a valid email are required")
		return
	}
	if len(req.Password) < 6 {
		BadRequest(c, "password must be at least 6 characters")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		StoreError(c, err)
		return
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hash,
		DisplayName: req.Username,
	}
	if err := h.store.CreateUser(&user); err != nil {
		StoreError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	user, err := h.store.GetUserByEmail(strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil || !utils.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, MustUser(c))
}
