package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/bridal_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Register обрабатывает POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrValidation.Error()})
		return
	}

	userID, err := h.auth.Register(c.Request.Context(), in.Username, in.Email, in.Password, in.Phone)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"userId": userID})
}

// Login обрабатывает POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrValidation.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// PasswordHash в JSON не попадает - поле помечено `json:"-"`
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
