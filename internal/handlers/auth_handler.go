package handlers

import (
	"errors"
	"net/http"
	"time"

	"pilates_reserva/internal/middleware"
	"pilates_reserva/internal/redis"
	"pilates_reserva/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService services.AuthService
	sessions    *redis.Client
	sessionTTL  time.Duration
}

func NewAuthHandler(authService services.AuthService, sessions *redis.Client, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
	}
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Password2 string `json:"password2" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	user, err := h.authService.RegisterClient(req.Username, req.Email, req.Password, req.Password2)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la cuenta."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "¡Cuenta creada con éxito! Ahora puedes iniciar sesión.",
		"user":    user,
	})
}

type LoginRequest struct {
	// Identifier accepts a username or an email.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuario o contraseña incorrectos."})
		return
	}

	user, err := h.authService.Authenticate(req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo iniciar sesión."})
		}
		return
	}

	sessionID := uuid.NewString()
	session := &redis.SessionData{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   time.Now(),
	}
	if err := h.sessions.SetSession(sessionID, session, h.sessionTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo iniciar sesión."})
		return
	}

	c.SetCookie(middleware.SessionCookie, sessionID, int(h.sessionTTL.Seconds()), "/", "", false, true)

	// The front routes admins to the back-office and clients to their panel.
	home := "/usuarios/"
	if user.IsAdmin() {
		home = "/administrador/"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sesión iniciada.",
		"user":    user,
		"role":    user.Role,
		"home":    home,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.SessionCookie); err == nil && sessionID != "" {
		h.sessions.DeleteSession(sessionID)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada."})
}
