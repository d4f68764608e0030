package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/athera-ai/athera/internal/auth"
	"github.com/athera-ai/athera/internal/models"
	"github.com/athera-ai/athera/internal/session"
	"github.com/athera-ai/athera/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthHandler serves login, logout and who-am-i. Both failure modes of
// login (unknown email, wrong password) produce the same response body.
type AuthHandler struct {
	db       *gorm.DB
	sessions *session.Store
	secure   bool
}

func NewAuthHandler(db *gorm.DB, sessions *session.Store, secure bool) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions, secure: secure}
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err,
			map[string]string{"Email": "Invalid email address"},
			"Email and password are required")})
		return
	}

	email := utils.NormalizeEmail(req.Email)

	var user models.User

	err := h.db.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err != nil {
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, expiresAt, err := h.sessions.Create(&user)

	if err != nil {
		log.Printf("Failed to create session: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	session.SetCookie(ctx.Writer, token, expiresAt, h.secure)

	ctx.JSON(http.StatusOK, gin.H{"user": sessionUserOf(&user)})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	if token := session.TokenFromRequest(ctx.Request); token != "" {
		if err := h.sessions.Destroy(token); err != nil {
			log.Printf("Failed to destroy session: %v", err)
		}
	}

	session.ClearCookie(ctx.Writer, h.secure)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me never errors to the caller: any failure collapses to a null user.
func (h *AuthHandler) Me(ctx *gin.Context) {
	token := session.TokenFromRequest(ctx.Request)

	if token == "" {
		ctx.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	user, err := h.sessions.Resolve(token)

	if err != nil {
		log.Printf("Failed to resolve session: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	if user == nil {
		ctx.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// validationMessage picks the user-facing wording for a bind failure.
// Format violations get the per-field message; absent fields and
// non-validator errors fall through to the generic one.
func validationMessage(err error, fieldMessages map[string]string, fallback string) string {
	var fieldErrors validator.ValidationErrors

	if errors.As(err, &fieldErrors) {
		for _, fieldError := range fieldErrors {
			if fieldError.Tag() == "required" {
				continue
			}
			if message, ok := fieldMessages[fieldError.Field()]; ok {
				return message
			}
		}
	}

	return fallback
}
