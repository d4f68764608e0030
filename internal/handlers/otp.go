package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/athera-ai/athera/internal/models"
	"github.com/athera-ai/athera/internal/otp"
	"github.com/athera-ai/athera/internal/session"
	"github.com/athera-ai/athera/internal/types"
	"github.com/athera-ai/athera/internal/utils"
	"github.com/gin-gonic/gin"
)

type SendOtpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,len=6,number"`
}

// OtpHandler serves the signup flow: stage a code, then exchange it for
// a verified account plus a fresh session.
type OtpHandler struct {
	issuer     *otp.Issuer
	sessions   *session.Store
	secure     bool
	production bool
}

func NewOtpHandler(issuer *otp.Issuer, sessions *session.Store, production bool) *OtpHandler {
	return &OtpHandler{
		issuer:     issuer,
		sessions:   sessions,
		secure:     production,
		production: production,
	}
}

func (h *OtpHandler) Send(ctx *gin.Context) {
	var req SendOtpRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err,
			map[string]string{"Email": "Invalid email address"},
			"Email and password are required")})
		return
	}

	email := utils.NormalizeEmail(req.Email)

	code, err := h.issuer.Issue(email, req.Password)

	if errors.Is(err, otp.ErrDuplicateAccount) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "An account with this email already exists"})
		return
	}

	if err != nil {
		log.Printf("Failed to issue OTP for %s: %v", email, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		return
	}

	response := gin.H{"message": "OTP sent successfully"}

	// The raw code is surfaced only outside production.
	if !h.production {
		response["otp"] = code
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *OtpHandler) Verify(ctx *gin.Context) {
	var req VerifyOtpRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err,
			map[string]string{
				"Email": "Invalid email address",
				"Otp":   "Verification code must be 6 digits",
			},
			"Email and OTP are required")})
		return
	}

	email := utils.NormalizeEmail(req.Email)

	user, err := h.issuer.Verify(email, req.Otp)

	if errors.Is(err, otp.ErrInvalidOrExpired) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification code"})
		return
	}

	if err != nil {
		log.Printf("Failed to verify OTP for %s: %v", email, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
		return
	}

	token, expiresAt, err := h.sessions.Create(user)

	if err != nil {
		log.Printf("Failed to create session: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	session.SetCookie(ctx.Writer, token, expiresAt, h.secure)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Account verified successfully",
		"user":    sessionUserOf(user),
	})
}

func sessionUserOf(user *models.User) types.SessionUser {
	return types.SessionUser{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
	}
}
