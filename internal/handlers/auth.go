package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roomledger-dev/roomledger/db"
	"github.com/roomledger-dev/roomledger/internal/auth"
	"github.com/roomledger-dev/roomledger/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password"`
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Phone required"})
		return
	}

	var member models.Member

	err := db.DB.Where("phone = ?", req.Phone).First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Phone number not registered.", "code": "MEMBER_NOT_FOUND"})
			return
		}
		log.Printf("Database error when fetching member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Accounts without a password can never log in.
	if member.PasswordHash == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Password not set for this account. Contact admin.", "code": "PASSWORD_NOT_SET"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password. Please try again.", "code": "WRONG_PASSWORD"})
		return
	}

	token, err := auth.GenerateJWT(member.ID, member.Phone, member.IsAdmin)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"member":  memberResponse(member),
		"token":   token,
	})
}
