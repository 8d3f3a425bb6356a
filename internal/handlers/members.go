package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomledger-dev/roomledger/db"
	"github.com/roomledger-dev/roomledger/internal/models"
	"github.com/roomledger-dev/roomledger/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type UpdateMemberRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	IsAdmin  *bool  `json:"isAdmin"`
}

func memberResponse(m models.Member) types.MemberResponse {
	return types.MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		IsAdmin:   m.IsAdmin,
		IsActive:  m.IsActive(),
		AddedDate: m.AddedDate,
	}
}

func ListMembers(ctx *gin.Context) {
	var members []models.Member

	if err := db.DB.Where("status = ?", models.MemberStatusActive).Find(&members).Error; err != nil {
		log.Printf("Failed to list members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := []types.MemberResponse{}

	for _, member := range members {
		response = append(response, memberResponse(member))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateMember(ctx *gin.Context) {
	var req CreateMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and phone required"})
		return
	}

	req.Phone = strings.TrimSpace(req.Phone)

	// Phone is unique across every lifecycle state, deactivated included.
	var existing models.Member

	err := db.DB.Where("phone = ?", req.Phone).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Member already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	member := models.Member{
		Name:      req.Name,
		Phone:     req.Phone,
		IsAdmin:   req.IsAdmin,
		Status:    models.MemberStatusActive,
		AddedDate: time.Now(),
	}

	if req.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

		if err != nil {
			log.Printf("Failed to hash password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		member.PasswordHash = string(passwordHash)
	}

	if err := db.DB.Create(&member).Error; err != nil {
		log.Printf("Failed to create member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, memberResponse(member))
}

func UpdateMember(ctx *gin.Context) {
	id, ok := pathID(ctx, "Member")
	if !ok {
		return
	}

	var member models.Member

	if err := db.DB.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			log.Printf("Failed to fetch member: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req UpdateMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}

	if req.Phone != "" {
		newPhone := strings.TrimSpace(req.Phone)

		if newPhone != member.Phone {
			var existing models.Member
			err := db.DB.Where("phone = ? AND id != ?", newPhone, member.ID).First(&existing).Error
			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Member already exists"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Database error when checking existing phone: %v", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
		}

		updates["phone"] = newPhone
	}

	if req.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

		if err != nil {
			log.Printf("Failed to hash password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		updates["password_hash"] = string(passwordHash)
	}

	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&member).Updates(updates).Error; err != nil {
			log.Printf("Failed to update member: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	if err := db.DB.First(&member, member.ID).Error; err != nil {
		log.Printf("Failed to refresh member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, memberResponse(member))
}

// SoftDeleteMember deactivates a member. The record stays fetchable by id but
// drops out of listings and member counts.
func SoftDeleteMember(ctx *gin.Context) {
	id, ok := pathID(ctx, "Member")
	if !ok {
		return
	}

	var member models.Member

	if err := db.DB.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			log.Printf("Failed to fetch member: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Model(&member).Update("status", models.MemberStatusDeactivated).Error; err != nil {
		log.Printf("Failed to deactivate member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func HardDeleteMember(ctx *gin.Context) {
	id, ok := pathID(ctx, "Member")
	if !ok {
		return
	}

	var member models.Member

	if err := db.DB.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			log.Printf("Failed to fetch member: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Delete(&member).Error; err != nil {
		log.Printf("Failed to delete member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Member permanently deleted"})
}
