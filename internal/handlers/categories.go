package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomledger-dev/roomledger/db"
	"github.com/roomledger-dev/roomledger/internal/models"
	"github.com/roomledger-dev/roomledger/internal/types"
	"github.com/roomledger-dev/roomledger/internal/utils"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	Name            string   `json:"name" binding:"required"`
	Color           string   `json:"color"`
	Icon            string   `json:"icon"`
	IconURL         string   `json:"iconUrl"`
	AllocatedAmount *float64 `json:"allocatedAmount"`
	CreatedBy       string   `json:"createdBy"`
}

type UpdateCategoryRequest struct {
	Name            string   `json:"name"`
	Color           string   `json:"color"`
	Icon            *string  `json:"icon"`
	IconURL         *string  `json:"iconUrl"`
	AllocatedAmount *float64 `json:"allocatedAmount"`
}

func categoryResponse(c models.Category) types.CategoryResponse {
	return types.CategoryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Color:           c.Color,
		Icon:            c.Icon,
		IconURL:         c.IconURL,
		AllocatedAmount: c.AllocatedAmount,
		CreatedBy:       c.CreatedBy,
		CreatedDate:     c.CreatedDate,
	}
}

func ListCategories(ctx *gin.Context) {
	var categories []models.Category

	if err := db.DB.Find(&categories).Error; err != nil {
		log.Printf("Failed to list categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := []types.CategoryResponse{}

	for _, category := range categories {
		response = append(response, categoryResponse(category))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "Category")
	if !ok {
		return
	}

	var category models.Category

	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			log.Printf("Failed to fetch category: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, categoryResponse(category))
}

func CreateCategory(ctx *gin.Context) {
	var req CreateCategoryRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name required"})
		return
	}

	var existing models.Category

	err := db.DB.Where("name = ?", req.Name).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Category already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing category: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Color:       req.Color,
		Icon:        req.Icon,
		IconURL:     req.IconURL,
		CreatedBy:   req.CreatedBy,
		CreatedDate: time.Now(),
	}

	if req.AllocatedAmount != nil {
		category.AllocatedAmount = *req.AllocatedAmount
	}

	if err := db.DB.Create(&category).Error; err != nil {
		log.Printf("Failed to create category: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, categoryResponse(category))
}

func UpdateCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "Category")
	if !ok {
		return
	}

	var category models.Category

	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			log.Printf("Failed to fetch category: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req UpdateCategoryRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Color != "" {
		category.Color = req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.IconURL != nil {
		category.IconURL = *req.IconURL
	}
	if req.AllocatedAmount != nil {
		category.AllocatedAmount = *req.AllocatedAmount
	}

	if err := db.DB.Save(&category).Error; err != nil {
		log.Printf("Failed to update category: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, categoryResponse(category))
}

// DeleteCategory removes the category only. Expenses keep their snapshotted
// categoryName and dangling categoryId; there is no cascade.
func DeleteCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "Category")
	if !ok {
		return
	}

	if err := db.DB.Delete(&models.Category{}, id).Error; err != nil {
		log.Printf("Failed to delete category: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func MonthlyCategorySummary(ctx *gin.Context) {
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "month and year required"})
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "month and year required"})
		return
	}

	start, end := utils.MonthWindow(month, year)

	var categories []models.Category

	if err := db.DB.Find(&categories).Error; err != nil {
		log.Printf("Failed to list categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	summaries := []types.CategorySummary{}

	for _, category := range categories {
		total, err := sumExpenses(db.DB.Where("category_id = ?", category.ID), start, end)

		if err != nil {
			log.Printf("Failed to sum expenses for category %d: %v", category.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		summaries = append(summaries, types.CategorySummary{
			ID:              category.ID,
			Name:            category.Name,
			Color:           category.Color,
			AllocatedAmount: category.AllocatedAmount,
			TotalExpenses:   total,
			// Negative means overspend, which is allowed.
			Remaining: category.AllocatedAmount - total,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"month": month, "year": year, "categories": summaries})
}

func sumExpenses(tx *gorm.DB, start, end time.Time) (float64, error) {
	var sum sql.NullFloat64

	err := tx.Model(&models.Expense{}).
		Select("SUM(amount)").
		Where("date >= ? AND date <= ?", start, end).
		Scan(&sum).Error

	if err != nil {
		return 0, err
	}

	if sum.Valid {
		return sum.Float64, nil
	}

	return 0, nil
}
