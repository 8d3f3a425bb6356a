package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomledger-dev/roomledger/db"
	"github.com/roomledger-dev/roomledger/internal/comments"
	"github.com/roomledger-dev/roomledger/internal/middleware"
	"github.com/roomledger-dev/roomledger/internal/models"
	"github.com/roomledger-dev/roomledger/internal/types"
	"github.com/roomledger-dev/roomledger/internal/utils"
	"gorm.io/gorm"
)

type CreateExpenseRequest struct {
	Amount      *float64 `json:"amount" binding:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" binding:"required"`
	CategoryID  uint     `json:"categoryId" binding:"required"`
	MemberID    *uint    `json:"memberId"`
	AddedBy     string   `json:"addedBy"`
}

type UpdateExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Date        string   `json:"date"`
	CategoryID  *uint    `json:"categoryId"`
	MemberID    *uint    `json:"memberId"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

func expenseResponse(e models.Expense) types.ExpenseResponse {
	return types.ExpenseResponse{
		ID:              e.ID,
		Amount:          e.Amount,
		Description:     e.Description,
		Date:            e.Date,
		CategoryID:      e.CategoryID,
		CategoryName:    e.CategoryName,
		MemberID:        e.MemberID,
		CalendarEntryID: e.CalendarEntryID,
		AddedDate:       e.AddedDate,
		AddedBy:         e.AddedBy,
		Comments:        rawComments(e.Comments),
	}
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func ListExpenses(ctx *gin.Context) {
	var start, end time.Time
	var haveWindow bool

	if startDate, endDate := ctx.Query("startDate"), ctx.Query("endDate"); startDate != "" && endDate != "" {
		s, err1 := parseDate(startDate)
		e, err2 := parseDate(endDate)
		if err1 != nil || err2 != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
			return
		}
		start, end = s, utils.EndOfDay(e)
		haveWindow = true
	}

	// month+year take precedence over an explicit date range.
	if monthStr, yearStr := ctx.Query("month"), ctx.Query("year"); monthStr != "" && yearStr != "" {
		month, err1 := strconv.Atoi(monthStr)
		year, err2 := strconv.Atoi(yearStr)
		if err1 != nil || err2 != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or year"})
			return
		}
		start, end = utils.MonthWindow(month, year)
		haveWindow = true
	}

	tx := db.DB

	if categoryID := ctx.Query("categoryId"); categoryID != "" {
		tx = tx.Where("category_id = ?", categoryID)
	}

	if haveWindow {
		tx = tx.Where("date >= ? AND date <= ?", start, end)
	}

	var expenses []models.Expense

	if err := tx.Find(&expenses).Error; err != nil {
		log.Printf("Failed to list expenses: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := []types.ExpenseResponse{}

	for _, expense := range expenses {
		response = append(response, expenseResponse(expense))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetExpense(ctx *gin.Context) {
	id, ok := pathID(ctx, "Expense")
	if !ok {
		return
	}

	var expense models.Expense

	if err := db.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			log.Printf("Failed to fetch expense: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, expenseResponse(expense))
}

func CreateExpense(ctx *gin.Context) {
	var req CreateExpenseRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Amount, date and categoryId required"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	expense := models.Expense{
		Amount:       *req.Amount,
		Description:  req.Description,
		Date:         date,
		CategoryID:   req.CategoryID,
		CategoryName: snapshotCategoryName(req.CategoryID, ""),
		MemberID:     req.MemberID,
		AddedDate:    time.Now(),
		AddedBy:      req.AddedBy,
	}

	if err := db.DB.Create(&expense).Error; err != nil {
		log.Printf("Failed to create expense: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, expenseResponse(expense))
}

// snapshotCategoryName captures the category's current name, keeping fallback
// when the category is gone.
func snapshotCategoryName(categoryID uint, fallback string) string {
	var category models.Category

	if err := db.DB.First(&category, categoryID).Error; err != nil {
		return fallback
	}

	return category.Name
}

func UpdateExpense(ctx *gin.Context) {
	id, ok := pathID(ctx, "Expense")
	if !ok {
		return
	}

	var expense models.Expense

	if err := db.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			log.Printf("Failed to fetch expense: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req UpdateExpenseRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		expense.Date = date
	}
	if req.CategoryID != nil {
		expense.CategoryID = *req.CategoryID
		expense.CategoryName = snapshotCategoryName(*req.CategoryID, expense.CategoryName)
	}
	if req.MemberID != nil {
		expense.MemberID = req.MemberID
	}

	if err := db.DB.Save(&expense).Error; err != nil {
		log.Printf("Failed to update expense: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, expenseResponse(expense))
}

func DeleteExpense(ctx *gin.Context) {
	id, ok := pathID(ctx, "Expense")
	if !ok {
		return
	}

	if err := db.DB.Delete(&models.Expense{}, id).Error; err != nil {
		log.Printf("Failed to delete expense: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func ExpenseSummary(ctx *gin.Context) {
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

	total, err := sumExpenses(db.DB, start, end)

	if err != nil {
		log.Printf("Failed to sum expenses: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var totalMembers int64

	if err := db.DB.Model(&models.Member{}).Where("status = ?", models.MemberStatusActive).Count(&totalMembers).Error; err != nil {
		log.Printf("Failed to count members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	perPerson := total

	if totalMembers > 0 {
		perPerson = total / float64(totalMembers)
	}

	ctx.JSON(http.StatusOK, types.ExpenseSummaryResponse{
		Month:           month,
		Year:            year,
		TotalExpenses:   total,
		TotalMembers:    totalMembers,
		PerPersonAmount: perPerson,
		Balance:         0,
	})
}

func AddExpenseComment(ctx *gin.Context) {
	member, err := utils.GetCurrentMember(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(ctx, "Expense")
	if !ok {
		return
	}

	var expense models.Expense

	if err := db.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			log.Printf("Failed to fetch expense: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req CommentRequest

	if err := ctx.BindJSON(&req); err != nil || req.Text == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment text required"})
		return
	}

	actor := commentActor(member)
	comment := comments.New(actor, req.Text, time.Now())
	list := comments.Append(decodeComments(expense.Comments), comment)
	expense.Comments = encodeComments(list)

	if err := db.DB.Save(&expense).Error; err != nil {
		log.Printf("Failed to save comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

func EditExpenseComment(ctx *gin.Context) {
	member, err := utils.GetCurrentMember(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(ctx, "Expense")
	if !ok {
		return
	}

	var expense models.Expense

	if err := db.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			log.Printf("Failed to fetch expense: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req CommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment text required"})
		return
	}

	list := decodeComments(expense.Comments)
	comment, err := comments.Edit(list, ctx.Param("commentId"), commentActor(member), req.Text, time.Now())

	if err != nil {
		respondCommentError(ctx, err, "edited")
		return
	}

	expense.Comments = encodeComments(list)

	if err := db.DB.Save(&expense).Error; err != nil {
		log.Printf("Failed to save comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

func DeleteExpenseComment(ctx *gin.Context) {
	member, err := utils.GetCurrentMember(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(ctx, "Expense")
	if !ok {
		return
	}

	var expense models.Expense

	if err := db.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			log.Printf("Failed to fetch expense: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	list, err := comments.Remove(decodeComments(expense.Comments), ctx.Param("commentId"), commentActor(member), time.Now())

	if err != nil {
		respondCommentError(ctx, err, "deleted")
		return
	}

	expense.Comments = encodeComments(list)

	if err := db.DB.Save(&expense).Error; err != nil {
		log.Printf("Failed to save comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func commentActor(member middleware.AuthenticatedMember) comments.Actor {
	return comments.Actor{
		ID:      member.ID,
		Name:    member.Name,
		Phone:   member.Phone,
		IsAdmin: member.IsAdmin,
	}
}

func respondCommentError(ctx *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, comments.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case errors.Is(err, comments.ErrEmptyText):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment text required"})
	case errors.Is(err, comments.ErrNotAuthor):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to " + actionVerb(action) + " this comment"})
	case errors.Is(err, comments.ErrWindowExpired):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Comment can no longer be " + action + " (5-minute window expired)"})
	default:
		log.Printf("Comment operation failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func actionVerb(action string) string {
	if action == "edited" {
		return "edit"
	}
	return "delete"
}
