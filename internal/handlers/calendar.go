package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomledger-dev/roomledger/db"
	"github.com/roomledger-dev/roomledger/internal/comments"
	"github.com/roomledger-dev/roomledger/internal/models"
	"github.com/roomledger-dev/roomledger/internal/types"
	"github.com/roomledger-dev/roomledger/internal/utils"
	"gorm.io/gorm"
)

type CreateCalendarEntryRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Date         string   `json:"date" binding:"required"`
	CategoryID   *uint    `json:"categoryId"`
	CategoryName string   `json:"categoryName"`
	Price        *float64 `json:"price"`
	CreatedBy    string   `json:"createdBy"`
}

type UpdateCalendarEntryRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Date        string   `json:"date"`
	CategoryID  *uint    `json:"categoryId"`
	Price       *float64 `json:"price"`
}

func calendarEntryResponse(e models.CalendarEntry) types.CalendarEntryResponse {
	return types.CalendarEntryResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Price:        e.Price,
		CreatedBy:    e.CreatedBy,
		AddedDate:    e.AddedDate,
		Comments:     rawComments(e.Comments),
	}
}

func ListCalendarEntries(ctx *gin.Context) {
	var entries []models.CalendarEntry

	if err := db.DB.Find(&entries).Error; err != nil {
		log.Printf("Failed to list calendar entries: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := []types.CalendarEntryResponse{}

	for _, entry := range entries {
		response = append(response, calendarEntryResponse(entry))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetCalendarEntry(ctx *gin.Context) {
	id, ok := pathID(ctx, "Entry")
	if !ok {
		return
	}

	var entry models.CalendarEntry

	if err := db.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			log.Printf("Failed to fetch calendar entry: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, calendarEntryResponse(entry))
}

func CreateCalendarEntry(ctx *gin.Context) {
	var req CreateCalendarEntryRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and date required"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	entry := models.CalendarEntry{
		Title:        req.Title,
		Description:  req.Description,
		Date:         date,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		CreatedBy:    req.CreatedBy,
		AddedDate:    time.Now(),
	}

	if req.Price != nil {
		entry.Price = *req.Price
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to create calendar entry: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Priced entries surface in the monthly expenses as a derived record.
	// The secondary write is best-effort: its failure leaves an entry with
	// no linked expense until the next update self-heals it.
	if entry.Price > 0 && entry.CategoryID != nil {
		if err := createLinkedExpense(entry); err != nil {
			log.Printf("Failed to create expense for calendar entry %d: %v", entry.ID, err)
		}
	}

	ctx.JSON(http.StatusOK, calendarEntryResponse(entry))
}

func createLinkedExpense(entry models.CalendarEntry) error {
	description := entry.Description
	if description == "" {
		description = entry.Title
	}

	entryID := entry.ID
	expense := models.Expense{
		Amount:          entry.Price,
		Description:     description,
		Date:            entry.Date,
		CategoryID:      *entry.CategoryID,
		CategoryName:    entry.CategoryName,
		AddedDate:       time.Now(),
		AddedBy:         entry.CreatedBy,
		CalendarEntryID: &entryID,
	}

	return db.DB.Create(&expense).Error
}

// syncLinkedExpense overwrites the linked expense to match the entry,
// last-writer-wins, or creates a missing one for priced entries.
func syncLinkedExpense(entry models.CalendarEntry) {
	var expense models.Expense

	err := db.DB.Where("calendar_entry_id = ?", entry.ID).First(&expense).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to look up expense for calendar entry %d: %v", entry.ID, err)
			return
		}
		if entry.Price > 0 && entry.CategoryID != nil {
			if err := createLinkedExpense(entry); err != nil {
				log.Printf("Failed to create expense for calendar entry %d: %v", entry.ID, err)
			}
		}
		return
	}

	expense.Amount = entry.Price
	if entry.Description != "" {
		expense.Description = entry.Description
	} else if entry.Title != "" {
		expense.Description = entry.Title
	}
	expense.Date = entry.Date
	if entry.CategoryID != nil {
		expense.CategoryID = *entry.CategoryID
	}
	if entry.CategoryName != "" {
		expense.CategoryName = entry.CategoryName
	}

	if err := db.DB.Save(&expense).Error; err != nil {
		log.Printf("Failed to sync expense for calendar entry %d: %v", entry.ID, err)
	}
}

func UpdateCalendarEntry(ctx *gin.Context) {
	id, ok := pathID(ctx, "Entry")
	if !ok {
		return
	}

	var entry models.CalendarEntry

	if err := db.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			log.Printf("Failed to fetch calendar entry: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req UpdateCalendarEntryRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" {
		entry.Title = req.Title
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		entry.Date = date
	}
	if req.CategoryID != nil {
		entry.CategoryID = req.CategoryID
		entry.CategoryName = snapshotCategoryName(*req.CategoryID, entry.CategoryName)
	}
	if req.Price != nil {
		entry.Price = *req.Price
	}

	if err := db.DB.Save(&entry).Error; err != nil {
		log.Printf("Failed to update calendar entry: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	syncLinkedExpense(entry)

	ctx.JSON(http.StatusOK, calendarEntryResponse(entry))
}

// DeleteCalendarEntry removes the entry and cascades to every expense derived
// from it, unlike category deletion which leaves expenses alone.
func DeleteCalendarEntry(ctx *gin.Context) {
	id, ok := pathID(ctx, "Entry")
	if !ok {
		return
	}

	if err := db.DB.Delete(&models.CalendarEntry{}, id).Error; err != nil {
		log.Printf("Failed to delete calendar entry: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Where("calendar_entry_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
		log.Printf("Failed to delete linked expenses for calendar entry %d: %v", id, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func AddCalendarComment(ctx *gin.Context) {
	member, err := utils.GetCurrentMember(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(ctx, "Entry")
	if !ok {
		return
	}

	var entry models.CalendarEntry

	if err := db.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			log.Printf("Failed to fetch calendar entry: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req CommentRequest

	if err := ctx.BindJSON(&req); err != nil || req.Text == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment text required"})
		return
	}

	comment := comments.NewThreaded(commentActor(member), req.Text, time.Now())
	list := comments.AppendThreaded(decodeThreadedComments(entry.Comments), comment)
	entry.Comments = encodeThreadedComments(list)

	if err := db.DB.Save(&entry).Error; err != nil {
		log.Printf("Failed to save comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

func EditCalendarComment(ctx *gin.Context) {
	member, err := utils.GetCurrentMember(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(ctx, "Entry")
	if !ok {
		return
	}

	var entry models.CalendarEntry

	if err := db.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			log.Printf("Failed to fetch calendar entry: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req CommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment text required"})
		return
	}

	list := decodeThreadedComments(entry.Comments)
	comment, err := comments.EditThreaded(list, ctx.Param("commentId"), commentActor(member), req.Text, time.Now())

	if err != nil {
		respondCommentError(ctx, err, "edited")
		return
	}

	entry.Comments = encodeThreadedComments(list)

	if err := db.DB.Save(&entry).Error; err != nil {
		log.Printf("Failed to save comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

func DeleteCalendarComment(ctx *gin.Context) {
	member, err := utils.GetCurrentMember(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(ctx, "Entry")
	if !ok {
		return
	}

	var entry models.CalendarEntry

	if err := db.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			log.Printf("Failed to fetch calendar entry: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Deleting a comment takes its whole reply list with it.
	list, err := comments.RemoveThreaded(decodeThreadedComments(entry.Comments), ctx.Param("commentId"), commentActor(member), time.Now())

	if err != nil {
		respondCommentError(ctx, err, "deleted")
		return
	}

	entry.Comments = encodeThreadedComments(list)

	if err := db.DB.Save(&entry).Error; err != nil {
		log.Printf("Failed to save comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func AddCalendarReply(ctx *gin.Context) {
	member, err := utils.GetCurrentMember(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(ctx, "Entry")
	if !ok {
		return
	}

	var entry models.CalendarEntry

	if err := db.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			log.Printf("Failed to fetch calendar entry: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var req CommentRequest

	if err := ctx.BindJSON(&req); err != nil || req.Text == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Reply text required"})
		return
	}

	list := decodeThreadedComments(entry.Comments)
	reply, ok := comments.AppendReply(list, ctx.Param("commentId"), comments.NewReply(commentActor(member), req.Text, time.Now()))

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	entry.Comments = encodeThreadedComments(list)

	if err := db.DB.Save(&entry).Error; err != nil {
		log.Printf("Failed to save reply: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, reply)
}
