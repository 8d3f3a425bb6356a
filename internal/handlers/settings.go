package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roomledger-dev/roomledger/db"
	"github.com/roomledger-dev/roomledger/internal/models"
	"github.com/roomledger-dev/roomledger/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FullAmountRequest struct {
	FullAmount float64 `json:"fullAmount"`
}

func GetFullAmount(ctx *gin.Context) {
	var setting models.Setting

	err := db.DB.Where("key = ?", models.SettingKeyFullAmount).First(&setting).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"fullAmount": 0})
			return
		}
		log.Printf("Failed to get fullAmount setting: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var value types.SettingValue

	if err := json.Unmarshal(setting.Value, &value); err != nil {
		log.Printf("Malformed fullAmount setting: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"fullAmount": 0})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"fullAmount": value.NumberOrZero()})
}

func SetFullAmount(ctx *gin.Context) {
	var req FullAmountRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	raw, err := json.Marshal(types.NumberSetting(req.FullAmount))

	if err != nil {
		log.Printf("Failed to encode setting: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	value := datatypes.JSON(raw)

	var setting models.Setting

	err = db.DB.Where("key = ?", models.SettingKeyFullAmount).First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.Setting{Key: models.SettingKeyFullAmount, Value: value}
		err = db.DB.Create(&setting).Error
	} else if err == nil {
		err = db.DB.Model(&setting).Update("value", value).Error
	}

	if err != nil {
		log.Printf("Failed to set fullAmount: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"fullAmount": req.FullAmount})
}
