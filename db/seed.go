package db

import (
	"encoding/json"
	"log"
	"time"

	"github.com/roomledger-dev/roomledger/internal/models"
	"github.com/roomledger-dev/roomledger/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// SeedDefaults inserts the default test members and the fullAmount setting on
// a fresh database. It is a no-op once members exist.
func SeedDefaults() error {
	var count int64

	if err := DB.Model(&models.Member{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		log.Println("Seeding default members...")

		adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		userPassword, err := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now()
		members := []models.Member{
			{Name: "Admin User", Phone: "9000000001", PasswordHash: string(adminPassword), IsAdmin: true, Status: models.MemberStatusActive, AddedDate: now},
			{Name: "Test User 1", Phone: "9000000002", PasswordHash: string(userPassword), Status: models.MemberStatusActive, AddedDate: now},
			{Name: "Test User 2", Phone: "9000000003", PasswordHash: string(userPassword), Status: models.MemberStatusActive, AddedDate: now},
		}

		if err := DB.Create(&members).Error; err != nil {
			return err
		}
	}

	var setting models.Setting

	if err := DB.Where("key = ?", models.SettingKeyFullAmount).First(&setting).Error; err == nil {
		return nil
	}

	value, err := json.Marshal(types.NumberSetting(0))
	if err != nil {
		return err
	}

	return DB.Create(&models.Setting{Key: models.SettingKeyFullAmount, Value: value}).Error
}
