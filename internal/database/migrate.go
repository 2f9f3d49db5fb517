package database

import (
	"github.com/google/uuid"
	"github.com/littlelemon/littlelemon-api/internal/models"
	"gorm.io/gorm"
)

// Migrate runs auto-migration for every model in dependency order
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.Booking{},
		&models.OAuthClient{},
		&models.OAuthToken{},
		&models.OAuthCode{},
	)
}

// SeedFallbackUser guarantees the user record that bookings fall back to
// (user_id default 1) exists. The account gets an unguessable password and
// is not meant for interactive login.
func SeedFallbackUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Info("Users table is empty, seeding fallback user")
	fallback := models.User{
		ID:       1,
		Username: "littlelemon",
		Email:    "admin@littlelemon.example",
		Password: uuid.New().String(),
		Role:     "admin",
	}
	if err := fallback.HashPassword(); err != nil {
		return err
	}
	return db.Create(&fallback).Error
}
