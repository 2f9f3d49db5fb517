package controllers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/littlelemon/littlelemon-api/internal/middleware"
	"github.com/littlelemon/littlelemon-api/internal/models"
	"github.com/littlelemon/littlelemon-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Menu{}, &models.Booking{}))
	return db
}

// newTestRouter wires the menu and booking routes exactly as main does
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	menuController := NewMenuController(services.NewMenuService(db))
	bookingController := NewBookingController(services.NewBookingService(db))

	router := gin.New()
	api := router.Group("/api")

	api.GET("/menu-items", menuController.ListMenuItems)
	api.GET("/menu-items/:id", menuController.GetMenuItem)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth([]byte(testJWTSecret)))
	{
		protected.POST("/menu-items", menuController.CreateMenuItem)
		protected.PUT("/menu-items/:id", menuController.UpdateMenuItem)
		protected.PATCH("/menu-items/:id", menuController.UpdateMenuItem)
		protected.DELETE("/menu-items/:id", menuController.DeleteMenuItem)

		protected.GET("/bookings", bookingController.ListBookings)
		protected.POST("/bookings", bookingController.CreateBooking)
		protected.GET("/bookings/:id", bookingController.GetBooking)
		protected.PUT("/bookings/:id", bookingController.UpdateBooking)
		protected.PATCH("/bookings/:id", bookingController.UpdateBooking)
		protected.DELETE("/bookings/:id", bookingController.DeleteBooking)
	}

	return router
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "testpass123",
		Role:     "user",
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}
