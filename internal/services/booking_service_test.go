package services

import (
	"testing"
	"time"

	"github.com/littlelemon/littlelemon-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Menu{}, &models.Booking{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Role:     "user",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	require.NoError(t, err)
	return parsed
}

func TestBookingServiceOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	service := NewBookingService(db)
	user1 := seedUser(t, db, "testuser1")
	user2 := seedUser(t, db, "testuser2")

	created, err := service.CreateBooking(models.Booking{
		UserID:      user1.ID,
		Name:        "Test Booking 1",
		NoOfGuest:   4,
		BookingDate: mustDate(t, "2024-12-25 19:00:00"),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, "testuser1", created.User.Username)

	// The owner can see it
	got, err := service.GetBookingByID(created.ID, user1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Booking 1", got.Name)

	// Anyone else gets record-not-found, same as a missing ID
	_, err = service.GetBookingByID(created.ID, user2.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Scoped listing
	list1, err := service.GetBookingsByUserID(user1.ID)
	require.NoError(t, err)
	assert.Len(t, list1, 1)

	list2, err := service.GetBookingsByUserID(user2.ID)
	require.NoError(t, err)
	assert.Len(t, list2, 0)
}

func TestBookingServiceListOrdering(t *testing.T) {
	db := setupTestDB(t)
	service := NewBookingService(db)
	user := seedUser(t, db, "testuser")

	for _, b := range []struct {
		name string
		date string
	}{
		{name: "Earliest", date: "2024-12-20 18:00:00"},
		{name: "Latest", date: "2024-12-27 20:00:00"},
		{name: "Middle", date: "2024-12-25 19:00:00"},
	} {
		_, err := service.CreateBooking(models.Booking{
			UserID:      user.ID,
			Name:        b.name,
			NoOfGuest:   2,
			BookingDate: mustDate(t, b.date),
		})
		require.NoError(t, err)
	}

	list, err := service.GetBookingsByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Latest", list[0].Name)
	assert.Equal(t, "Middle", list[1].Name)
	assert.Equal(t, "Earliest", list[2].Name)
}

func TestBookingServiceDeleteScoping(t *testing.T) {
	db := setupTestDB(t)
	service := NewBookingService(db)
	owner := seedUser(t, db, "owner")
	intruder := seedUser(t, db, "intruder")

	created, err := service.CreateBooking(models.Booking{
		UserID:      owner.ID,
		Name:        "Private Dinner",
		NoOfGuest:   2,
		BookingDate: mustDate(t, "2024-12-25 19:00:00"),
	})
	require.NoError(t, err)

	// Foreign delete reports not-found and leaves the record alone
	err = service.DeleteBooking(created.ID, intruder.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = service.GetBookingByID(created.ID, owner.ID)
	require.NoError(t, err)

	// Owner delete removes it for good
	require.NoError(t, service.DeleteBooking(created.ID, owner.ID))
	err = service.DeleteBooking(created.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMenuServiceDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	service := NewMenuService(db)

	err := service.DeleteMenuItem(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
