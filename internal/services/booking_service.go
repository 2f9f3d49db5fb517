package services

import (
	"github.com/littlelemon/littlelemon-api/internal/models"
	"gorm.io/gorm"
)

// BookingService provides owner-scoped access to bookings. Every lookup,
// update and delete filters on the owner as well as the record ID, so a
// booking owned by another user is indistinguishable from a missing one.
type BookingService interface {
	// GetBookingsByUserID retrieves the given user's bookings, newest booking date first
	GetBookingsByUserID(userID uint) ([]models.Booking, error)
	// GetBookingByID retrieves a booking only if it belongs to userID
	GetBookingByID(id int, userID uint) (models.Booking, error)
	// CreateBooking persists a new booking owned by booking.UserID
	CreateBooking(booking models.Booking) (models.Booking, error)
	// UpdateBooking persists changes to a booking the user owns
	UpdateBooking(booking models.Booking) (models.Booking, error)
	// DeleteBooking permanently removes a booking only if it belongs to userID
	DeleteBooking(id int, userID uint) error
}

type bookingService struct {
	db *gorm.DB
}

// NewBookingService creates a new instance of BookingService
func NewBookingService(db *gorm.DB) BookingService {
	return &bookingService{db: db}
}

func (s *bookingService) GetBookingsByUserID(userID uint) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := s.db.Preload("User").
		Where("user_id = ?", userID).
		Order("bookingdate DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *bookingService) GetBookingByID(id int, userID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.db.Preload("User").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *bookingService) CreateBooking(booking models.Booking) (models.Booking, error) {
	if err := s.db.Create(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	// Reload with the owner so callers can render the user display string
	return s.GetBookingByID(booking.ID, booking.UserID)
}

func (s *bookingService) UpdateBooking(booking models.Booking) (models.Booking, error) {
	if err := s.db.Save(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	return s.GetBookingByID(booking.ID, booking.UserID)
}

func (s *bookingService) DeleteBooking(id int, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
