package models

import (
	"fmt"
	"time"
)

// Booking represents a table reservation owned by exactly one user.
// Visibility is owner-scoped: every query against bookings must filter
// on UserID, never on ID alone.
type Booking struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;default:1;index" json:"-"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	NoOfGuest   int       `gorm:"not null" json:"no_of_guest"`
	BookingDate time.Time `gorm:"column:bookingdate;not null" json:"bookingdate"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b Booking) String() string {
	return fmt.Sprintf("%s - %s", b.Name, b.BookingDate.Format("2006-01-02 15:04:05"))
}
