package models

import (
	"regexp"
	"time"
)

// Reservation lifecycle states. Pending reservations can be approved,
// rejected or cancelled; an admin may still revoke an approved one.
const (
	ReservationPending   = "pending"
	ReservationApproved  = "approved"
	ReservationRejected  = "rejected"
	ReservationCancelled = "cancelled"
)

var timeOfDayRe = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// Reservation is a same-day time-slot claim against a room. Date is a
// calendar day in "2006-01-02" form; StartTime/EndTime are "HH:MM"
// wall-clock strings, which compare correctly as plain strings. For a
// given room and date, no two reservations in {pending, approved} may
// overlap on the half-open interval [StartTime, EndTime).
type Reservation struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RoomID       uint       `json:"room_id" gorm:"index;not null"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	Date         string     `json:"date" gorm:"size:10;index;not null"`
	StartTime    string     `json:"start_time" gorm:"size:5;not null"`
	EndTime      string     `json:"end_time" gorm:"size:5;not null"`
	State        string     `json:"state" gorm:"index;not null;default:'pending'"`
	Reason       string     `json:"reason" gorm:"size:200;not null"`
	Group        string     `json:"group" gorm:"default:''"`
	Subject      string     `json:"subject" gorm:"default:''"`
	AdminComment string     `json:"admin_comment" gorm:"default:''"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ValidTimeOfDay reports whether s is a zero-padded "HH:MM" string.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// ValidDate reports whether s is a "2006-01-02" calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidReservationState reports whether state is one of the four
// lifecycle states.
func ValidReservationState(state string) bool {
	switch state {
	case ReservationPending, ReservationApproved, ReservationRejected, ReservationCancelled:
		return true
	}
	return false
}
