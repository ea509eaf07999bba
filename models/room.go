package models

import "time"

// Room is a bookable space. Rooms are mostly immutable; admins may toggle
// IsActive to take a room out of circulation without losing its history.
type Room struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description" gorm:"not null"`
	Capacity    int       `json:"capacity" gorm:"not null"`
	Location    string    `json:"location" gorm:"default:''"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	ImageURL    string    `json:"image_url" gorm:"default:''"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
