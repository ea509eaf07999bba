package models

import "time"

// PushToken stores a device push-notification token for a user. Delivery
// is handled by an external service; the backend only keeps the books.
type PushToken struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Token        string    `json:"token" gorm:"uniqueIndex;not null"`
	Device       string    `json:"device" gorm:"default:'unknown'"`
	Platform     string    `json:"platform" gorm:"default:'unknown'"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
