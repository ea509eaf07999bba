package models

import "time"

// Tool is a physical item tracked by counted stock. StockAvailable is the
// number of units not currently handed out; the invariant
// 0 <= StockAvailable <= StockTotal holds after every write.
type Tool struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Category       string    `json:"category" gorm:"not null"`
	Description    string    `json:"description" gorm:"type:text;default:''"`
	StockTotal     int       `json:"stock_total" gorm:"not null;default:0"`
	StockAvailable int       `json:"stock_available" gorm:"not null;default:0"`
	Location       string    `json:"location" gorm:"default:''"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
