package models

import (
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Roles known to the system. Tool loans are open to everyone who is
// authenticated; room reservations and incident reports are limited to
// admins and teachers; user management is admin only.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleClerk   = "clerk"
	RoleStudent = "student"
)

// User is an account that can authenticate and act against the API.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"not null;default:'student'"`
	// EnrollmentID is only meaningful for students, so it stays optional.
	EnrollmentID string    `json:"enrollment_id" gorm:"default:''"`
	Department   string    `json:"department" gorm:"default:''"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the accepted role values.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleClerk, RoleStudent:
		return true
	}
	return false
}

// InitDB opens the database connection. DATABASE_URL selects PostgreSQL;
// without it a local SQLite file is used for development.
func InitDB() (*gorm.DB, error) {
	databaseURL := os.Getenv("DATABASE_URL")

	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open("campus.db"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
