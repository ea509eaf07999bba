package models

import "time"

// Report workflow states and priorities.
const (
	ReportPending    = "pending"
	ReportInProgress = "in_progress"
	ReportResolved   = "resolved"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Report categories.
const (
	CategoryHardware   = "hardware"
	CategorySoftware   = "software"
	CategoryNetwork    = "network"
	CategoryPeripheral = "peripheral"
	CategoryOther      = "other"
)

// Report is an incident ticket about campus equipment. Folio is a
// generated identifier handed to the reporter for follow-up.
type Report struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Folio         string     `json:"folio" gorm:"uniqueIndex;not null"`
	MachineNumber string     `json:"machine_number" gorm:"not null"`
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	Title         string     `json:"title" gorm:"size:100;not null"`
	Description   string     `json:"description" gorm:"size:500;not null"`
	Priority      string     `json:"priority" gorm:"not null;default:'medium'"`
	State         string     `json:"state" gorm:"index;not null;default:'pending'"`
	Category      string     `json:"category" gorm:"not null;default:'other'"`
	TechComment   string     `json:"tech_comment" gorm:"size:300;default:''"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ValidReportState reports whether state is a known report state.
func ValidReportState(state string) bool {
	switch state {
	case ReportPending, ReportInProgress, ReportResolved:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known report priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known report category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryHardware, CategorySoftware, CategoryNetwork, CategoryPeripheral, CategoryOther:
		return true
	}
	return false
}
