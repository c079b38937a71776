package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead sources written by the backend.
const (
	LeadSourceCSVImport = "CSV Import"
	LeadSourceChat      = "Chat"
	LeadSourceDirect    = "Direct"
)

// Lead is a prospective customer captured from chat, CSV import, or direct
// ingestion, with a qualification score.
type Lead struct {
	ID        uint    `json:"id" gorm:"primarykey"`
	ProjectID uint    `json:"project_id" gorm:"index;not null"`
	Name      string  `json:"name" gorm:"type:varchar(255)"`
	Phone     *string `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Email     *string `json:"email,omitempty" gorm:"type:varchar(255)"`
	Source    string  `json:"source" gorm:"type:varchar(100)"`
	LeadScore int     `json:"lead_score" gorm:"default:0"`
	// Raw qualification payload from the scorer, stored for audit.
	Qualification string `json:"qualification,omitempty" gorm:"type:text"`
	NextAction    string `json:"next_action,omitempty" gorm:"type:varchar(255)"`
	Status        string `json:"status" gorm:"type:varchar(50);default:'New'"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
