package model

import (
	"time"

	"gorm.io/gorm"
)

// Project lifecycle statuses observed in the product. The status column is a
// free string; these are the values the backend itself writes.
const (
	ProjectStatusPlanning = "Planning"
)

// Project represents a construction project
type Project struct {
	ID   uint   `json:"id" gorm:"primarykey"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`
	Code string `json:"code" gorm:"type:varchar(50);unique;not null;comment:'Join code shared with team members'"`

	OwnerID string `json:"owner_id" gorm:"type:varchar(64);index"`

	// Categorical attributes
	ProjectType        string `json:"project_type" gorm:"type:varchar(100)"`
	SubType            string `json:"sub_type" gorm:"type:varchar(100)"`
	ConstructionMethod string `json:"construction_method" gorm:"type:varchar(100)"`
	DeliveryMethod     string `json:"delivery_method" gorm:"type:varchar(100)"`
	SiteContext        string `json:"site_context" gorm:"type:varchar(100)"`
	Location           string `json:"location" gorm:"type:varchar(255)"`
	ClientName         string `json:"client_name" gorm:"type:varchar(255)"`

	// Numeric attributes
	FloorCount int     `json:"floor_count" gorm:"default:1"`
	TowerCount int     `json:"tower_count" gorm:"default:1"`
	UnitCount  int     `json:"unit_count" gorm:"default:0"`
	Area       float64 `json:"area" gorm:"default:0"`
	Budget     float64 `json:"budget" gorm:"default:0"`

	Status string `json:"status" gorm:"type:varchar(50);default:'Planning'"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// ProjectMember links a user to a project with a role
type ProjectMember struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	ProjectID  uint   `json:"project_id" gorm:"index;not null"`
	UserID     string `json:"user_id" gorm:"type:varchar(64);index;not null"`
	Email      string `json:"email" gorm:"type:varchar(255)"`
	Role       string `json:"role" gorm:"type:varchar(100);default:'Member'"`
	Department string `json:"department" gorm:"type:varchar(100)"`
	AccessTier string `json:"access_tier" gorm:"type:varchar(50)"`
	Status     string `json:"status" gorm:"type:varchar(50);default:'Active'"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
