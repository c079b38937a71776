package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the user directory record used to resolve an email to a user
// when adding team members.
type Profile struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	UserID   string `json:"user_id" gorm:"type:varchar(64);uniqueIndex;not null"`
	Email    string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName string `json:"full_name" gorm:"type:varchar(255)"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
