package model

import "time"

// ChatLog is an append-only record of an inbound chat message. Rows are never
// updated or deleted, so no soft-delete column.
type ChatLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProjectID uint      `json:"project_id" gorm:"index;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64)"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Context   string    `json:"context" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at"`
}
