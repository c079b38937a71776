package model

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses written by the backend. The column itself is a free string;
// callers may store other values and they are accepted as-is.
const (
	TaskStatusNotStarted = "Not Started"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// Stage is a top-level phase of a project's schedule
type Stage struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	ProjectID uint       `json:"project_id" gorm:"index;not null"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Status    string     `json:"status" gorm:"type:varchar(50);default:'Not Started'"`

	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:StageID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Task is an actionable unit of work under a stage, optionally nested under a
// parent task in the same stage. Parent IDs only ever come from rows inserted
// in the same recursive pass, so the tree cannot cycle.
type Task struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	StageID      uint       `json:"stage_id" gorm:"index;not null"`
	ParentTaskID *uint      `json:"parent_task_id,omitempty" gorm:"index"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	AssignedRole string     `json:"assigned_role" gorm:"type:varchar(100)"`
	AssigneeID   string     `json:"assignee_id,omitempty" gorm:"type:varchar(64)"`
	Status       string     `json:"status" gorm:"type:varchar(50);default:'Not Started'"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
