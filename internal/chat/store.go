package chat

import (
	"context"

	"gorm.io/gorm"

	"buildsite-service/internal/model"
)

// Store is the persistence surface the router needs. Kept narrow so tests
// can run against an in-memory fake.
type Store interface {
	// AppendChatLog inserts an append-only chat log row.
	AppendChatLog(ctx context.Context, entry *model.ChatLog) error

	// OpenTasks returns up to limit non-completed tasks for the project.
	OpenTasks(ctx context.Context, projectID uint, limit int) ([]model.Task, error)

	// GetTask loads a task by ID.
	GetTask(ctx context.Context, taskID uint) (*model.Task, error)

	// UpdateTaskStatus writes a task's status.
	UpdateTaskStatus(ctx context.Context, taskID uint, status string) error

	// CreateLead inserts a lead row.
	CreateLead(ctx context.Context, record *model.Lead) error
}

// GormStore implements Store on a GORM handle.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) AppendChatLog(ctx context.Context, entry *model.ChatLog) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) OpenTasks(ctx context.Context, projectID uint, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := s.DB.WithContext(ctx).
		Joins("JOIN stages ON stages.id = tasks.stage_id").
		Where("stages.project_id = ? AND tasks.status <> ?", projectID, model.TaskStatusCompleted).
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func (s *GormStore) GetTask(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := s.DB.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *GormStore) UpdateTaskStatus(ctx context.Context, taskID uint, status string) error {
	return s.DB.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("status", status).Error
}

func (s *GormStore) CreateLead(ctx context.Context, record *model.Lead) error {
	return s.DB.WithContext(ctx).Create(record).Error
}
